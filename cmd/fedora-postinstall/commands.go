package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/config"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/modules"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/preflight"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/run"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/sudokeep"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/ui"
)

// newRunCmd creates the run subcommand. Flag parsing is deliberately
// forgiving and owned by config.Parse, so unknown tokens warn instead of
// aborting; cobra's own parser would reject them.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [--no-<module>]... [--nvidia] [--dry-run]",
		Short: "Provision this machine",
		Long: `Execute the provisioning modules in order. Disable any module with
--no-<module> (see list-modules for names); enable the NVIDIA driver
module with --nvidia. With --dry-run, external commands are printed
instead of executed.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, args)
		},
	}
}

// newListModulesCmd creates the list-modules subcommand
func newListModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-modules",
		Short: "List modules and their default state",
		RunE:  runListModules,
	}
}

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run preflight checks without provisioning",
		RunE:  runDoctor,
	}
}

// runProvision is the end-to-end run: parse flags, preflight, start the
// sudo keeper, resolve the run context, execute modules, clean up.
func runProvision(cmd *cobra.Command, args []string) error {
	out := ui.Default()
	registry := modules.DefaultRegistry()
	defaults := registry.Defaults()

	defaultsPath, err := config.DefaultsFilePath()
	if err == nil {
		tokens, ferr := config.DefaultsFileTokens(defaultsPath, defaults, out.Warnf)
		if ferr != nil {
			return fmt.Errorf("failed to read defaults file: %w", ferr)
		}
		args = append(tokens, args...)
	}

	cfg := config.Parse(args, defaults, out.Warnf)
	if cfg.Help {
		return cmd.Help()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var executor execx.Executor = &execx.RealExecutor{}
	if cfg.DryRun {
		executor = execx.NewDryRunExecutor(os.Stdout)
		out.Infof("dry run: external commands are printed, not executed")
	}

	// Preflight runs before any mutation: tools, then user, then network.
	checker := preflight.NewChecker(&execx.RealExecutor{})
	if err := checker.Run(ctx); err != nil {
		out.Errorf("%v", err)
		return err
	}

	// Version queries are read-only, so they bypass the dry-run executor.
	runCtx, err := run.New(ctx, &execx.RealExecutor{})
	if err != nil {
		out.Errorf("%v", err)
		return err
	}
	defer func() {
		if cerr := runCtx.Cleanup(); cerr != nil {
			out.Warnf("failed to remove scratch directory: %v", cerr)
		}
	}()

	out.Infof("run %s: Fedora %s, GNOME Shell %s", runCtx.RunID[:8], runCtx.FedoraVersion, runCtx.ShellVersion)

	if !cfg.DryRun {
		keeper := sudokeep.New(executor, sudokeep.DefaultInterval)
		if err := keeper.Start(ctx); err != nil {
			out.Errorf("could not acquire sudo: %v", err)
			return err
		}
		defer keeper.Stop()
	}

	runner := &modules.Runner{Registry: registry, Config: cfg, Out: out}
	sc := &modules.StepContext{
		Ctx:    ctx,
		Exec:   executor,
		Out:    out,
		Run:    runCtx,
		DryRun: cfg.DryRun,
	}

	if err := runner.Run(sc); err != nil {
		out.Errorf("%v", err)
		return err
	}

	out.Successf("provisioning complete; log out and back in to pick up shell and extension changes")
	return nil
}

// runListModules prints the fixed module set in execution order.
func runListModules(_ *cobra.Command, _ []string) error {
	registry := modules.DefaultRegistry()

	fmt.Printf("%d modules, in execution order:\n\n", len(registry.Modules))
	for _, m := range registry.Modules {
		state := "enabled"
		if !m.Default {
			state = "disabled (enable with --" + m.Name + ")"
		}
		fmt.Printf("  %-13s %s [%s]\n", m.Name, m.Description, state)
	}
	return nil
}

// runDoctor runs every preflight check and reports, without short-circuiting.
func runDoctor(_ *cobra.Command, _ []string) error {
	out := ui.Default()
	checker := preflight.NewChecker(&execx.RealExecutor{})

	failed := 0
	for _, check := range checker.CheckAll(context.Background()) {
		if check.Status == preflight.StatusOK {
			out.Infof("%-16s %s", check.Name, check.Message)
		} else {
			failed++
			out.Errorf("%-16s %s", check.Name, check.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d preflight check(s) failed", failed)
	}
	out.Successf("all preflight checks passed")
	return nil
}
