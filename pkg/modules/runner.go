package modules

import (
	"context"
	"fmt"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/config"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/run"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/ui"
)

// StepContext carries everything a module needs. Modules never reach for
// globals: the executor, output and run context all arrive here.
type StepContext struct {
	Ctx  context.Context
	Exec execx.Executor
	Out  *ui.Printer
	Run  *run.Context

	// DryRun tells steps that mutate the filesystem or network in-process
	// (not through the executor) to log instead of acting.
	DryRun bool
}

// Runner executes the registry's modules in order.
type Runner struct {
	Registry *Registry
	Config   config.Config
	Out      *ui.Printer
}

// Run executes every enabled module in the fixed order. A disabled module
// is skipped without side effects. The first module error aborts the whole
// run; there is no rollback. The external tools treat re-applied steps as
// no-ops, so re-running after a fix is the recovery path.
func (r *Runner) Run(sc *StepContext) error {
	for _, m := range r.Registry.Modules {
		if !r.Config.Enabled(m.Name) {
			r.Out.Infof("skipping %s (disabled)", m.Name)
			continue
		}

		r.Out.Stepf("%s: %s", m.Name, m.Description)
		if err := m.Run(sc); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
	}
	return nil
}
