// Package execx provides the external-process abstraction used by every
// module step. All invocations are blocking, ordered, and return captured
// output; interactive invocations attach the current terminal so that
// package-manager progress and prompts reach the user.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor is an interface for executing external commands, allowing for testing.
type Executor interface {
	// LookPath finds the path to an executable.
	LookPath(file string) (string, error)

	// Run executes a command and returns its captured output. Stderr is
	// folded into the returned error on failure.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunInteractive executes a command attached to the current terminal.
	// Used for long-running tools (dnf, flatpak) and anything that prompts.
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// RealExecutor is the default executor that runs commands on the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return stdout.String(), fmt.Errorf("%s failed: %s", name, errMsg)
		}
		return stdout.String(), fmt.Errorf("%s failed: %w", name, err)
	}

	// Some tools write their only output to stderr.
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// RunInteractive executes a command with stdio attached to the terminal.
// An interrupt delivered to the process group propagates to the child and
// terminates the run, which is the intended behavior.
func (e *RealExecutor) RunInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
