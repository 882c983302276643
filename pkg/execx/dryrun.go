package execx

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DryRunExecutor logs every command instead of executing it. LookPath still
// consults the real system so preflight results stay meaningful.
type DryRunExecutor struct {
	Out  io.Writer
	Real Executor
}

// NewDryRunExecutor creates an executor that prints commands to out.
func NewDryRunExecutor(out io.Writer) *DryRunExecutor {
	return &DryRunExecutor{Out: out, Real: &RealExecutor{}}
}

// LookPath delegates to the real executor.
func (e *DryRunExecutor) LookPath(file string) (string, error) {
	return e.Real.LookPath(file)
}

// Run prints the command and reports success with empty output.
func (e *DryRunExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	fmt.Fprintf(e.Out, "[dry-run] %s %s\n", name, strings.Join(args, " "))
	return "", nil
}

// RunInteractive prints the command and reports success.
func (e *DryRunExecutor) RunInteractive(_ context.Context, name string, args ...string) error {
	fmt.Fprintf(e.Out, "[dry-run] %s %s\n", name, strings.Join(args, " "))
	return nil
}
