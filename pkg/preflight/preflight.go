// Package preflight verifies the environment before the run mutates
// anything: required tools must be on PATH, the effective user must not be
// root, and one probe must confirm network reachability. The three checks
// run in exactly that order; the tool check never touches the network and
// the root check never touches the filesystem, so a machine with several
// problems reports the cheapest one first.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
)

// RequiredTools are the external executables every run depends on.
var RequiredTools = []string{
	"sudo",
	"dnf",
	"flatpak",
	"gsettings",
	"gnome-shell",
	"gnome-extensions",
	"chsh",
	"tar",
}

// ProbeURL is the fixed reachability target.
const ProbeURL = "https://fedoraproject.org"

// CheckStatus represents the status of a single preflight check.
type CheckStatus int

const (
	// StatusOK indicates the check passed.
	StatusOK CheckStatus = iota
	// StatusFailed indicates the check failed.
	StatusFailed
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "failed"
}

// Check is a single preflight check result.
type Check struct {
	ID      string
	Name    string
	Status  CheckStatus
	Message string
}

// Prober performs the network reachability probe.
type Prober interface {
	Probe(ctx context.Context) error
}

// HTTPProber probes a fixed URL with a HEAD request.
type HTTPProber struct {
	URL    string
	Client *http.Client
}

// NewHTTPProber creates a prober for the default target.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		URL:    ProbeURL,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Probe issues one HEAD request. Any HTTP response counts as reachable.
func (p *HTTPProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach %s: %w", p.URL, err)
	}
	resp.Body.Close()
	return nil
}

// Checker runs preflight checks.
type Checker struct {
	exec    execx.Executor
	prober  Prober
	geteuid func() int
	tools   []string
}

// NewChecker creates a checker using the real system.
func NewChecker(exec execx.Executor) *Checker {
	return &Checker{
		exec:    exec,
		prober:  NewHTTPProber(),
		geteuid: os.Geteuid,
		tools:   RequiredTools,
	}
}

// NewCheckerWith creates a checker with injected collaborators (for testing).
func NewCheckerWith(exec execx.Executor, prober Prober, geteuid func() int, tools []string) *Checker {
	return &Checker{exec: exec, prober: prober, geteuid: geteuid, tools: tools}
}

// Run executes the checks in order and fails fast on the first problem.
// No mutation of any kind has happened when Run returns an error.
func (c *Checker) Run(ctx context.Context) error {
	for _, tool := range c.tools {
		if _, err := c.exec.LookPath(tool); err != nil {
			return fmt.Errorf("required tool %q not found in PATH", tool)
		}
	}

	if c.geteuid() == 0 {
		return fmt.Errorf("refusing to run as root: run as your normal user, sudo is used where needed")
	}

	if err := c.prober.Probe(ctx); err != nil {
		return fmt.Errorf("network check failed: %w", err)
	}

	return nil
}

// CheckAll runs every check without short-circuiting and returns the
// results, for the doctor command.
func (c *Checker) CheckAll(ctx context.Context) []Check {
	var checks []Check

	for _, tool := range c.tools {
		check := Check{ID: tool, Name: tool}
		if path, err := c.exec.LookPath(tool); err != nil {
			check.Status = StatusFailed
			check.Message = "not installed"
		} else {
			check.Status = StatusOK
			check.Message = path
		}
		checks = append(checks, check)
	}

	user := Check{ID: "user", Name: "non-root user"}
	if c.geteuid() == 0 {
		user.Status = StatusFailed
		user.Message = "running as root"
	} else {
		user.Status = StatusOK
		user.Message = fmt.Sprintf("uid %d", c.geteuid())
	}
	checks = append(checks, user)

	network := Check{ID: "network", Name: "network"}
	if err := c.prober.Probe(ctx); err != nil {
		network.Status = StatusFailed
		network.Message = err.Error()
	} else {
		network.Status = StatusOK
		network.Message = "reachable"
	}
	checks = append(checks, network)

	return checks
}
