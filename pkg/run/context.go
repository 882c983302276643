// Package run owns the per-run context: platform and shell versions
// resolved once at startup, and the scratch directory removed on every
// exit path.
package run

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
)

// osReleasePath is the standard os-release location.
const osReleasePath = "/etc/os-release"

var shellVersionRe = regexp.MustCompile(`GNOME Shell (\d+)(?:\.\d+)*`)

// Context holds the values resolved once at the start of a run.
type Context struct {
	// RunID identifies this run in log lines and the scratch dir name.
	RunID string

	// FedoraVersion is the VERSION_ID from os-release, e.g. "42".
	FedoraVersion string

	// ShellVersion is the GNOME Shell major version, e.g. "48".
	ShellVersion string

	// ScratchDir is the private download/workspace directory for this run.
	ScratchDir string

	// HomeDir is the invoking user's home directory.
	HomeDir string

	// Username is the invoking user's login name.
	Username string
}

// New resolves the run context. The scratch directory is created here and
// must be removed with Cleanup.
func New(ctx context.Context, exec execx.Executor) (*Context, error) {
	fedoraVer, err := fedoraVersion(osReleasePath)
	if err != nil {
		return nil, err
	}

	shellVer, err := shellVersion(ctx, exec)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	current, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("cannot determine current user: %w", err)
	}

	id := uuid.NewString()
	scratch, err := os.MkdirTemp("", "fedora-postinstall-"+id[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Context{
		RunID:         id,
		FedoraVersion: fedoraVer,
		ShellVersion:  shellVer,
		ScratchDir:    scratch,
		HomeDir:       home,
		Username:      current.Username,
	}, nil
}

// Cleanup removes the scratch directory. Called unconditionally on exit.
func (c *Context) Cleanup() error {
	if c.ScratchDir == "" {
		return nil
	}
	return os.RemoveAll(c.ScratchDir)
}

// ExtensionsDir returns the per-user GNOME Shell extensions directory.
func (c *Context) ExtensionsDir() string {
	return filepath.Join(c.HomeDir, ".local", "share", "gnome-shell", "extensions")
}

// fedoraVersion reads VERSION_ID from an os-release file. os-release is
// shell-assignment syntax, which godotenv parses directly.
func fedoraVersion(path string) (string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	version := env["VERSION_ID"]
	if version == "" {
		return "", fmt.Errorf("no VERSION_ID in %s", path)
	}
	return version, nil
}

// shellVersion asks the running gnome-shell for its version and keeps the
// major component, which is what the extension catalog keys on.
func shellVersion(ctx context.Context, exec execx.Executor) (string, error) {
	out, err := exec.Run(ctx, "gnome-shell", "--version")
	if err != nil {
		return "", fmt.Errorf("failed to query gnome-shell version: %w", err)
	}
	return ParseShellVersion(out)
}

// ParseShellVersion extracts the major version from "GNOME Shell 48.2"
// style output.
func ParseShellVersion(output string) (string, error) {
	matches := shellVersionRe.FindStringSubmatch(strings.TrimSpace(output))
	if len(matches) < 2 {
		return "", fmt.Errorf("unrecognized gnome-shell version output %q", strings.TrimSpace(output))
	}
	return matches[1], nil
}
