package gnomext

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
	"github.com/nocure4OCD/fedora42-postinstall/pkg/ui"
)

// Installer installs and enables extensions for the current user.
type Installer struct {
	Client        *Client
	Exec          execx.Executor
	Out           *ui.Printer
	ExtensionsDir string // ~/.local/share/gnome-shell/extensions
	ScratchDir    string // run-scoped download location
	ShellVersion  string // running shell major version, e.g. "48"
}

// InstallAll processes every catalog extension in order. A missing catalog
// entry or failed resolution is a warning, not a run failure: the remaining
// extensions are still processed. Download and filesystem errors abort.
func (i *Installer) InstallAll(ctx context.Context, extensions []Extension) error {
	for _, ext := range extensions {
		if err := i.Install(ctx, ext); err != nil {
			return err
		}
	}
	return nil
}

// Install installs one extension. Already-installed extensions are skipped
// before any network round-trip so re-runs are cheap.
func (i *Installer) Install(ctx context.Context, ext Extension) error {
	installDir := filepath.Join(i.ExtensionsDir, ext.UUID)
	if _, err := os.Stat(installDir); err == nil {
		i.Out.Infof("%s already installed, skipping", ext.UUID)
		return nil
	}

	entry, err := i.Client.Lookup(ctx, ext.Search, ext.UUID)
	if err != nil {
		return err
	}
	if entry == nil {
		i.Out.Warnf("%s not found in extension catalog, skipping", ext.UUID)
		return nil
	}

	res, err := Resolve(entry, i.ShellVersion)
	if err != nil {
		i.Out.Warnf("%s: %v, skipping", ext.UUID, err)
		return nil
	}
	if res.ShellVersion != i.ShellVersion {
		i.Out.Warnf("%s has no build for GNOME Shell %s, using the %s build",
			ext.UUID, i.ShellVersion, res.ShellVersion)
	}

	archive, err := i.Client.Fetch(ctx, ext.UUID, res.VersionTag, i.ScratchDir)
	if err != nil {
		return err
	}

	if err := extractZip(archive, installDir); err != nil {
		return fmt.Errorf("failed to install %s: %w", ext.UUID, err)
	}
	i.Out.Infof("installed %s v%d", ext.UUID, res.Version)

	// Enabling can legitimately fail until the next login; never fatal.
	if _, err := i.Exec.Run(ctx, "gnome-extensions", "enable", ext.UUID); err != nil {
		i.Out.Warnf("could not enable %s (takes effect after next login): %v", ext.UUID, err)
	}

	return nil
}

// extractZip extracts archive into destDir, refusing entries that would
// escape it.
func extractZip(archive, destDir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, f.Name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := writeZipEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
