package modules

import (
	"github.com/nocure4OCD/fedora42-postinstall/pkg/gnomext"
)

// runExtensions installs and enables the curated GNOME Shell extension set
// against the running shell version. Extensions missing from the catalog
// are warned about and skipped; the rest are still processed.
func runExtensions(sc *StepContext) error {
	catalog, err := gnomext.LoadCatalog()
	if err != nil {
		return err
	}

	if sc.DryRun {
		for _, ext := range catalog.Extensions {
			sc.Out.Infof("[dry-run] would install extension %s", ext.UUID)
		}
		return nil
	}

	installer := &gnomext.Installer{
		Client:        gnomext.NewClient(),
		Exec:          sc.Exec,
		Out:           sc.Out,
		ExtensionsDir: sc.Run.ExtensionsDir(),
		ScratchDir:    sc.Run.ScratchDir,
		ShellVersion:  sc.Run.ShellVersion,
	}

	return installer.InstallAll(sc.Ctx, catalog.Extensions)
}
