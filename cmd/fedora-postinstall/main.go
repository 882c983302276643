// Package main provides the fedora-postinstall CLI for provisioning a
// freshly installed Fedora GNOME desktop.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for fedora-postinstall
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fedora-postinstall",
		Short: "Fedora desktop post-install provisioner",
		Long: `fedora-postinstall provisions a freshly installed Fedora GNOME desktop:
package repositories, system packages, Flatpak apps, GNOME Shell
extensions, shell prompt, theming and desktop preferences.

Every module can be disabled with --no-<module>; the NVIDIA driver
module is off unless --nvidia is given. Re-running is safe: already
applied steps are no-ops.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newListModulesCmd(),
		newDoctorCmd(),
	)

	return rootCmd
}
