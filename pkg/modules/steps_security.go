package modules

import (
	"fmt"
	"os"
	"path/filepath"
)

var securityPackages = []string{"opensnitch", "firejail"}

// autostartDesktop is the template for the OpenSnitch tray autostart entry.
const autostartDesktop = `[Desktop Entry]
Type=Application
Name=OpenSnitch UI
Exec=%s
X-GNOME-Autostart-enabled=true
`

// runSecurity installs the application firewall and sandboxing tools,
// enables the firewall daemon and registers its tray UI for autostart.
func runSecurity(sc *StepContext) error {
	if err := dnfInstall(sc, securityPackages...); err != nil {
		return err
	}

	if err := sudoRun(sc, "systemctl", "enable", "--now", "opensnitch.service"); err != nil {
		return err
	}

	if sc.DryRun {
		sc.Out.Infof("[dry-run] would write autostart entry for opensnitch-ui")
		return nil
	}
	return writeAutostartEntry(sc.Run.HomeDir, "opensnitch-ui.desktop", "opensnitch-ui")
}

// writeAutostartEntry writes a desktop-autostart descriptor under
// ~/.config/autostart. Overwrites any existing entry of the same name,
// which keeps re-runs idempotent.
func writeAutostartEntry(homeDir, filename, command string) error {
	dir := filepath.Join(homeDir, ".config", "autostart")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}

	content := fmt.Sprintf(autostartDesktop, command)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}
