package modules

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var themingPackages = []string{"papirus-icon-theme"}

// cursorTheme is installed into the user's icon directory rather than
// system-wide, so no privileges are needed and removal is a directory
// delete.
const (
	cursorThemeName = "Bibata-Modern-Classic"
	cursorThemeURL  = "https://github.com/ful1e5/Bibata_Cursor/releases/latest/download/Bibata-Modern-Classic.tar.xz"
)

// desktopPreferences are the gsettings writes applied by the theming
// module, in order.
var desktopPreferences = []struct {
	schema, key, value string
}{
	{"org.gnome.desktop.interface", "color-scheme", "'prefer-dark'"},
	{"org.gnome.desktop.interface", "gtk-theme", "'Adwaita-dark'"},
	{"org.gnome.desktop.interface", "icon-theme", "'Papirus-Dark'"},
	{"org.gnome.desktop.interface", "cursor-theme", "'" + cursorThemeName + "'"},
	{"org.gnome.desktop.interface", "clock-show-weekday", "true"},
	{"org.gnome.desktop.peripherals.touchpad", "tap-to-click", "true"},
	{"org.gnome.desktop.wm.preferences", "button-layout", "'appmenu:minimize,maximize,close'"},
	{"org.gnome.mutter", "center-new-windows", "true"},
}

// runTheming installs the icon theme, the user-scoped cursor theme and
// applies desktop preferences.
func runTheming(sc *StepContext) error {
	if err := dnfInstall(sc, themingPackages...); err != nil {
		return err
	}

	if sc.DryRun {
		sc.Out.Infof("[dry-run] would install cursor theme %s into ~/.icons", cursorThemeName)
	} else if err := installCursorTheme(sc, cursorThemeURL); err != nil {
		return err
	}

	for _, pref := range desktopPreferences {
		if err := gsettingsSet(sc, pref.schema, pref.key, pref.value); err != nil {
			return err
		}
	}
	return nil
}

// installCursorTheme downloads and extracts the cursor theme into
// ~/.icons. Skipped entirely when already installed, before any network
// round-trip.
func installCursorTheme(sc *StepContext, url string) error {
	iconsDir := filepath.Join(sc.Run.HomeDir, ".icons")
	if _, err := os.Stat(filepath.Join(iconsDir, cursorThemeName)); err == nil {
		sc.Out.Infof("cursor theme %s already installed, skipping", cursorThemeName)
		return nil
	}

	archive := filepath.Join(sc.Run.ScratchDir, filepath.Base(url))
	if err := downloadFile(sc, url, archive); err != nil {
		return fmt.Errorf("failed to download cursor theme: %w", err)
	}

	if err := os.MkdirAll(iconsDir, 0o755); err != nil {
		return err
	}
	if _, err := sc.Exec.Run(sc.Ctx, "tar", "-xf", archive, "-C", iconsDir); err != nil {
		return fmt.Errorf("failed to extract cursor theme: %w", err)
	}
	return nil
}

// downloadFile downloads url into destPath via a temp file, renaming only
// on success.
func downloadFile(sc *StepContext, url, destPath string) error {
	client := &http.Client{Timeout: 5 * time.Minute}

	req, err := http.NewRequestWithContext(sc.Ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tmpPath := destPath + ".downloading"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, destPath)
}
