package modules

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteManagedBlock_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")

	require.NoError(t, writeManagedBlock(path, `eval "$(starship init zsh)"`))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), zshrcBlockStart)
	assert.Contains(t, string(data), "starship init zsh")
	assert.Contains(t, string(data), zshrcBlockEnd)
}

func TestWriteManagedBlock_AppendsToExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")
	require.NoError(t, os.WriteFile(path, []byte("export EDITOR=vim"), 0o644))

	require.NoError(t, writeManagedBlock(path, "prompt line"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "export EDITOR=vim\n"))
	assert.Contains(t, text, "prompt line")
}

func TestWriteManagedBlock_ReplacesExistingBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")

	require.NoError(t, writeManagedBlock(path, "old line"))
	require.NoError(t, writeManagedBlock(path, "new line"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "old line")
	assert.Contains(t, text, "new line")
	assert.Equal(t, 1, strings.Count(text, zshrcBlockStart), "block must not duplicate on re-run")
}

func TestWriteManagedBlock_PreservesUserContentAroundBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0o644))
	require.NoError(t, writeManagedBlock(path, "v1"))

	// User appends after the block, then the tool re-runs.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("after\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, writeManagedBlock(path, "v2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "before\n")
	assert.Contains(t, text, "after\n")
	assert.Contains(t, text, "v2")
	assert.NotContains(t, text, "v1")
}

func TestWriteAutostartEntry(t *testing.T) {
	home := t.TempDir()

	require.NoError(t, writeAutostartEntry(home, "opensnitch-ui.desktop", "opensnitch-ui"))

	data, err := os.ReadFile(filepath.Join(home, ".config", "autostart", "opensnitch-ui.desktop"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "[Desktop Entry]")
	assert.Contains(t, text, "Exec=opensnitch-ui")
	assert.Contains(t, text, "X-GNOME-Autostart-enabled=true")

	// Re-running overwrites rather than failing.
	require.NoError(t, writeAutostartEntry(home, "opensnitch-ui.desktop", "opensnitch-ui"))
}

func TestRunRepos_UsesFedoraVersionInURLs(t *testing.T) {
	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)

	require.NoError(t, runRepos(sc))

	all := strings.Join(exec.Commands, "\n")
	assert.Contains(t, all, "rpmfusion-free-release-42.noarch.rpm")
	assert.Contains(t, all, "rpmfusion-nonfree-release-42.noarch.rpm")
	assert.Contains(t, all, "flatpak remote-add --if-not-exists flathub")
	assert.Contains(t, all, "copr enable -y atim/starship")
}

func TestRunTheming_AppliesEveryPreference(t *testing.T) {
	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)
	sc.DryRun = true // skip the cursor-theme download

	require.NoError(t, runTheming(sc))

	var gsettingsCalls int
	for _, cmd := range exec.Commands {
		if strings.HasPrefix(cmd, "gsettings set ") {
			gsettingsCalls++
		}
	}
	assert.Equal(t, len(desktopPreferences), gsettingsCalls)
}

func TestInstallCursorTheme_DownloadsAndExtracts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive bytes"))
	}))
	defer server.Close()

	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)

	require.NoError(t, installCursorTheme(sc, server.URL+"/Bibata.tar.xz"))

	all := strings.Join(exec.Commands, "\n")
	assert.Contains(t, all, "tar -xf")
	assert.Contains(t, all, filepath.Join(sc.Run.HomeDir, ".icons"))
	// Archive landed in scratch, temp suffix cleaned up.
	assert.FileExists(t, filepath.Join(sc.Run.ScratchDir, "Bibata.tar.xz"))
	assert.NoFileExists(t, filepath.Join(sc.Run.ScratchDir, "Bibata.tar.xz.downloading"))
}

func TestInstallCursorTheme_SkipsWhenInstalled(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)
	require.NoError(t, os.MkdirAll(filepath.Join(sc.Run.HomeDir, ".icons", cursorThemeName), 0o755))

	require.NoError(t, installCursorTheme(sc, server.URL))

	assert.Zero(t, requests, "already-installed theme must not be re-fetched")
	assert.Empty(t, exec.Commands)
}

func TestRunPower_EnablesAndMasks(t *testing.T) {
	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)

	require.NoError(t, runPower(sc))

	all := strings.Join(exec.Commands, "\n")
	assert.Contains(t, all, "systemctl enable tlp.service")
	assert.Contains(t, all, "systemctl mask systemd-rfkill.service systemd-rfkill.socket")
}

func TestRunShell_WritesPromptBlock(t *testing.T) {
	exec := &RecordingExecutor{}
	sc := testStepContext(t, exec)

	require.NoError(t, runShell(sc))

	all := strings.Join(exec.Commands, "\n")
	assert.Contains(t, all, "chsh -s /usr/bin/zsh alice")

	data, err := os.ReadFile(filepath.Join(sc.Run.HomeDir, ".zshrc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/usr/bin/starship init zsh")
}
