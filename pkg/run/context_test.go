package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShellVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"GNOME Shell 48.2\n", "48", false},
		{"GNOME Shell 45.0", "45", false},
		{"GNOME Shell 48", "48", false},
		{"something else", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseShellVersion(tt.output)
		if tt.wantErr {
			assert.Error(t, err, "output %q", tt.output)
		} else {
			require.NoError(t, err, "output %q", tt.output)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestFedoraVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	content := `NAME="Fedora Linux"
VERSION="42 (Workstation Edition)"
ID=fedora
VERSION_ID=42
PRETTY_NAME="Fedora Linux 42 (Workstation Edition)"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	version, err := fedoraVersion(path)

	require.NoError(t, err)
	assert.Equal(t, "42", version)
}

func TestFedoraVersion_MissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte("ID=fedora\n"), 0o644))

	_, err := fedoraVersion(path)

	assert.Error(t, err)
}

func TestContext_ExtensionsDir(t *testing.T) {
	c := &Context{HomeDir: "/home/alice"}
	assert.Equal(t, "/home/alice/.local/share/gnome-shell/extensions", c.ExtensionsDir())
}

func TestContext_Cleanup(t *testing.T) {
	dir := t.TempDir()
	scratch := filepath.Join(dir, "scratch")
	require.NoError(t, os.MkdirAll(scratch, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scratch, "download.zip"), []byte("x"), 0o644))

	c := &Context{ScratchDir: scratch}
	require.NoError(t, c.Cleanup())

	_, err := os.Stat(scratch)
	assert.True(t, os.IsNotExist(err))
}

func TestContext_CleanupWithoutScratchDir(t *testing.T) {
	c := &Context{}
	assert.NoError(t, c.Cleanup())
}
