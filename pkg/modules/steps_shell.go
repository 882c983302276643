package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
)

// Markers delimiting the managed block in ~/.zshrc. Everything between
// them belongs to this tool; user content outside is never touched.
const (
	zshrcBlockStart = "# >>> fedora-postinstall >>>"
	zshrcBlockEnd   = "# <<< fedora-postinstall <<<"
)

// runShell installs zsh and starship, makes zsh the login shell and wires
// the prompt into ~/.zshrc through a managed block that re-runs replace
// rather than duplicate.
func runShell(sc *StepContext) error {
	if err := dnfInstall(sc, "zsh", "starship"); err != nil {
		return err
	}

	if sc.DryRun {
		sc.Out.Infof("[dry-run] would change login shell to zsh and write the ~/.zshrc prompt block")
		return nil
	}

	zshPath, err := sc.Exec.LookPath("zsh")
	if err != nil {
		return fmt.Errorf("zsh not found after install: %w", err)
	}
	if err := sudoRun(sc, "chsh", "-s", zshPath, sc.Run.Username); err != nil {
		return err
	}

	starshipPath, err := sc.Exec.LookPath("starship")
	if err != nil {
		return fmt.Errorf("starship not found after install: %w", err)
	}

	block := fmt.Sprintf("eval \"$(%s init zsh)\"", shellescape.Quote(starshipPath))
	zshrc := filepath.Join(sc.Run.HomeDir, ".zshrc")
	if err := writeManagedBlock(zshrc, block); err != nil {
		return err
	}

	sc.Out.Infof("zsh configured; takes effect at next login")
	return nil
}

// writeManagedBlock appends the managed block to the file, or replaces an
// existing one in place. A missing file is created.
func writeManagedBlock(path, content string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	block := zshrcBlockStart + "\n" + content + "\n" + zshrcBlockEnd + "\n"
	text := string(data)

	start := strings.Index(text, zshrcBlockStart)
	end := strings.Index(text, zshrcBlockEnd)
	if start >= 0 && end > start {
		tail := end + len(zshrcBlockEnd)
		if tail < len(text) && text[tail] == '\n' {
			tail++
		}
		text = text[:start] + block + text[tail:]
	} else {
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += block
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
