package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults-file keys. The file is optional shell-style env syntax at
// ~/.config/fedora-postinstall/config.env:
//
//	DISABLE="gaming comm"
//	ENABLE="nvidia"
//	DRY_RUN=true
const (
	keyDisable = "DISABLE"
	keyEnable  = "ENABLE"
	keyDryRun  = "DRY_RUN"
)

// DefaultsFilePath returns the per-user defaults file location.
func DefaultsFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fedora-postinstall", "config.env"), nil
}

// DefaultsFileTokens reads the defaults file at path and returns the
// equivalent CLI tokens, to be prepended to the argument vector so real
// CLI flags still win. A missing file is not an error; a malformed one is.
func DefaultsFileTokens(path string, defaults map[string]bool, warn WarnFunc) ([]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tokens []string
	for _, name := range strings.Fields(strings.ReplaceAll(env[keyDisable], ",", " ")) {
		if _, known := defaults[name]; known {
			tokens = append(tokens, "--no-"+name)
		} else {
			warn("unknown module %q in defaults file, ignoring", name)
		}
	}
	for _, name := range strings.Fields(strings.ReplaceAll(env[keyEnable], ",", " ")) {
		if _, known := defaults[name]; known {
			tokens = append(tokens, name)
		} else {
			warn("unknown module %q in defaults file, ignoring", name)
		}
	}
	if v := strings.ToLower(env[keyDryRun]); v == "true" || v == "1" || v == "yes" {
		tokens = append(tokens, "--dry-run")
	}

	return tokens, nil
}
