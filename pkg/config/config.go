// Package config builds the immutable run configuration from command-line
// tokens and the optional user defaults file.
package config

import (
	"strings"
)

// Config is the module-enabled mapping for one run. It is constructed once
// by Parse and never mutated afterwards; the runner and every step receive
// it by value.
type Config struct {
	enabled map[string]bool

	// DryRun logs external commands instead of executing them.
	DryRun bool

	// Help is set when a help token was seen; the caller shows usage and exits.
	Help bool
}

// Enabled reports whether the named module is enabled. Unknown names are
// disabled.
func (c Config) Enabled(name string) bool {
	return c.enabled[name]
}

// WarnFunc receives a warning message for unrecognized tokens.
type WarnFunc func(format string, args ...any)

// Parse turns the argument vector into a Config. defaults maps every known
// module name to its default enabled state; tokens outside that set produce
// a warning via warn and are otherwise ignored. Module names are matched
// exactly (case-sensitive): a typo'd name toggles nothing.
func Parse(args []string, defaults map[string]bool, warn WarnFunc) Config {
	enabled := make(map[string]bool, len(defaults))
	for name, on := range defaults {
		enabled[name] = on
	}

	cfg := Config{enabled: enabled}

	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			cfg.Help = true

		case arg == "--dry-run":
			cfg.DryRun = true

		case strings.HasPrefix(arg, "--no-"):
			name := strings.TrimPrefix(arg, "--no-")
			if _, known := defaults[name]; known {
				enabled[name] = false
			} else {
				warn("unknown module %q in %s, ignoring", name, arg)
			}

		case strings.HasPrefix(arg, "--"):
			name := strings.TrimPrefix(arg, "--")
			if _, known := defaults[name]; known {
				enabled[name] = true
			} else {
				warn("unrecognized flag %s, ignoring", arg)
			}

		default:
			if _, known := defaults[arg]; known {
				enabled[arg] = true
			} else {
				warn("unrecognized argument %q, ignoring", arg)
			}
		}
	}

	return cfg
}
