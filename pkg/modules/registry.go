// Package modules defines the ordered set of installation modules and the
// runner that executes them. Each module is an independently toggle-able
// group of external-tool invocations; the order is fixed because later
// modules assume earlier ones succeeded (Flathub must exist before any
// flatpak install).
package modules

// Module names. These are the exact tokens accepted by --no-<name>.
const (
	NameRepos        = "repos"
	NameCore         = "core"
	NameSecurity     = "security"
	NameMultimedia   = "multimedia"
	NamePower        = "power"
	NameGaming       = "gaming"
	NameProductivity = "productivity"
	NameCreative     = "creative"
	NameComm         = "comm"
	NameShell        = "shell"
	NameTheming      = "theming"
	NameExtensions   = "extensions"
	NameNvidia       = "nvidia"
	NameCleanup      = "cleanup"
)

// Module is one named, toggle-able installation step.
type Module struct {
	// Name is the toggle token and log identifier.
	Name string

	// Description is a one-line summary shown by list-modules.
	Description string

	// Default is the enabled state when no flag mentions the module.
	Default bool

	// Run performs the module's work.
	Run func(*StepContext) error
}

// Registry holds the fixed, ordered module set.
type Registry struct {
	// Modules is the ordered module list.
	Modules []Module

	// ByName provides lookup by module name (stores copies, not pointers).
	ByName map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Modules: make([]Module, 0, 16),
		ByName:  make(map[string]Module),
	}
}

// Add appends a module to the registry.
func (r *Registry) Add(m Module) {
	r.Modules = append(r.Modules, m)
	r.ByName[m.Name] = m
}

// Defaults returns the module-name → default-enabled mapping.
func (r *Registry) Defaults() map[string]bool {
	defaults := make(map[string]bool, len(r.Modules))
	for _, m := range r.Modules {
		defaults[m.Name] = m.Default
	}
	return defaults
}

// Names returns the module names in execution order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Modules))
	for i, m := range r.Modules {
		names[i] = m.Name
	}
	return names
}

// DefaultRegistry builds the full module set in execution order. Every
// module defaults to enabled except nvidia, which requires --nvidia.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add(Module{NameRepos, "RPM Fusion, openh264, Flathub, COPRs", true, runRepos})
	r.Add(Module{NameCore, "core utilities and development tools", true, runCore})
	r.Add(Module{NameSecurity, "application firewall and sandboxing", true, runSecurity})
	r.Add(Module{NameMultimedia, "full ffmpeg and gstreamer codecs", true, runMultimedia})
	r.Add(Module{NamePower, "TLP power management", true, runPower})
	r.Add(Module{NameGaming, "Steam, Lutris, GameMode", true, runGaming})
	r.Add(Module{NameProductivity, "office and note-taking apps", true, runProductivity})
	r.Add(Module{NameCreative, "image, vector and 3D tools", true, runCreative})
	r.Add(Module{NameComm, "messaging apps", true, runComm})
	r.Add(Module{NameShell, "zsh and starship prompt", true, runShell})
	r.Add(Module{NameTheming, "icons, dark style, desktop preferences", true, runTheming})
	r.Add(Module{NameExtensions, "GNOME Shell extensions", true, runExtensions})
	r.Add(Module{NameNvidia, "proprietary NVIDIA driver", false, runNvidia})
	r.Add(Module{NameCleanup, "remove leftovers", true, runCleanup})
	return r
}
