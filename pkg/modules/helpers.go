package modules

// dnfInstall installs packages through sudo dnf, attached to the terminal
// so dnf's progress output and GPG prompts reach the user. Already
// installed packages are no-ops for dnf, keeping re-runs cheap.
func dnfInstall(sc *StepContext, packages ...string) error {
	args := append([]string{"dnf", "install", "-y"}, packages...)
	return sc.Exec.RunInteractive(sc.Ctx, "sudo", args...)
}

// flatpakInstall installs apps from Flathub for the current user's system
// installation. Installed apps are no-ops for flatpak.
func flatpakInstall(sc *StepContext, refs ...string) error {
	args := append([]string{"install", "-y", "--noninteractive", "flathub"}, refs...)
	return sc.Exec.RunInteractive(sc.Ctx, "flatpak", args...)
}

// sudoRun runs an arbitrary privileged command attached to the terminal.
func sudoRun(sc *StepContext, args ...string) error {
	return sc.Exec.RunInteractive(sc.Ctx, "sudo", args...)
}

// gsettingsSet writes one desktop preference key.
func gsettingsSet(sc *StepContext, schema, key, value string) error {
	_, err := sc.Exec.Run(sc.Ctx, "gsettings", "set", schema, key, value)
	return err
}
