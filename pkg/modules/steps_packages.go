package modules

// Package and app sets per module. These mirror the curated lists the tool
// applies; editing a list is the supported way to customize a module.
var (
	corePackages = []string{
		"git", "zsh", "curl", "wget", "unzip", "p7zip", "p7zip-plugins",
		"htop", "btop", "fastfetch", "gnome-tweaks", "dnf-plugins-core",
		"@development-tools",
	}

	multimediaPackages = []string{
		"gstreamer1-plugins-base", "gstreamer1-plugins-good",
		"gstreamer1-plugins-bad-free", "gstreamer1-plugin-openh264",
		"gstreamer1-libav", "lame",
	}

	powerPackages = []string{"tlp", "tlp-rdw"}

	gamingPackages = []string{"steam", "lutris", "gamemode", "mangohud"}
	gamingFlatpaks = []string{"com.heroicgameslauncher.hgl"}

	productivityFlatpaks = []string{
		"md.obsidian.Obsidian",
		"org.libreoffice.LibreOffice",
		"org.mozilla.Thunderbird",
		"com.github.johnfactotum.Foliate",
	}

	creativeFlatpaks = []string{
		"org.gimp.GIMP",
		"org.inkscape.Inkscape",
		"org.kde.krita",
		"org.blender.Blender",
	}

	commFlatpaks = []string{
		"org.signal.Signal",
		"org.telegram.desktop",
		"com.discordapp.Discord",
	}

	nvidiaPackages = []string{"akmod-nvidia", "xorg-x11-drv-nvidia-cuda"}
)

// runCore installs the base utility set and development tools.
func runCore(sc *StepContext) error {
	return dnfInstall(sc, corePackages...)
}

// runMultimedia swaps the crippled ffmpeg-free for the full ffmpeg from
// RPM Fusion and installs the gstreamer codec set.
func runMultimedia(sc *StepContext) error {
	if err := sudoRun(sc, "dnf", "swap", "-y", "ffmpeg-free", "ffmpeg", "--allowerasing"); err != nil {
		return err
	}
	return dnfInstall(sc, multimediaPackages...)
}

// runPower installs TLP and enables it, masking the rfkill units TLP
// replaces.
func runPower(sc *StepContext) error {
	if err := dnfInstall(sc, powerPackages...); err != nil {
		return err
	}
	if err := sudoRun(sc, "systemctl", "enable", "tlp.service"); err != nil {
		return err
	}
	return sudoRun(sc, "systemctl", "mask", "systemd-rfkill.service", "systemd-rfkill.socket")
}

// runGaming installs the native gaming stack plus the Heroic launcher.
func runGaming(sc *StepContext) error {
	if err := dnfInstall(sc, gamingPackages...); err != nil {
		return err
	}
	return flatpakInstall(sc, gamingFlatpaks...)
}

func runProductivity(sc *StepContext) error {
	return flatpakInstall(sc, productivityFlatpaks...)
}

func runCreative(sc *StepContext) error {
	return flatpakInstall(sc, creativeFlatpaks...)
}

func runComm(sc *StepContext) error {
	return flatpakInstall(sc, commFlatpaks...)
}

// runNvidia installs the proprietary driver. Default-disabled: only runs
// with --nvidia.
func runNvidia(sc *StepContext) error {
	return dnfInstall(sc, nvidiaPackages...)
}

// runCleanup removes packages nothing depends on anymore and unused
// flatpak runtimes. The scratch directory is removed by the run context
// teardown on every exit path, not here.
func runCleanup(sc *StepContext) error {
	if err := sudoRun(sc, "dnf", "autoremove", "-y"); err != nil {
		return err
	}
	return sc.Exec.RunInteractive(sc.Ctx, "flatpak", "uninstall", "--unused", "-y")
}
