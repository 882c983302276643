package modules

import "fmt"

const flathubRepo = "https://dl.flathub.org/repo/flathub.flatpakrepo"

// runRepos registers the package sources everything later depends on:
// RPM Fusion free and nonfree, the Cisco openh264 repo, the Flathub remote
// and the starship COPR. Must run before any install module.
func runRepos(sc *StepContext) error {
	free := fmt.Sprintf(
		"https://mirrors.rpmfusion.org/free/fedora/rpmfusion-free-release-%s.noarch.rpm",
		sc.Run.FedoraVersion)
	nonfree := fmt.Sprintf(
		"https://mirrors.rpmfusion.org/nonfree/fedora/rpmfusion-nonfree-release-%s.noarch.rpm",
		sc.Run.FedoraVersion)

	if err := dnfInstall(sc, free, nonfree); err != nil {
		return err
	}

	if err := sudoRun(sc, "dnf", "config-manager", "setopt", "fedora-cisco-openh264.enabled=1"); err != nil {
		return err
	}

	if err := sc.Exec.RunInteractive(sc.Ctx, "flatpak",
		"remote-add", "--if-not-exists", "flathub", flathubRepo); err != nil {
		return err
	}

	return sudoRun(sc, "dnf", "copr", "enable", "-y", "atim/starship")
}
