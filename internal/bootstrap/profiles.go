package bootstrap

import "path/filepath"

// The static platform table. One entry per supported platform; the
// executor never branches on platform id, so a new platform is purely a
// new entry here. Package names, repository URLs and paths are
// configuration data, not logic.
var profiles = []PlatformProfile{
	{
		ID:          "debian-like",
		Family:      FamilyApt,
		ConfDir:     "/etc/salt",
		ServiceName: "salt-minion",
		Steps: join(
			[]Step{
				{
					Kind:  StepEnsureRepo,
					Name:  "register-salt-apt-source",
					Path:  "/etc/apt/sources.list.d/saltstack.list",
					Entry: "deb https://repo.saltproject.io/salt/py3/debian latest main",
				},
				{
					Kind: StepRunCommand,
					Name: "refresh-package-index",
					Cmd:  []string{"apt-get", "update"},
				},
				{
					Kind:  StepRunCommand,
					Name:  "install-salt-minion",
					Check: []string{"dpkg", "-s", "salt-minion"},
					Cmd:   []string{"apt-get", "install", "-y", "-o", "DPkg::Options::=--force-confold", "salt-minion"},
				},
			},
			secretFileSteps("/etc/salt"),
			systemdServiceSteps("salt-minion"),
		),
	},
	{
		ID:          "redhat-like",
		Family:      FamilyDnf,
		ConfDir:     "/etc/salt",
		ServiceName: "salt-minion",
		Steps: join(
			[]Step{
				{
					Kind: StepEnsureRepo,
					Name: "register-salt-yum-repo",
					Path: "/etc/yum.repos.d/salt.repo",
					Entry: "[salt]\n" +
						"name=Salt\n" +
						"baseurl=https://repo.saltproject.io/salt/py3/redhat/$releasever/$basearch/latest\n" +
						"enabled=1\n" +
						"gpgcheck=1",
				},
				{
					Kind:  StepRunCommand,
					Name:  "install-salt-minion",
					Check: []string{"rpm", "-q", "salt-minion"},
					Cmd:   []string{"dnf", "install", "-y", "salt-minion"},
				},
			},
			secretFileSteps("/etc/salt"),
			systemdServiceSteps("salt-minion"),
		),
	},
	{
		ID:          "suse-like",
		Family:      FamilyZypper,
		ConfDir:     "/etc/salt",
		ServiceName: "salt-minion",
		Steps: join(
			[]Step{
				{
					Kind:  StepRunCommand,
					Name:  "register-salt-zypper-repo",
					Check: []string{"zypper", "lr", "salt"},
					Cmd:   []string{"zypper", "--non-interactive", "addrepo", "--refresh", "https://repo.saltproject.io/salt/py3/sle/15/x86_64/latest", "salt"},
				},
				{
					Kind: StepRunCommand,
					Name: "refresh-package-index",
					Cmd:  []string{"zypper", "--non-interactive", "--gpg-auto-import-keys", "refresh"},
				},
				{
					Kind:  StepRunCommand,
					Name:  "install-salt-minion",
					Check: []string{"rpm", "-q", "salt-minion"},
					Cmd:   []string{"zypper", "--non-interactive", "install", "salt-minion"},
				},
			},
			secretFileSteps("/etc/salt"),
			systemdServiceSteps("salt-minion"),
		),
	},
	{
		ID:          "arch-like",
		Family:      FamilyPacman,
		ConfDir:     "/etc/salt",
		ServiceName: "salt-minion",
		Steps: join(
			[]Step{
				{
					Kind:  StepEnsureRepo,
					Name:  "register-salt-pacman-repo",
					Path:  "/etc/pacman.conf",
					Entry: "[salt]\nServer = https://repo.saltproject.io/salt/py3/arch/latest",
				},
				{
					Kind: StepRunCommand,
					Name: "refresh-package-index",
					Cmd:  []string{"pacman", "-Sy", "--noconfirm"},
				},
				{
					Kind:  StepRunCommand,
					Name:  "install-salt",
					Check: []string{"pacman", "-Qi", "salt"},
					Cmd:   []string{"pacman", "-S", "--noconfirm", "salt"},
				},
			},
			secretFileSteps("/etc/salt"),
			systemdServiceSteps("salt-minion"),
		),
	},
	{
		ID:          "freebsd",
		Family:      FamilyPkg,
		ConfDir:     "/usr/local/etc/salt",
		ServiceName: "salt_minion",
		Steps: join(
			[]Step{
				{
					Kind:  StepRunCommand,
					Name:  "install-salt-minion",
					Check: []string{"pkg", "info", "py39-salt"},
					Cmd:   []string{"pkg", "install", "-y", "py39-salt"},
				},
			},
			secretFileSteps("/usr/local/etc/salt"),
			[]Step{
				{
					Kind:    StepRunCommand,
					Name:    "enable-service",
					Service: true,
					Cmd:     []string{"sysrc", "salt_minion_enable=YES"},
				},
				{
					Kind:    StepRunCommand,
					Name:    "start-service",
					Service: true,
					Cmd:     []string{"service", "salt_minion", "restart"},
				},
			},
		),
	},
}

var profileIndex = func() map[string]PlatformProfile {
	m := make(map[string]PlatformProfile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return m
}()

// Profile looks up a platform by id.
func Profile(id string) (PlatformProfile, bool) {
	p, ok := profileIndex[id]
	return p, ok
}

// Profiles returns the platform table in declaration order. Callers must
// treat the result as read-only.
func Profiles() []PlatformProfile {
	return profiles
}

// secretFileSteps writes the minion key pair and rendered config to the
// fixed locations under confDir. A stale cached master key from a previous
// enrollment is removed first so the minion re-authenticates cleanly.
func secretFileSteps(confDir string) []Step {
	pkiDir := filepath.Join(confDir, "pki")
	return []Step{
		{
			Kind: StepRemovePath,
			Name: "remove-stale-master-key",
			Path: filepath.Join(pkiDir, "minion_master.pub"),
		},
		{
			Kind:    StepWriteFile,
			Name:    "write-minion-private-key",
			Path:    filepath.Join(pkiDir, "minion.pem"),
			Content: PlaceholderPrivateKey,
			Mode:    0o600,
		},
		{
			Kind:    StepWriteFile,
			Name:    "write-minion-public-key",
			Path:    filepath.Join(pkiDir, "minion.pub"),
			Content: PlaceholderPublicKey,
			Mode:    0o644,
		},
		{
			Kind:    StepWriteFile,
			Name:    "write-minion-config",
			Path:    filepath.Join(confDir, "minion"),
			Content: PlaceholderMinionConfig,
			Mode:    0o644,
		},
	}
}

func systemdServiceSteps(unit string) []Step {
	return []Step{
		{
			Kind:    StepRunCommand,
			Name:    "enable-service",
			Service: true,
			Cmd:     []string{"systemctl", "enable", unit},
		},
		{
			Kind:    StepRunCommand,
			Name:    "start-service",
			Service: true,
			Cmd:     []string{"systemctl", "restart", unit},
		},
	}
}

func join(groups ...[]Step) []Step {
	var out []Step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
