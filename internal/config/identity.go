package config

// Identity groups the fixed names prefix-sync uses to find its configuration
// and to address the service manager. It is built once at startup and passed
// down explicitly.
type Identity struct {
	AppName           string
	EnvPrefix         string
	ConfigPaths       []string
	SystemdBusName    string
	SystemdObjectPath string
	UnitMode          string
	LegacySection     string
}

// DefaultIdentity returns the identity used by the prefix-sync binary.
func DefaultIdentity() Identity {
	return Identity{
		AppName:   "prefix-sync",
		EnvPrefix: "PREFIX_SYNC",
		ConfigPaths: []string{
			"$HOME/.config/prefix-sync",
			"/etc/prefix-sync",
			".",
		},
		SystemdBusName:    "org.freedesktop.systemd1",
		SystemdObjectPath: "/org/freedesktop/systemd1",
		UnitMode:          "replace",
		LegacySection:     "main",
	}
}
