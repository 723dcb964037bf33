package config

// Default values applied when neither the environment nor the config file
// provides one. UID and GID deliberately have no usable default: leaving
// them at -1 fails validation, because silently provisioning for root is
// worse than failing the init container.
const (
	DefaultBaseDir = "/home"
	DefaultMode    = "0700"

	unsetID = -1
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.Home.BaseDir == "" {
		cfg.Home.BaseDir = DefaultBaseDir
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
}
