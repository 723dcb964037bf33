package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
//
// Precedence (highest to lowest): environment variables (INITHOME_*),
// configuration file, defaults. An empty configPath means no file is
// required; a missing file is only an error when it was named explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment binding, identity sentinels, and the
// config file location.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the INITHOME_ prefix with underscores.
	// Example: INITHOME_HOME_BASE_DIR=/home INITHOME_OWNER_UID=1000
	v.SetEnvPrefix("INITHOME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a registered default so AutomaticEnv surfaces it
	// during Unmarshal. The identity sentinel makes "never configured"
	// distinguishable from an explicit uid/gid of zero, which is allowed.
	v.SetDefault("home.base_dir", "")
	v.SetDefault("home.subdirectory", "")
	v.SetDefault("mode", "")
	v.SetDefault("owner.uid", unsetID)
	v.SetDefault("owner.gid", unsetID)
	v.SetDefault("logging.verbose", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("inithome")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper, configPath string) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && configPath == "" {
		// Pure environment-driven operation, the normal case inside an
		// init container.
		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}
