// Package config loads and validates the inithome configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (INITHOME_*)
//  2. Configuration file (YAML)
//  3. Default values
//
// An init container normally receives everything through the environment;
// the file path is for local runs and debugging.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/imamik/inithome/internal/provisioning"
)

// Config holds the application configuration.
type Config struct {
	// Logging controls diagnostic output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Home describes the directory to provision
	Home HomeConfig `mapstructure:"home" yaml:"home"`

	// Owner is the identity the directory is provisioned for
	Owner OwnerConfig `mapstructure:"owner" yaml:"owner"`

	// Mode holds the permission bits as an octal string (e.g. "0700")
	Mode string `mapstructure:"mode" yaml:"mode" validate:"required"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Verbose enables per-segment progress output. Phase results and
	// warnings are always printed.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// HomeConfig describes the target directory.
type HomeConfig struct {
	// BaseDir is the absolute path of the mounted home volume.
	// It must already exist.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir" validate:"required,startswith=/"`

	// Subdirectory is an optional relative path under BaseDir that forms
	// the actual home directory. Empty targets BaseDir itself.
	Subdirectory string `mapstructure:"subdirectory" yaml:"subdirectory,omitempty"`
}

// OwnerConfig is the numeric identity applied to created directories.
type OwnerConfig struct {
	// UID is the owner user ID
	UID int `mapstructure:"uid" yaml:"uid" validate:"min=0,max=4294967294"`

	// GID is the owner group ID
	GID int `mapstructure:"gid" yaml:"gid" validate:"min=0,max=4294967294"`
}

// ToRequest converts the configuration into a provisioning request.
func (c *Config) ToRequest() (provisioning.ProvisionRequest, error) {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return provisioning.ProvisionRequest{}, provisioning.ConfigurationError{
			Field:   "Mode",
			Message: err.Error(),
		}
	}

	return provisioning.ProvisionRequest{
		BaseHomeDir:  c.Home.BaseDir,
		Subdirectory: c.Home.Subdirectory,
		OwnerUID:     c.Owner.UID,
		OwnerGID:     c.Owner.GID,
		DirMode:      mode,
	}, nil
}

// ParseMode parses an octal permission string such as "0700" or "750".
func ParseMode(s string) (os.FileMode, error) {
	bits, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("mode: %q is not an octal permission string: %w", s, err)
	}
	if bits > 0o777 {
		return 0, fmt.Errorf("mode: %q contains more than permission bits", s)
	}
	return os.FileMode(bits), nil
}
