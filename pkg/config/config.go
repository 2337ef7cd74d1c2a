// Package config assembles one invocation's settings from layered sources:
// a default env file next to the executable, an explicitly named env file,
// the process environment, and command-line flags, lowest precedence first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hardwaylabs/conacct/pkg/cli"
)

const (
	// EnvPrefix namespaces process-environment overrides, e.g.
	// CONACCT_ACCESS_TOKEN.
	EnvPrefix = "CONACCT"

	// DefaultEnvFile is looked up in the executable's directory and loaded
	// when present.
	DefaultEnvFile = "conacct.env"

	// DefaultTimeout is the request timeout applied when no other source
	// sets one.
	DefaultTimeout = 30 * time.Second
)

// Config holds one invocation's settings. Populated once at startup and not
// mutated afterwards.
type Config struct {
	AccessToken        string        `mapstructure:"access_token"`
	ConnectedAccountID string        `mapstructure:"connected_account_id"`
	Verbose            bool          `mapstructure:"verbose"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// NewViper builds the viper instance the command binds its flags into.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("env")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("timeout", DefaultTimeout)
	return v
}

// DefaultEnvPath returns the path of the default env file, resolved relative
// to the running executable. The empty string means the location could not be
// determined, in which case the default layer is skipped.
func DefaultEnvPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), DefaultEnvFile)
}

// Load merges the default env file (silently skipped when absent) and the
// explicit env file (fatal when absent) into v, then unmarshals the final
// view. Flags bound into v before Load keep the highest precedence.
func Load(v *viper.Viper, defaultFile, explicitFile string) (*Config, error) {
	if defaultFile != "" {
		if err := mergeEnvFile(v, defaultFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading default env file %s: %w", defaultFile, err)
		}
	}
	if explicitFile != "" {
		if err := mergeEnvFile(v, explicitFile); err != nil {
			return nil, cli.Wrap(cli.KindGeneral,
				fmt.Errorf("loading env file %s: %w", explicitFile, err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func mergeEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	return v.MergeInConfig()
}
