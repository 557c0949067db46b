// Package config loads tool settings from a config file and environment
// variables. Precedence: flags (handled by the CLI) over environment
// variables (AGENT_AUDIT_*) over the config file over defaults.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	// AppName is used for the config file name (~/.agent-audit.yaml).
	AppName = "agent-audit"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "AGENT_AUDIT"
)

// Settings holds the tool configuration.
type Settings struct {
	Debug           bool   `mapstructure:"debug"`
	LogFormat       string `mapstructure:"log_format"`
	DefaultProvider string `mapstructure:"default_provider"`
	PricingFile     string `mapstructure:"pricing_file"`
	FailUnder       int    `mapstructure:"fail_under"`
}

var (
	// Instance is the loaded configuration.
	Instance Settings

	v        *viper.Viper
	initOnce sync.Once
)

// Initialize sets up the configuration system. cfgFile overrides the default
// search locations when non-empty.
func Initialize(cfgFile string) error {
	var err error

	initOnce.Do(func() {
		v = viper.New()
		setDefaults(v)

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName("." + AppName)
			v.SetConfigType("yaml")
			v.AddConfigPath("$HOME")
			v.AddConfigPath(".")
		}

		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
				err = fmt.Errorf("error reading config file: %w", readErr)
				return
			}
		}

		if unmarshalErr := v.Unmarshal(&Instance); unmarshalErr != nil {
			err = fmt.Errorf("error parsing config: %w", unmarshalErr)
		}
	})

	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("default_provider", "")
	v.SetDefault("pricing_file", "")
	v.SetDefault("fail_under", 0)
}
