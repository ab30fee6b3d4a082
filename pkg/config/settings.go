package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "RELCTL"

const (
	KEY_WORKSPACE = "workspace"
	KEY_PROFILE   = "profile"
	KEY_JOBS      = "jobs"
	KEY_LOG_LEVEL = "log-level"
)

// Settings are the effective options of a command execution.
// Flags take precedence over RELCTL_* environment variables,
// which take precedence over config files.
type Settings struct {
	Workspace string `mapstructure:"workspace"`
	Profile   string `mapstructure:"profile"`
	Jobs      int    `mapstructure:"jobs"`
	LogLevel  string `mapstructure:"log-level"`
}

// AddFlags declares the flags for all settings.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(KEY_WORKSPACE, "w", ".", "workspace directory")
	fs.StringP(KEY_PROFILE, "p", "all", "project profile")
	fs.IntP(KEY_JOBS, "j", DefaultJobs(), "number of concurrent project analyses")
	fs.StringP(KEY_LOG_LEVEL, "l", "warn", "log level")
}

// Resolve determines the settings from the given config, the
// environment and the flags.
func Resolve(cfg *Config, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault(KEY_WORKSPACE, ".")
	v.SetDefault(KEY_PROFILE, "all")
	v.SetDefault(KEY_JOBS, DefaultJobs())
	v.SetDefault(KEY_LOG_LEVEL, "warn")
	if cfg != nil {
		if cfg.Workspace != nil {
			v.SetDefault(KEY_WORKSPACE, *cfg.Workspace)
		}
		if cfg.Profile != nil {
			v.SetDefault(KEY_PROFILE, *cfg.Profile)
		}
		if cfg.Jobs != nil {
			v.SetDefault(KEY_JOBS, *cfg.Jobs)
		}
		if cfg.LogLevel != nil {
			v.SetDefault(KEY_LOG_LEVEL, *cfg.LogLevel)
		}
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, k := range []string{KEY_WORKSPACE, KEY_PROFILE, KEY_JOBS, KEY_LOG_LEVEL} {
			if f := flags.Lookup(k); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if s.Jobs <= 0 {
		return nil, fmt.Errorf("invalid number of jobs %d", s.Jobs)
	}
	return &s, nil
}
