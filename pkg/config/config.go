package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/relplan/pkg/utils"
)

const CONFIG_FILE = ".relctl"

// Config is the content of a config file. Unset fields do not
// override the values of earlier read files.
type Config struct {
	Workspace *string `json:"workspace,omitempty"`
	Profile   *string `json:"profile,omitempty"`
	Jobs      *int    `json:"jobs,omitempty"`
	LogLevel  *string `json:"logLevel,omitempty"`
}

// DefaultJobs is the default number of concurrent project analyses.
func DefaultJobs() int {
	return max(32, runtime.NumCPU()+4)
}

// GetConfig reads and merges the config files found in the home
// directory, the user config directory and the given directory.
func GetConfig(dir string, fss ...vfs.FileSystem) (*Config, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, CONFIG_FILE))
	}
	if cfgdir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(cfgdir, CONFIG_FILE))
	}
	paths = append(paths, filepath.Join(dir, CONFIG_FILE))

	var cfg Config
	for _, p := range paths {
		add, err := ReadConfig(p, fs)
		if err != nil {
			return nil, err
		}
		MergeConfig(&cfg, add)
	}
	return &cfg, nil
}

// ReadConfig reads a config file after expanding environment
// variable references. A missing file yields nil.
func ReadConfig(path string, fss ...vfs.FileSystem) (*Config, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	text, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg Config
	err = yaml.UnmarshalStrict([]byte(text), &cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.Workspace != nil {
		cfg.Workspace = add.Workspace
	}
	if add.Profile != nil {
		cfg.Profile = add.Profile
	}
	if add.Jobs != nil {
		cfg.Jobs = add.Jobs
	}
	if add.LogLevel != nil {
		cfg.LogLevel = add.LogLevel
	}
}
