// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"gust-cli/pkg/cueutil"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "gust"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

type (
	// Config is the loaded user configuration. Zero values mean "not
	// configured": the CLI applies its own defaults on top.
	Config struct {
		// Shell is the interpreter recipe lines are dispatched to.
		Shell string `mapstructure:"shell"`
		// ShellArgs are passed to the shell before the command string.
		ShellArgs []string `mapstructure:"shell_args"`
		// Virtual selects the embedded POSIX interpreter.
		Virtual bool `mapstructure:"virtual"`
		// Highlight renders echoed recipe lines in bold.
		Highlight bool `mapstructure:"highlight"`
		// Color controls ANSI output: "auto", "always", or "never".
		Color string `mapstructure:"color"`
		// Quiet suppresses recipe line echoing.
		Quiet bool `mapstructure:"quiet"`
		// Verbose enables diagnostic logging.
		Verbose bool `mapstructure:"verbose"`
	}

	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath loads exactly this file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the platform config directory.
		ConfigDirPath string
	}
)

// DefaultConfig returns the built-in defaults applied before any file is
// read.
func DefaultConfig() *Config {
	return &Config{
		Highlight: true,
		Color:     "auto",
	}
}

// ConfigDir returns the gust configuration directory using the platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on
// macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the user configuration. A missing config file is not an
// error: the defaults are returned. The second return value is the path
// of the file actually loaded, or "" when none was.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("shell_args", defaults.ShellArgs)
	v.SetDefault("virtual", defaults.Virtual)
	v.SetDefault("highlight", defaults.Highlight)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("quiet", defaults.Quiet)
	v.SetDefault("verbose", defaults.Verbose)

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", err
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			var err error
			cfgDir, err = ConfigDir()
			if err != nil {
				return nil, "", err
			}
		}
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", err
			}
			resolvedPath = cuePath
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. Decoding goes through a
// map rather than a struct so Viper's default and override layering
// stays intact; Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
