// Package config handles configuration loading for gauge.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for gauge.
type Config struct {
	Progress ProgressConfig `mapstructure:"progress"`
	Keys     KeysConfig     `mapstructure:"keys"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProgressConfig holds the background progress source settings.
type ProgressConfig struct {
	// Interval between simulated progress ticks.
	Interval time.Duration `mapstructure:"interval"`
	// Step added on every tick, in (0, 1].
	Step float64 `mapstructure:"step"`
	// File, when set, is watched for progress values instead of ticking.
	File string `mapstructure:"file"`
}

// KeysConfig holds key bindings in bubbletea notation.
type KeysConfig struct {
	Quit   []string `mapstructure:"quit"`
	Toggle []string `mapstructure:"toggle"`
}

// ThemeConfig holds the two gauge colours.
type ThemeConfig struct {
	Primary   string `mapstructure:"primary"`
	Alternate string `mapstructure:"alternate"`
}

// UIConfig holds display text.
type UIConfig struct {
	Title string `mapstructure:"title"`
	Label string `mapstructure:"label"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	// File receives debug output while the UI is running. Empty disables it.
	File string `mapstructure:"file"`
}

// Load loads configuration.
//
// If path is non-empty only that file is read and it must exist. Otherwise
// precedence (highest to lowest) is:
// 1. Environment variables (GAUGE_PROGRESS_INTERVAL, GAUGE_KEYS_QUIT, ...)
// 2. Project config (.gauge.yaml in current directory or parent)
// 3. User config (~/.config/gauge/config.yaml)
// 4. Built-in defaults
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
		return decode(v)
	}

	// Load user config from XDG path
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	return decode(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
// Environment variables still apply.
func LoadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	cfg.Progress.File = os.ExpandEnv(cfg.Progress.File)
	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("progress.interval", d.Progress.Interval.String())
	v.SetDefault("progress.step", d.Progress.Step)
	v.SetDefault("progress.file", d.Progress.File)

	v.SetDefault("keys.quit", d.Keys.Quit)
	v.SetDefault("keys.toggle", d.Keys.Toggle)

	v.SetDefault("theme.primary", d.Theme.Primary)
	v.SetDefault("theme.alternate", d.Theme.Alternate)

	v.SetDefault("ui.title", d.UI.Title)
	v.SetDefault("ui.label", d.UI.Label)

	v.SetDefault("log.file", d.Log.File)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Progress: ProgressConfig{
			Interval: 100 * time.Millisecond,
			Step:     0.01,
		},
		Keys: KeysConfig{
			Quit:   []string{"q", "ctrl+c"},
			Toggle: []string{"c"},
		},
		Theme: ThemeConfig{
			Primary:   "10",
			Alternate: "11",
		},
		UI: UIConfig{
			Title: "Hello, World!",
			Label: "Process 1",
		},
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Progress.Interval <= 0 {
		return fmt.Errorf("progress.interval must be positive, got %s", c.Progress.Interval)
	}
	if c.Progress.Step <= 0 || c.Progress.Step > 1 {
		return fmt.Errorf("progress.step must be in (0, 1], got %v", c.Progress.Step)
	}
	if len(c.Keys.Quit) == 0 {
		return errors.New("keys.quit must bind at least one key")
	}
	if len(c.Keys.Toggle) == 0 {
		return errors.New("keys.toggle must bind at least one key")
	}
	for _, q := range c.Keys.Quit {
		for _, t := range c.Keys.Toggle {
			if q == t {
				return fmt.Errorf("key %q is bound to both quit and toggle", q)
			}
		}
	}
	return nil
}

// yamlConfig mirrors Config with durations as strings for display.
type yamlConfig struct {
	Progress struct {
		Interval string  `yaml:"interval"`
		Step     float64 `yaml:"step"`
		File     string  `yaml:"file"`
	} `yaml:"progress"`
	Keys struct {
		Quit   []string `yaml:"quit"`
		Toggle []string `yaml:"toggle"`
	} `yaml:"keys"`
	Theme struct {
		Primary   string `yaml:"primary"`
		Alternate string `yaml:"alternate"`
	} `yaml:"theme"`
	UI struct {
		Title string `yaml:"title"`
		Label string `yaml:"label"`
	} `yaml:"ui"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// YAML renders the configuration in the same shape the config files use.
func (c *Config) YAML() ([]byte, error) {
	var y yamlConfig
	y.Progress.Interval = c.Progress.Interval.String()
	y.Progress.Step = c.Progress.Step
	y.Progress.File = c.Progress.File
	y.Keys.Quit = c.Keys.Quit
	y.Keys.Toggle = c.Keys.Toggle
	y.Theme.Primary = c.Theme.Primary
	y.Theme.Alternate = c.Theme.Alternate
	y.UI.Title = c.UI.Title
	y.UI.Label = c.UI.Label
	y.Log.File = c.Log.File

	out, err := yaml.Marshal(&y)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// getUserConfigDir returns the XDG config directory for gauge.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gauge")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "gauge")
	}
	return filepath.Join(home, ".config", "gauge")
}

// findProjectConfig searches for .gauge.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".gauge.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
