// Package config assembles the focusplug configuration from the config file,
// the first-run prompt, command-line flags and the environment
package config

import (
	"io"
	"os"
	"time"

	"github.com/focusplug/focusplug/blocker"
	"github.com/focusplug/focusplug/notify"
	"github.com/focusplug/focusplug/store"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer         TimerConfig        `mapstructure:"timer"`
		Blocker       BlockerConfig      `mapstructure:"blocker"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Music         MusicConfig        `mapstructure:"music"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Display       DisplayConfig      `mapstructure:"display"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// TimerConfig holds session settings.
	TimerConfig struct {
		Duration time.Duration `mapstructure:"duration"`
	}

	// BlockerConfig holds website blocker settings. Enabled and Sites only
	// seed a fresh database; afterwards the stored values win.
	BlockerConfig struct {
		Sites       []string      `mapstructure:"sites"`
		BreakWindow time.Duration `mapstructure:"break_window"`
		Enabled     bool          `mapstructure:"enabled"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Backend notify.Backend `mapstructure:"backend"`
		Enabled bool           `mapstructure:"enabled"`
	}

	// StorageConfig selects the database backend.
	StorageConfig struct {
		Driver store.Driver `mapstructure:"driver"`
	}

	// MusicConfig holds music queue settings.
	MusicConfig struct {
		Dir string `mapstructure:"dir"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		Cmd string `mapstructure:"cmd"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// LogConfig holds log file settings.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds per-invocation settings that are never written to the
	// config file.
	CLIConfig struct {
		Headless bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Defaults returns the configuration used when no config file exists.
func Defaults() *Config {
	sites := make([]string, len(blocker.DefaultSites))
	copy(sites, blocker.DefaultSites)

	return &Config{
		Timer: TimerConfig{
			Duration: 25 * time.Minute,
		},
		Blocker: BlockerConfig{
			BreakWindow: blocker.DefaultBreakWindow,
			Enabled:     true,
			Sites:       sites,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Backend: notify.BackendDesktop,
		},
		Storage: StorageConfig{
			Driver: store.DriverBolt,
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}

// New creates a Config with default values and applies opts in order.
func New(opts ...Option) (*Config, error) {
	cfg := Defaults()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
