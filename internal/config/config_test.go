package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusplug/focusplug/internal/config"
	"github.com/focusplug/focusplug/notify"
	"github.com/focusplug/focusplug/store"
)

const modifiedConfig = `timer:
  duration: 50m
blocker:
  break_window: 10m
  enabled: false
  sites:
    - news.ycombinator.com
    - lobste.rs
notifications:
  enabled: true
  backend: dbus
storage:
  driver: sqlite
music:
  dir: /srv/music
settings:
  cmd: notify-send done
display:
  dark_theme: false
  24hr_clock: true
log:
  level: debug
  max_size: 5
  max_backups: 1
`

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(config.Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	assert.FileExists(t, configPath)

	// a second load reads the file that was just written
	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(modifiedConfig), 0o600))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	want := &config.Config{
		Timer: config.TimerConfig{
			Duration: 50 * time.Minute,
		},
		Blocker: config.BlockerConfig{
			BreakWindow: 10 * time.Minute,
			Enabled:     false,
			Sites:       []string{"news.ycombinator.com", "lobste.rs"},
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
			Backend: notify.BackendDBus,
		},
		Storage: config.StorageConfig{
			Driver: store.DriverSQLite,
		},
		Music: config.MusicConfig{
			Dir: "/srv/music",
		},
		Settings: config.SettingsConfig{
			Cmd: "notify-send done",
		},
		Display: config.DisplayConfig{
			DarkTheme:      false,
			TwentyFourHour: true,
		},
		Log: config.LogConfig{
			Level:      "debug",
			MaxSize:    5,
			MaxBackups: 1,
		},
	}

	assert.Equal(t, want, cfg)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *config.Config)
		valid  bool
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
			valid:  true,
		},
		{
			name:   "zero duration",
			modify: func(c *config.Config) { c.Timer.Duration = 0 },
		},
		{
			name:   "duration over twelve hours",
			modify: func(c *config.Config) { c.Timer.Duration = 13 * time.Hour },
		},
		{
			name:   "break window too long",
			modify: func(c *config.Config) { c.Blocker.BreakWindow = 2 * time.Hour },
		},
		{
			name:   "unknown backend",
			modify: func(c *config.Config) { c.Notifications.Backend = "pigeon" },
		},
		{
			name:   "unknown driver",
			modify: func(c *config.Config) { c.Storage.Driver = "csv" },
		},
		{
			name:   "bad log level",
			modify: func(c *config.Config) { c.Log.Level = "loud" },
		},
		{
			name:   "negative rotation",
			modify: func(c *config.Config) { c.Log.MaxBackups = -1 },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Defaults()
			tc.modify(c)

			err := c.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := config.New(func(c *config.Config) error {
		c.Timer.Duration = -time.Minute
		return nil
	})
	require.Error(t, err)

	optErr := errors.New("boom")

	_, err = config.New(func(*config.Config) error {
		return optErr
	})
	assert.ErrorIs(t, err, optErr)
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("FOCUSPLUG_ENV", "dev")
	t.Setenv("FOCUSPLUG_LOG_LEVEL", "warn")

	e, err := config.ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev", e.Name)

	cfg, err := config.New(config.WithEnvConfig(e))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
