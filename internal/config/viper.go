package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyTimerDuration        = "timer.duration"
	keyBreakWindow          = "blocker.break_window"
	keyBlockerEnabled       = "blocker.enabled"
	keyBlockerSites         = "blocker.sites"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationsBackend = "notifications.backend"
	keyStorageDriver        = "storage.driver"
	keyMusicDir             = "music.dir"
	keySessionCmd           = "settings.cmd"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size"
	keyLogMaxBackups        = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file is created from the current values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the values already held by c as defaults, so that
// prompt answers end up in a freshly written file.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyTimerDuration, c.Timer.Duration.String())
	v.SetDefault(keyBreakWindow, c.Blocker.BreakWindow.String())
	v.SetDefault(keyBlockerEnabled, c.Blocker.Enabled)
	v.SetDefault(keyBlockerSites, c.Blocker.Sites)
	v.SetDefault(keyNotificationsEnabled, c.Notifications.Enabled)
	v.SetDefault(keyNotificationsBackend, string(c.Notifications.Backend))
	v.SetDefault(keyStorageDriver, string(c.Storage.Driver))
	v.SetDefault(keyMusicDir, c.Music.Dir)
	v.SetDefault(keySessionCmd, c.Settings.Cmd)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
	v.SetDefault(keyTwentyFourHour, c.Display.TwentyFourHour)
	v.SetDefault(keyLogLevel, c.Log.Level)
	v.SetDefault(keyLogMaxSize, c.Log.MaxSize)
	v.SetDefault(keyLogMaxBackups, c.Log.MaxBackups)
}

// loadViperConfig replaces c with the merged configuration. Decoding into a
// fresh value keeps default slices from leaking into shorter ones.
func loadViperConfig(v *viper.Viper, c *Config) error {
	loaded := &Config{CLI: c.CLI}

	if err := v.Unmarshal(loaded); err != nil {
		return errReadConfig.Wrap(err)
	}

	*c = *loaded

	return nil
}
