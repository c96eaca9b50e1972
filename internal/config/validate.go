package config

import (
	"log/slog"
	"slices"
	"time"

	"github.com/focusplug/focusplug/notify"
	"github.com/focusplug/focusplug/store"
)

var (
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	minBreakWindow = 1 * time.Second
	maxBreakWindow = 1 * time.Hour

	backends = []notify.Backend{
		notify.BackendDesktop,
		notify.BackendDBus,
		notify.BackendLog,
	}

	drivers = []store.Driver{store.DriverBolt, store.DriverSQLite}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Timer.Duration < minSessionDuration ||
		c.Timer.Duration > maxSessionDuration {
		return errInvalidDuration.Fmt(
			"session duration",
			minSessionDuration,
			maxSessionDuration,
			c.Timer.Duration,
		)
	}

	if c.Blocker.BreakWindow < minBreakWindow ||
		c.Blocker.BreakWindow > maxBreakWindow {
		return errInvalidDuration.Fmt(
			"break window",
			minBreakWindow,
			maxBreakWindow,
			c.Blocker.BreakWindow,
		)
	}

	if !slices.Contains(backends, c.Notifications.Backend) {
		return errUnknownBackend.Fmt(c.Notifications.Backend)
	}

	if !slices.Contains(drivers, c.Storage.Driver) {
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 {
		return errInvalidLogRotation
	}

	return nil
}

// SlogLevel parses Level.
func (l *LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errInvalidLogLevel.Fmt(l.Level)
	}

	return level, nil
}
