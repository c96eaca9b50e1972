package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/notify"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Duration      string
	BreakWindow   string
	SessionCmd    string
	Backend       string
	DisableNotify bool
	NoBlock       bool
	Headless      bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags that were not set leave the current values alone.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Duration:      ctx.String("duration"),
			BreakWindow:   ctx.String("break-window"),
			SessionCmd:    ctx.String("session-cmd"),
			Backend:       ctx.String("notify-backend"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoBlock:       ctx.Bool("no-block"),
			Headless:      ctx.Bool("headless"),
		}

		return applyCLIOptions(c, &opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts *CLIOptions) error {
	if opts.Duration != "" {
		d, err := parseDuration(opts.Duration)
		if err != nil {
			return errInvalidCLIDuration.Fmt("session", opts.Duration).Wrap(err)
		}

		c.Timer.Duration = d
	}

	if opts.BreakWindow != "" {
		d, err := parseDuration(opts.BreakWindow)
		if err != nil {
			return errInvalidCLIDuration.Fmt("break", opts.BreakWindow).Wrap(err)
		}

		c.Blocker.BreakWindow = d
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Backend != "" {
		c.Notifications.Backend = notify.Backend(opts.Backend)
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.NoBlock {
		c.Blocker.Enabled = false
	}

	c.CLI.Headless = opts.Headless

	return nil
}

// parseDuration accepts Go duration strings and bare numbers of minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	return time.ParseDuration(s + "m")
}
