package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("focusplug", flag.ContinueOnError)

	for _, name := range []string{"duration", "break-window", "session-cmd", "notify-backend"} {
		_ = f.String(name, "", "")
	}

	for _, name := range []string{"disable-notification", "no-block", "headless"} {
		_ = f.Bool(name, false, "")
	}

	for k, v := range flags {
		require.NoError(t, f.Set(k, v))
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestWithCLIConfig(t *testing.T) {
	testCases := []struct {
		name   string
		flags  map[string]string
		assert func(t *testing.T, c *Config)
	}{
		{
			name: "no flags keeps defaults",
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, Defaults(), c)
			},
		},
		{
			name:  "duration in minutes",
			flags: map[string]string{"duration": "45"},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, 45*time.Minute, c.Timer.Duration)
			},
		},
		{
			name:  "duration string",
			flags: map[string]string{"duration": "1h30m", "break-window": "90s"},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, 90*time.Minute, c.Timer.Duration)
				assert.Equal(t, 90*time.Second, c.Blocker.BreakWindow)
			},
		},
		{
			name: "toggles",
			flags: map[string]string{
				"disable-notification": "true",
				"no-block":             "true",
				"headless":             "true",
				"notify-backend":       "log",
				"session-cmd":          "echo done",
			},
			assert: func(t *testing.T, c *Config) {
				assert.False(t, c.Notifications.Enabled)
				assert.False(t, c.Blocker.Enabled)
				assert.True(t, c.CLI.Headless)
				assert.Equal(t, "log", string(c.Notifications.Backend))
				assert.Equal(t, "echo done", c.Settings.Cmd)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Defaults()

			err := WithCLIConfig(newContext(t, tc.flags))(c)
			require.NoError(t, err)

			tc.assert(t, c)
		})
	}
}

func TestWithCLIConfigBadDuration(t *testing.T) {
	c := Defaults()

	err := WithCLIConfig(newContext(t, map[string]string{"duration": "soon"}))(c)
	assert.Error(t, err)
	assert.Equal(t, 25*time.Minute, c.Timer.Duration)
}
