package app

import (
	"io"
	"log/slog"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/coordinator"
	"github.com/focusplug/focusplug/enforce"
	"github.com/focusplug/focusplug/internal/apperr"
	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/internal/config"
	"github.com/focusplug/focusplug/internal/logger"
	"github.com/focusplug/focusplug/internal/pathutil"
	"github.com/focusplug/focusplug/internal/ui"
	"github.com/focusplug/focusplug/notify"
	"github.com/focusplug/focusplug/store"
	"github.com/focusplug/focusplug/timer"
)

var errSessionCmd = &apperr.Error{
	Message: "unable to parse session command %q",
}

// environment holds the resources shared by every command.
type environment struct {
	cfg     *config.Config
	clock   clock.Clock
	db      store.DB
	writer  *store.Writer
	closers []io.Closer
}

// loadConfig assembles the configuration from the config file, the
// environment and the command-line flags. The first-run prompt is shown only
// when interactive is set.
func loadConfig(ctx *cli.Context, interactive bool) (*config.Config, error) {
	e, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	err = pathutil.Initialize(e.Name)
	if err != nil {
		return nil, err
	}

	configPath := pathutil.ConfigFilePath()

	var opts []config.Option
	if interactive {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(
		opts,
		config.WithViperConfig(configPath),
		config.WithEnvConfig(e),
		config.WithCLIConfig(ctx),
	)

	return config.New(opts...)
}

// newRuntime loads the configuration, starts logging and opens the database.
func newRuntime(ctx *cli.Context, interactive bool) (*environment, error) {
	cfg, err := loadConfig(ctx, interactive)
	if err != nil {
		return nil, err
	}

	// the level was checked by Validate
	level, _ := cfg.Log.SlogLevel()

	rt := &environment{
		cfg:   cfg,
		clock: clock.New(),
	}

	rt.closers = append(rt.closers, logger.Init(logger.Options{
		Path:       pathutil.LogFilePath(),
		Level:      level,
		MaxSizeMB:  cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
	}))

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.Open(cfg.Storage.Driver, pathutil.DBFilePath())
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.db = db
	rt.writer = store.NewWriter(db)

	slog.Debug("runtime ready",
		slog.String("driver", string(cfg.Storage.Driver)),
		slog.String("config", pathutil.ConfigFilePath()),
	)

	return rt, nil
}

// openCoordinator assembles a coordinator over the environment's store.
func (r *environment) openCoordinator() (*coordinator.Coordinator, error) {
	notifier, err := notify.New(
		r.cfg.Notifications.Backend,
		r.cfg.Notifications.Enabled,
		"",
	)
	if err != nil {
		slog.Warn(
			"notifications fall back to the log",
			slog.Any("error", err),
		)

		notifier = notify.Log{}
	}

	if c, ok := notifier.(io.Closer); ok {
		r.closers = append(r.closers, c)
	}

	hook, err := sessionCmdHook(r.cfg.Settings.Cmd)
	if err != nil {
		return nil, err
	}

	c := coordinator.New(&coordinator.Config{
		Clock:    r.clock,
		Notifier: notifier,
		Enforcer: enforce.Chain{
			&enforce.Simulated{},
			&enforce.StatusFile{
				Path: pathutil.StatusFilePath(),
				Now:  r.clock.Now,
			},
		},
		DB:              r.db,
		Writer:          r.writer,
		DefaultSites:    r.cfg.Blocker.Sites,
		Duration:        r.cfg.Timer.Duration,
		BreakWindow:     r.cfg.Blocker.BreakWindow,
		BlockerDisabled: !r.cfg.Blocker.Enabled,
	})

	if hook != nil {
		c.OnSessionEvent(hook)
	}

	return c, nil
}

// Close flushes pending writes and releases every resource.
func (r *environment) Close() {
	if r.writer != nil {
		r.writer.Close()
	}

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			slog.Error("unable to close database", slog.Any("error", err))
		}
	}

	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// sessionCmdHook returns a session hook that runs cmdline after every
// completed session, or nil if cmdline is empty.
func sessionCmdHook(cmdline string) (func(timer.Event), error) {
	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errSessionCmd.Fmt(cmdline).Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	return func(e timer.Event) {
		if e.Kind != timer.SessionCompleted {
			return
		}

		// hooks run under the coordinator lock
		go runSessionCmd(cmdSlice[0], cmdSlice[1:])
	}, nil
}

func runSessionCmd(name string, args []string) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		slog.Error(
			"session command failed",
			slog.String("cmd", name),
			slog.Any("error", err),
			slog.String("output", string(out)),
		)

		return
	}

	slog.Info("session command finished", slog.String("cmd", name))
}
