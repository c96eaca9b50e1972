package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/coordinator"
	"github.com/focusplug/focusplug/enforce"
	"github.com/focusplug/focusplug/internal/apperr"
	"github.com/focusplug/focusplug/internal/config"
	"github.com/focusplug/focusplug/internal/osutil"
	"github.com/focusplug/focusplug/internal/pathutil"
	"github.com/focusplug/focusplug/internal/timeutil"
	"github.com/focusplug/focusplug/internal/ui"
	"github.com/focusplug/focusplug/internal/ui/tui"
	"github.com/focusplug/focusplug/music"
	"github.com/focusplug/focusplug/report"
	"github.com/focusplug/focusplug/stats"
	"github.com/focusplug/focusplug/timer"
)

const (
	envNoColor = "NO_COLOR"

	// snapshots buffered for the view; older ones are dropped when it lags
	updatesBuffer = 8
)

var (
	errUnknownPeriod = &apperr.Error{
		Message: "unknown period %q, expected one of: %s",
	}

	errInvalidDate = &apperr.Error{
		Message: "invalid %s date",
	}

	errPeriodOrder = &apperr.Error{
		Message: "the start date must not be after the end date",
	}
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// startAction runs one or more focus sessions in the interactive view, or a
// single session with a plain countdown when --headless is set.
func startAction(ctx *cli.Context) error {
	rt, err := newRuntime(ctx, !ctx.Bool("headless"))
	if err != nil {
		return err
	}

	defer rt.Close()

	c, err := rt.openCoordinator()
	if err != nil {
		return err
	}

	defer c.Close()

	if ctx.Bool("no-block") {
		c.SetBlockerEnabled(false)
	}

	if rt.cfg.CLI.Headless {
		return runHeadless(ctx.Context, c, config.Stdout)
	}

	m := tui.New(c, c.Subscribe(updatesBuffer), tui.Options{
		Player:         music.NewPlayer(localTracks(rt.cfg.Music.Dir)),
		Now:            rt.clock.Now,
		DarkTheme:      rt.cfg.Display.DarkTheme,
		TwentyFourHour: rt.cfg.Display.TwentyFourHour,
		Debug:          ctx.Bool("debug"),
	})

	c.StartSession()

	_, err = tea.NewProgram(m).Run()

	// quitting mid-session records it as abandoned
	c.StopSession()

	return err
}

// runHeadless starts a session and prints the remaining time until the
// session completes or the process is interrupted.
func runHeadless(
	ctx context.Context,
	c *coordinator.Coordinator,
	w io.Writer,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})

	c.OnSessionEvent(func(e timer.Event) {
		if e.Kind == timer.SessionCompleted {
			close(done)
		}
	})

	updates := c.Subscribe(updatesBuffer)

	fmt.Fprintf(w, "Focus session started: %s\n", c.DisplayTime())

	c.StartSession()

	for {
		select {
		case <-ctx.Done():
			c.StopSession()
			fmt.Fprintln(w, "\nSession stopped")

			return nil
		case <-done:
			fmt.Fprintln(w, "\nSession complete")

			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}

			if snap.Timer.Phase == timer.Running {
				fmt.Fprintf(w, "\r%s ", snap.Timer.DisplayTime)
			}
		}
	}
}

// periodRange resolves the reporting period from --period, --start and
// --end.
func periodRange(
	period, start, end string,
	now time.Time,
) (time.Time, time.Time, error) {
	p := timeutil.Period(period)
	if _, ok := timeutil.Range[p]; !ok {
		return time.Time{}, time.Time{}, errUnknownPeriod.Fmt(period, periods())
	}

	from, to := timeutil.PeriodRange(p, now)

	if start != "" {
		t, err := timeutil.FromStr(start, now)
		if err != nil {
			return from, to, errInvalidDate.Fmt("start").Wrap(err)
		}

		from = t
		to = now
	}

	if end != "" {
		t, err := timeutil.FromStr(end, now)
		if err != nil {
			return from, to, errInvalidDate.Fmt("end").Wrap(err)
		}

		to = t
	}

	if !from.IsZero() && from.After(to) {
		return from, to, errPeriodOrder
	}

	return from, to, nil
}

// statsAction reports the ledger and the session history of a period.
func statsAction(ctx *cli.Context) error {
	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}

	defer rt.Close()

	now := rt.clock.Now()

	start, end, err := periodRange(
		ctx.String("period"),
		ctx.String("start"),
		ctx.String("end"),
		now,
	)
	if err != nil {
		return err
	}

	sessions, err := rt.db.GetSessions(start, end)
	if err != nil {
		return err
	}

	c, err := rt.openCoordinator()
	if err != nil {
		return err
	}

	defer c.Close()

	format := report.Format(ctx.String("format"))

	err = report.Stats(config.Stdout, format, c.Stats(), stats.Summarize(sessions, start, end))
	if err != nil {
		return err
	}

	if ctx.Bool("sessions") && (format == report.FormatText || format == "") {
		return report.Sessions(config.Stdout, sessions)
	}

	return nil
}

// statusAction prints the block list enforced by a running session.
func statusAction(_ *cli.Context) error {
	e, err := config.ParseEnv()
	if err != nil {
		return err
	}

	if err := pathutil.Initialize(e.Name); err != nil {
		return err
	}

	st, err := enforce.ReadStatus(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	return report.Status(config.Stdout, st)
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// creates the config file on first use
	if _, err := loadConfig(ctx, true); err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		ui.DisableStyling()
	}

	// Disable colour output if FOCUSPLUG_NO_COLOR is set
	if e, err := config.ParseEnv(); err == nil && e.NoColor {
		ui.DisableStyling()
	}

	if ctx.Bool("no-color") {
		ui.DisableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting focusplug")

	return nil
}
