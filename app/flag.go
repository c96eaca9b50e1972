package app

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/internal/timeutil"
	"github.com/focusplug/focusplug/report"
)

func periods() string {
	s := make([]string, len(timeutil.PeriodCollection))
	for i, p := range timeutil.PeriodCollection {
		s[i] = string(p)
	}

	return strings.Join(s, ", ")
}

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Session length as a duration (45m) or in minutes (default: 25)",
	}

	breakWindowFlag = &cli.StringFlag{
		Name:    "break-window",
		Aliases: []string{"b"},
		Usage:   "How long websites stay unblocked after a break (default: 5m)",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	notifyBackendFlag = &cli.StringFlag{
		Name:  "notify-backend",
		Usage: "Deliver notifications with desktop, dbus or log",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:  "disable-notification",
		Usage: "Disable the system notifications for session transitions",
	}

	noBlockFlag = &cli.BoolFlag{
		Name:  "no-block",
		Usage: "Turn the website blocker off. Re-enable it with 'focusplug block enable'",
	}

	headlessFlag = &cli.BoolFlag{
		Name:  "headless",
		Usage: "Print a plain countdown instead of the interactive view",
	}

	debugFlag = &cli.BoolFlag{
		Name:   "debug",
		Usage:  "Log every message handled by the interactive view",
		Hidden: true,
	}

	sessionFlags = []cli.Flag{
		durationFlag,
		breakWindowFlag,
		sessionCmdFlag,
		notifyBackendFlag,
		disableNotificationFlag,
		noBlockFlag,
		headlessFlag,
		debugFlag,
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   fmt.Sprintf("Reporting period. One of: %s", periods()),
		Value:   string(timeutil.Period7Days),
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Start of the reporting period (e.g. '2025-03-01', 'last monday'). Overrides --period",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "End of the reporting period (default: now)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json or yaml",
		Value:   string(report.FormatText),
	}

	listSessionsFlag = &cli.BoolFlag{
		Name:    "sessions",
		Aliases: []string{"l"},
		Usage:   "Also print every session in the period",
	}

	musicDirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory to scan for audio files (default: music.dir or the XDG music directory)",
	}
)
