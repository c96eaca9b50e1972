// Package app defines the focusplug command-line interface
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/internal/config"
)

// Get retrieves the focusplug app instance.
func Get() *cli.App {
	startCmd := &cli.Command{
		Name:   "start",
		Usage:  "Start a focus session (the default command)",
		Flags:  sessionFlags,
		Action: startAction,
	}

	return &cli.App{
		Name: "focusplug",
		Usage: `
		Focusplug runs timed focus sessions on the command-line. Distracting
		websites are blocked while a session runs, and every completed session
		counts towards your daily totals and streak.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			startCmd,
			{
				Name:  "stats",
				Usage: "Report focus time, session counts and your streak. Defaults to a period of 7 days",
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					formatFlag,
					listSessionsFlag,
				},
				Action: statsAction,
			},
			{
				Name:  "block",
				Usage: "Manage the website block list",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print the block list",
						Action: blockListAction,
					},
					{
						Name:      "add",
						Usage:     "Add websites to the block list",
						ArgsUsage: "<domain>...",
						Action:    blockAddAction,
					},
					{
						Name:      "remove",
						Aliases:   []string{"rm"},
						Usage:     "Remove websites from the block list",
						ArgsUsage: "<domain>...",
						Action:    blockRemoveAction,
					},
					{
						Name:      "set",
						Usage:     "Replace the block list with a comma or newline separated list",
						ArgsUsage: "<domains>",
						Action:    blockSetAction,
					},
					{
						Name:   "enable",
						Usage:  "Block websites during focus sessions",
						Action: blockEnableAction(true),
					},
					{
						Name:   "disable",
						Usage:  "Stop blocking websites during focus sessions",
						Action: blockEnableAction(false),
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Print the websites that are currently blocked",
				Action: statusAction,
			},
			{
				Name:  "music",
				Usage: "Browse the focus music queue",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print the playlists, local tracks and recent tracks",
						Flags:  []cli.Flag{musicDirFlag},
						Action: musicListAction,
					},
					{
						Name:   "scan",
						Usage:  "Print the audio files found in the music directory",
						Flags:  []cli.Flag{musicDirFlag},
						Action: musicScanAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  append([]cli.Flag{noColorFlag}, sessionFlags...),
		Action: startAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
