package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/focusplug/focusplug/internal/apperr"
	"github.com/focusplug/focusplug/internal/config"
	"github.com/focusplug/focusplug/internal/ui"
	"github.com/focusplug/focusplug/report"
)

var errNoDomains = &apperr.Error{
	Message: "at least one domain is required",
}

// blockList is the part of the coordinator used by the block commands.
type blockList interface {
	AddWebsite(raw string) bool
	RemoveWebsite(domain string) bool
	UpdateBlockedWebsites(text string)
	SetBlockerEnabled(enabled bool)
	Websites() []string
}

// withBlockList runs fn against the coordinator of a fresh environment.
func withBlockList(ctx *cli.Context, fn func(blockList) error) error {
	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}

	defer rt.Close()

	c, err := rt.openCoordinator()
	if err != nil {
		return err
	}

	defer c.Close()

	return fn(c)
}

func blockListAction(ctx *cli.Context) error {
	return withBlockList(ctx, func(b blockList) error {
		return listWebsites(config.Stdout, b)
	})
}

func blockAddAction(ctx *cli.Context) error {
	return withBlockList(ctx, func(b blockList) error {
		return addWebsites(config.Stdout, b, ctx.Args().Slice())
	})
}

func blockRemoveAction(ctx *cli.Context) error {
	return withBlockList(ctx, func(b blockList) error {
		return removeWebsites(config.Stdout, b, ctx.Args().Slice())
	})
}

func blockSetAction(ctx *cli.Context) error {
	return withBlockList(ctx, func(b blockList) error {
		return setWebsites(config.Stdout, b, ctx.Args().Slice())
	})
}

func blockEnableAction(enabled bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		return withBlockList(ctx, func(b blockList) error {
			b.SetBlockerEnabled(enabled)

			state := ui.Red("disabled")
			if enabled {
				state = ui.Green("enabled")
			}

			_, err := fmt.Fprintf(config.Stdout, "Website blocker %s\n", state)

			return err
		})
	}
}

func listWebsites(w io.Writer, b blockList) error {
	domains := b.Websites()

	_, err := fmt.Fprintf(w, "%s websites on the block list\n", ui.Highlight(len(domains)))
	if err != nil {
		return err
	}

	return report.Websites(w, domains)
}

func addWebsites(w io.Writer, b blockList, args []string) error {
	if len(args) == 0 {
		return errNoDomains
	}

	for _, arg := range args {
		msg := "already blocked: " + arg
		if b.AddWebsite(arg) {
			msg = "added: " + arg
		}

		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}

	return nil
}

func removeWebsites(w io.Writer, b blockList, args []string) error {
	if len(args) == 0 {
		return errNoDomains
	}

	for _, arg := range args {
		msg := "not on the block list: " + arg
		if b.RemoveWebsite(arg) {
			msg = "removed: " + arg
		}

		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}

	return nil
}

// setWebsites replaces the block list. Each argument may hold several
// domains separated by commas or newlines.
func setWebsites(w io.Writer, b blockList, args []string) error {
	text := strings.ReplaceAll(strings.Join(args, "\n"), ",", "\n")

	b.UpdateBlockedWebsites(text)

	return listWebsites(w, b)
}
