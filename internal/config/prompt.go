package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
███████╗ ██████╗  ██████╗██╗   ██╗███████╗
██╔════╝██╔═══██╗██╔════╝██║   ██║██╔════╝
█████╗  ██║   ██║██║     ██║   ██║███████╗
██╔══╝  ██║   ██║██║     ██║   ██║╚════██║
██║     ╚██████╔╝╚██████╗╚██████╔╝███████║
╚═╝      ╚═════╝  ╚═════╝ ╚═════╝ ╚══════╝ plug`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	SessionMinutes int
	BlockWebsites  bool
}

// WithPromptConfig returns an Option that asks for the main settings when
// no config file exists at configPath yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		BlockWebsites: true,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure focusplug for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'focusplug edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus session length").
				Options(
					huh.NewOption("15 minutes", 15),
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("45 minutes", 45),
					huh.NewOption("60 minutes", 60),
				).
				Value(&opts.SessionMinutes),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Block distracting websites during sessions?").
				Affirmative("Yes").
				Negative("No").
				Value(&opts.BlockWebsites),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	if opts.SessionMinutes > 0 {
		c.Timer.Duration = time.Duration(opts.SessionMinutes) * time.Minute
	}

	c.Blocker.Enabled = opts.BlockWebsites
}
