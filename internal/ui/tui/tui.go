// Package tui renders the interactive session view
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/focusplug/focusplug/coordinator"
	"github.com/focusplug/focusplug/music"
	"github.com/focusplug/focusplug/timer"
)

// Controller is the part of the coordinator driven by the view.
type Controller interface {
	StartSession()
	StopSession()
	ResetSession()
	TriggerBreak()
	SkipSession()
	Snapshot() coordinator.Snapshot
}

// Options configures the view.
type Options struct {
	// Player drives the music line. It may be nil.
	Player *music.Player

	Now            func() time.Time
	DarkTheme      bool
	TwentyFourHour bool
	Debug          bool
}

type snapshotMsg coordinator.Snapshot

type closedMsg struct{}

// Model is the bubbletea model of the session view.
type Model struct {
	ctrl     Controller
	updates  <-chan coordinator.Snapshot
	opts     Options
	style    Style
	help     help.Model
	progress progress.Model
	snap     coordinator.Snapshot
}

// New creates a view over ctrl that redraws on every snapshot received from
// updates.
func New(
	ctrl Controller,
	updates <-chan coordinator.Snapshot,
	opts Options,
) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Model{
		ctrl:     ctrl,
		updates:  updates,
		opts:     opts,
		style:    NewStyle(opts.DarkTheme),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		snap:     ctrl.Snapshot(),
	}
}

func (m *Model) waitForSnapshot() tea.Msg {
	snap, ok := <-m.updates
	if !ok {
		return closedMsg{}
	}

	return snapshotMsg(snap)
}

func (m *Model) Init() tea.Cmd {
	return m.waitForSnapshot
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.opts.Debug {
		slog.Debug(spew.Sdump(msg))
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = coordinator.Snapshot(msg)
		return m, m.waitForSnapshot

	case closedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case progress.FrameMsg:
		var progressModel tea.Model

		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.toggle):
		if m.snap.Timer.Phase == timer.Running {
			m.ctrl.StopSession()
		} else {
			m.ctrl.StartSession()
		}
	case key.Matches(msg, defaultKeymap.reset):
		m.ctrl.ResetSession()
	case key.Matches(msg, defaultKeymap.brk):
		m.ctrl.TriggerBreak()
	case key.Matches(msg, defaultKeymap.skip):
		m.ctrl.SkipSession()
	case key.Matches(msg, defaultKeymap.music):
		m.togglePlayback()

		return m, nil
	case key.Matches(msg, defaultKeymap.next):
		if m.opts.Player != nil {
			m.opts.Player.Next()
		}

		return m, nil
	case key.Matches(msg, defaultKeymap.prev):
		if m.opts.Player != nil {
			m.opts.Player.Previous()
		}

		return m, nil
	case key.Matches(msg, defaultKeymap.quit):
		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	default:
		return m, nil
	}

	m.snap = m.ctrl.Snapshot()

	return m, nil
}

// togglePlayback pauses or resumes the current track, starting the first
// track of the queue when none is selected.
func (m *Model) togglePlayback() {
	p := m.opts.Player
	if p == nil {
		return
	}

	if _, ok := p.Current(); !ok {
		queue := p.Queue()
		if len(queue) == 0 {
			return
		}

		if err := p.Select(queue[0].ID); err != nil {
			slog.Warn("unable to start music", slog.Any("error", err))
		}

		return
	}

	if err := p.Toggle(); err != nil {
		slog.Warn("unable to toggle music", slog.Any("error", err))
	}
}

func (m *Model) timeFormat() string {
	if m.opts.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

func (m *Model) headerView() string {
	var s strings.Builder

	t := m.snap.Timer

	switch t.Phase {
	case timer.Running:
		end := m.opts.Now().Add(time.Duration(t.RemainingSeconds) * time.Second)

		s.WriteString(m.style.Title.Render("Focus session"))
		s.WriteString(m.style.Hint.Render("until " + end.Format(m.timeFormat())))
	default:
		s.WriteString(m.style.Title.Render("Ready"))
		s.WriteString(m.style.Hint.Render(
			fmt.Sprintf("%d minute session", t.DurationSeconds/60),
		))
	}

	return s.String()
}

func (m *Model) blockerView() string {
	b := m.snap.Blocker

	switch {
	case !b.Enabled:
		return m.style.Secondary.Render("Website blocker off")
	case b.PendingReblockAt != nil:
		return m.style.Secondary.Render(
			"On a break until " + b.PendingReblockAt.Format(m.timeFormat()),
		)
	case b.Blocking:
		return m.style.Blocking.Render(
			fmt.Sprintf("Blocking %d websites", len(b.Domains)),
		)
	default:
		return m.style.Secondary.Render(
			fmt.Sprintf("%d websites on the block list", len(b.Domains)),
		)
	}
}

func (m *Model) statsView() string {
	st := m.snap.Stats

	return m.style.Secondary.Render(fmt.Sprintf(
		"Today: %d sessions · %s   Streak: %d days",
		st.TodaysSessions,
		st.TodaysFocusTime,
		st.Streak,
	))
}

func (m *Model) musicView() string {
	t, ok := m.opts.Player.Current()
	if !ok {
		return m.style.Secondary.Render("♪ Press p to play focus music")
	}

	state := "playing"
	if !m.opts.Player.Playing() {
		state = "paused"
	}

	return m.style.Secondary.Render(
		fmt.Sprintf("♪ %s · %s (%s)", t.Title, t.Artist, state),
	)
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n\n")
	s.WriteString(m.style.Main.Render(m.snap.Timer.DisplayTime))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.snap.Timer.Progress))
	s.WriteString("\n\n")
	s.WriteString(m.blockerView())
	s.WriteString("\n")
	s.WriteString(m.statsView())
	s.WriteString("\n")

	if m.opts.Player != nil {
		s.WriteString(m.musicView())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.help.ShortHelpView(defaultKeymap.ShortHelp()))

	return m.style.Base.Render(s.String())
}
