// Package coordinator composes the session timer, the blocker and the stats
// ledger behind a single facade. It is the only caller of the blocker and the
// ledger, and it decides the order in which a session transition reaches
// them.
package coordinator

import (
	"log/slog"
	"sync"
	"time"

	"github.com/focusplug/focusplug/blocker"
	"github.com/focusplug/focusplug/enforce"
	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/internal/models"
	"github.com/focusplug/focusplug/notify"
	"github.com/focusplug/focusplug/stats"
	"github.com/focusplug/focusplug/store"
	"github.com/focusplug/focusplug/timer"
)

// Writer persists state without blocking the caller.
type Writer interface {
	Save(entries map[string]any)
	AddSession(sess models.Session)
}

// Config holds the collaborators of a Coordinator. Only Clock and Enforcer
// are required.
type Config struct {
	Clock    clock.Clock
	Notifier notify.Notifier
	Enforcer enforce.Enforcer
	// DB is read once to restore the block list and the stats ledger
	DB     store.Reader
	Writer Writer
	// DefaultSites seeds the block list when none has been saved
	DefaultSites    []string
	Duration        time.Duration
	BreakWindow     time.Duration
	BlockerDisabled bool
}

// Snapshot is an immutable view of the whole coordinator state.
type Snapshot struct {
	Blocker blocker.State  `json:"blocker" yaml:"blocker"`
	Timer   timer.Snapshot `json:"timer"   yaml:"timer"`
	Stats   stats.Snapshot `json:"stats"   yaml:"stats"`
}

// Coordinator is safe for concurrent use. Timer ticks and the deferred
// re-block run under the same lock as the facade methods.
type Coordinator struct {
	mu           sync.Mutex
	clock        clock.Clock
	timer        *timer.Timer
	blocker      *blocker.Blocker
	ledger       *stats.Ledger
	writer       Writer
	sessionStart time.Time
	subscribers  []chan Snapshot
	hooks        []func(timer.Event)
	ready        bool
	closed       bool
}

// New restores persisted state and returns an idle coordinator.
func New(cfg *Config) *Coordinator {
	c := &Coordinator{
		clock:  cfg.Clock,
		writer: cfg.Writer,
	}

	var persister blocker.Persister
	if cfg.Writer != nil {
		persister = cfg.Writer
	}

	c.ledger = stats.Load(cfg.Clock, cfg.DB, persister)

	domains, enabled := restoreBlockList(cfg)

	c.blocker = blocker.New(
		cfg.Clock,
		cfg.Enforcer,
		persister,
		blocker.WithLocker(&c.mu),
		blocker.WithBreakWindow(cfg.BreakWindow),
		blocker.WithDomains(domains),
		blocker.WithEnabled(enabled),
		blocker.WithChangeHandler(func(blocker.State) {
			c.publish()
		}),
	)

	c.timer = timer.New(
		cfg.Clock,
		cfg.Notifier,
		timer.WithDuration(int(cfg.Duration/time.Second)),
		timer.WithLocker(&c.mu),
		timer.WithEventHandler(c.handleEvent),
		timer.WithChangeHandler(func(timer.Snapshot) {
			c.publish()
		}),
	)

	c.ready = true

	return c
}

func restoreBlockList(cfg *Config) (domains []string, enabled bool) {
	domains = cfg.DefaultSites
	if domains == nil {
		domains = blocker.DefaultSites
	}

	enabled = !cfg.BlockerDisabled

	if cfg.DB == nil {
		return domains, enabled
	}

	saved, ok, err := store.Load[[]string](cfg.DB, store.KeyBlockedWebsites)
	if err != nil {
		slog.Error("unable to load block list", slog.Any("error", err))
	} else if ok {
		domains = saved
	}

	on, ok, err := store.Load[bool](cfg.DB, store.KeyWebsiteBlockerEnabled)
	if err != nil {
		slog.Error("unable to load blocker state", slog.Any("error", err))
	} else if ok {
		enabled = on
	}

	return domains, enabled
}

// handleEvent runs the side effects of a session transition in a fixed
// order. It is called by the timer with c.mu held.
func (c *Coordinator) handleEvent(e timer.Event) {
	slog.Info(
		"session transition",
		slog.String("event", string(e.Kind)),
		slog.Int("duration_seconds", e.Snapshot.DurationSeconds),
		slog.Int("remaining_seconds", e.Snapshot.RemainingSeconds),
	)

	switch e.Kind {
	case timer.SessionStarted:
		c.sessionStart = e.At
		c.blocker.BlockWebsites()
	case timer.SessionStopped:
		c.blocker.UnblockAll()
		c.recordSession(e, false)
	case timer.SessionCompleted:
		c.ledger.RecordCompletion(e.Snapshot.DurationSeconds)
		c.blocker.UnblockAll()
		c.recordSession(e, true)
	}

	for _, hook := range c.hooks {
		hook(e)
	}
}

func (c *Coordinator) recordSession(e timer.Event, completed bool) {
	if c.writer == nil || c.sessionStart.IsZero() {
		return
	}

	elapsed := e.Snapshot.DurationSeconds - e.Snapshot.RemainingSeconds
	if elapsed < 0 {
		elapsed = 0
	}

	c.writer.AddSession(models.Session{
		StartTime:       c.sessionStart,
		EndTime:         e.At,
		DurationSeconds: e.Snapshot.DurationSeconds,
		ElapsedSeconds:  elapsed,
		Completed:       completed,
	})

	c.sessionStart = time.Time{}
}

// StartSession starts the countdown and enforces the block list. It does
// nothing while a session is running.
func (c *Coordinator) StartSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer.Start()
}

// StopSession ends the running session early. Stats are not updated.
func (c *Coordinator) StopSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer.Stop()
}

// ResetSession stops any running session and restores the full duration.
func (c *Coordinator) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer.Reset()
}

// SkipSession resets the timer and saves the ledger without counting a
// session.
func (c *Coordinator) SkipSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer.Reset()
	c.ledger.SessionSkipped()
	c.publish()
}

// SetSessionDuration changes the session length. A non-positive value is
// rejected with timer.ErrInvalidDuration and leaves the state unchanged.
func (c *Coordinator) SetSessionDuration(seconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timer.SetDuration(seconds)
}

// TriggerBreak suspends blocking for the break window.
func (c *Coordinator) TriggerBreak() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocker.BreakMode()
}

// AddWebsite adds raw to the block list and reports whether it was new.
func (c *Coordinator) AddWebsite(raw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocker.AddWebsite(raw)
}

// RemoveWebsite removes domain from the block list and reports whether it
// was present.
func (c *Coordinator) RemoveWebsite(domain string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocker.RemoveWebsite(domain)
}

// UpdateBlockedWebsites replaces the block list with the lines of text.
func (c *Coordinator) UpdateBlockedWebsites(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocker.UpdateBlockedWebsites(text)
}

// SetBlockerEnabled toggles website blocking. Enabling it while a session
// is running blocks at once.
func (c *Coordinator) SetBlockerEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocker.SetEnabled(enabled)

	if enabled && c.timer.Running() {
		c.blocker.BlockWebsites()
	}
}

// OnSessionEvent registers fn to run after the side effects of every
// session transition. fn runs with the coordinator locked and must not call
// back into it.
func (c *Coordinator) OnSessionEvent(fn func(timer.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = append(c.hooks, fn)
}

// Subscribe returns a channel that receives a snapshot after every state
// change. When the buffer is full the oldest queued snapshot is replaced, so a
// slow reader misses intermediate states but never the latest one. The
// channel is closed by Close.
func (c *Coordinator) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}

	ch := make(chan Snapshot, buffer)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(ch)
		return ch
	}

	c.subscribers = append(c.subscribers, ch)

	return ch
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// Stats returns the ledger counters.
func (c *Coordinator) Stats() stats.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ledger.Snapshot()
}

// DisplayTime returns the remaining time as m:ss.
func (c *Coordinator) DisplayTime() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timer.Snapshot().DisplayTime
}

// Progress returns the elapsed fraction of the session.
func (c *Coordinator) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timer.Snapshot().Progress
}

// Websites returns the block list.
func (c *Coordinator) Websites() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocker.Websites()
}

// Close cancels pending timers, clears enforcement and closes subscriber
// channels. The coordinator must not be used afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.timer.Close()

	if c.blocker.State().Blocking {
		c.blocker.UnblockAll()
	}

	c.blocker.Close()

	c.closed = true

	for _, ch := range c.subscribers {
		close(ch)
	}

	c.subscribers = nil
}

func (c *Coordinator) snapshot() Snapshot {
	return Snapshot{
		Timer:   c.timer.Snapshot(),
		Blocker: c.blocker.State(),
		Stats:   c.ledger.Snapshot(),
	}
}

// publish sends the current snapshot to every subscriber without blocking.
// It is called with c.mu held.
func (c *Coordinator) publish() {
	if !c.ready || c.closed || len(c.subscribers) == 0 {
		return
	}

	snap := c.snapshot()

	for _, ch := range c.subscribers {
		offer(ch, snap)
	}
}

// offer sends snap on ch, discarding the oldest queued snapshot while the
// buffer is full so that the latest state always gets through.
func offer(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
