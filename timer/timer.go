// Package timer operates the focus countdown: a session state machine driven
// by a one second tick
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/internal/timeutil"
	"github.com/focusplug/focusplug/notify"
)

// DefaultDuration is the length of a session in seconds.
const DefaultDuration = 1500

const tickInterval = time.Second

const (
	startedTitle   = "Focus Session Started"
	startedBody    = "Time to lock in! 🔥"
	stoppedTitle   = "Session Stopped"
	stoppedBody    = "Focus session ended early"
	completedTitle = "Focus Session Complete! 🎉"
	completedBody  = "Great job! Time for a break."
)

// Phase is the lifecycle position of the timer.
type Phase string

const (
	Idle      Phase = "idle"
	Running   Phase = "running"
	Completed Phase = "completed"
)

// EventKind identifies a session transition.
type EventKind string

const (
	SessionStarted   EventKind = "session_started"
	SessionStopped   EventKind = "session_stopped"
	SessionCompleted EventKind = "session_completed"
)

// Event is emitted on every session transition.
type Event struct {
	At       time.Time
	Kind     EventKind
	Snapshot Snapshot
}

// Snapshot is an immutable view of the timer state and its derived values.
type Snapshot struct {
	Phase            Phase   `json:"phase"`
	DisplayTime      string  `json:"display_time"`
	DurationSeconds  int     `json:"duration_seconds"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Progress         float64 `json:"progress"`
}

// Timer is the session state machine. Its methods must be called by one
// goroutine at a time; the tick callback acquires the Locker given with
// WithLocker so that ticks serialize with the owner's calls.
type Timer struct {
	clock    clock.Clock
	notifier notify.Notifier
	locker   sync.Locker
	onEvent  func(Event)
	onChange func(Snapshot)
	ticker   clock.Timer
	phase    Phase
	snapshot Snapshot
	// generation invalidates tick callbacks queued before a stop
	generation uint64
	duration   int
	remaining  int
}

// Option configures a Timer.
type Option func(*Timer)

// WithDuration sets the initial session length in seconds. Non-positive values
// are ignored.
func WithDuration(seconds int) Option {
	return func(t *Timer) {
		if seconds > 0 {
			t.duration = seconds
		}
	}
}

// WithLocker sets the lock acquired by tick callbacks.
func WithLocker(l sync.Locker) Option {
	return func(t *Timer) {
		t.locker = l
	}
}

// WithEventHandler registers fn to receive session transitions. fn runs
// synchronously, before the transition's follow-up state is applied.
func WithEventHandler(fn func(Event)) Option {
	return func(t *Timer) {
		t.onEvent = fn
	}
}

// WithChangeHandler registers fn to receive the snapshot after every state
// change, including plain ticks.
func WithChangeHandler(fn func(Snapshot)) Option {
	return func(t *Timer) {
		t.onChange = fn
	}
}

// New creates an idle timer.
func New(clk clock.Clock, n notify.Notifier, opts ...Option) *Timer {
	if n == nil {
		n = notify.Nop{}
	}

	t := &Timer{
		clock:    clk,
		notifier: n,
		locker:   &sync.Mutex{},
		phase:    Idle,
		duration: DefaultDuration,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.remaining = t.duration
	t.refresh()

	return t
}

// Start begins ticking. It does nothing if a session is already running.
func (t *Timer) Start() {
	if t.phase == Running {
		return
	}

	t.phase = Running
	t.generation++

	gen := t.generation

	t.ticker = t.clock.Every(tickInterval, func() {
		t.locker.Lock()
		defer t.locker.Unlock()

		if gen != t.generation {
			return
		}

		t.Tick()
	})

	t.refresh()
	t.notify(startedTitle, startedBody)
	t.emit(SessionStarted)
	t.changed()
}

// Tick counts down one second. Reaching zero completes the session and
// re-arms the timer for the next one before Tick returns.
func (t *Timer) Tick() {
	if t.phase != Running {
		return
	}

	t.remaining--

	if t.remaining > 0 {
		t.refresh()
		t.changed()

		return
	}

	t.remaining = 0
	t.cancelTicker()
	t.phase = Completed
	t.refresh()

	t.notify(completedTitle, completedBody)
	t.emit(SessionCompleted)

	t.remaining = t.duration
	t.phase = Idle
	t.refresh()
	t.changed()
}

// Stop ends a running session early. It does nothing unless a session is
// running.
func (t *Timer) Stop() {
	if t.phase != Running {
		return
	}

	t.cancelTicker()
	t.phase = Idle
	t.refresh()

	t.notify(stoppedTitle, stoppedBody)
	t.emit(SessionStopped)
	t.changed()
}

// Reset stops any running session and restores the full duration.
func (t *Timer) Reset() {
	t.Stop()

	t.remaining = t.duration
	t.refresh()
	t.changed()
}

// SetDuration changes the session length. The remaining time follows the new
// length unless a session is running, in which case it is only clamped.
func (t *Timer) SetDuration(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration.Fmt(seconds)
	}

	t.duration = seconds

	if t.phase != Running || t.remaining > seconds {
		t.remaining = seconds
	}

	t.refresh()
	t.changed()

	return nil
}

// Close cancels ticking without emitting any event.
func (t *Timer) Close() {
	t.cancelTicker()
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	return t.snapshot
}

// Running reports whether a session is in progress.
func (t *Timer) Running() bool {
	return t.phase == Running
}

func (t *Timer) cancelTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}

	t.generation++
}

func (t *Timer) refresh() {
	t.snapshot = Snapshot{
		Phase:            t.phase,
		DurationSeconds:  t.duration,
		RemainingSeconds: t.remaining,
		DisplayTime:      timeutil.FormatClock(t.remaining),
		Progress:         progress(t.duration, t.remaining),
	}
}

func (t *Timer) notify(title, body string) {
	err := t.notifier.Notify(title, body)
	if err != nil {
		slog.Warn(
			"notification failed",
			slog.String("title", title),
			slog.Any("error", err),
		)
	}
}

func (t *Timer) emit(kind EventKind) {
	if t.onEvent == nil {
		return
	}

	t.onEvent(Event{
		Kind:     kind,
		At:       t.clock.Now(),
		Snapshot: t.snapshot,
	})
}

func (t *Timer) changed() {
	if t.onChange != nil {
		t.onChange(t.snapshot)
	}
}

// progress is the elapsed fraction of the session, clamped to [0, 1].
func progress(duration, remaining int) float64 {
	if duration <= 0 {
		return 0
	}

	p := float64(duration-remaining) / float64(duration)

	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
