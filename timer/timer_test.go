package timer_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/timer"
)

type notification struct {
	title string
	body  string
}

type recordingNotifier struct {
	err  error
	sent []notification
}

func (r *recordingNotifier) Notify(title, body string) error {
	r.sent = append(r.sent, notification{title, body})
	return r.err
}

type recorder struct {
	events []timer.Event
}

func (r *recorder) handle(e timer.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []timer.EventKind {
	kinds := make([]timer.EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

func newTimer(
	t *testing.T,
	seconds int,
) (*timer.Timer, *clock.Fake, *recorder, *recordingNotifier) {
	t.Helper()

	clk := clock.NewFake(time.Date(2025, time.May, 4, 9, 0, 0, 0, time.UTC))
	rec := &recorder{}
	n := &recordingNotifier{}

	tm := timer.New(
		clk,
		n,
		timer.WithDuration(seconds),
		timer.WithEventHandler(rec.handle),
	)

	return tm, clk, rec, n
}

func TestNewTimerIsIdle(t *testing.T) {
	tm := timer.New(clock.NewFake(time.Now()), nil)

	snap := tm.Snapshot()
	assert.Equal(t, timer.Idle, snap.Phase)
	assert.Equal(t, timer.DefaultDuration, snap.DurationSeconds)
	assert.Equal(t, timer.DefaultDuration, snap.RemainingSeconds)
	assert.Equal(t, "25:00", snap.DisplayTime)
	assert.Zero(t, snap.Progress)
}

func TestSessionCompletes(t *testing.T) {
	tm, clk, rec, n := newTimer(t, 5)

	tm.Start()
	assert.True(t, tm.Running())

	clk.Advance(4 * time.Second)
	assert.Equal(t, 1, tm.Snapshot().RemainingSeconds)
	assert.Equal(t, "0:01", tm.Snapshot().DisplayTime)
	assert.InDelta(t, 0.8, tm.Snapshot().Progress, 1e-9)

	clk.Advance(time.Second)

	require.Equal(
		t,
		[]timer.EventKind{timer.SessionStarted, timer.SessionCompleted},
		rec.kinds(),
	)

	done := rec.events[1].Snapshot
	assert.Equal(t, timer.Completed, done.Phase)
	assert.Equal(t, 0, done.RemainingSeconds)
	assert.InDelta(t, 1.0, done.Progress, 1e-9)
	assert.Equal(t, clk.Now(), rec.events[1].At)

	snap := tm.Snapshot()
	assert.Equal(t, timer.Idle, snap.Phase)
	assert.Equal(t, 5, snap.RemainingSeconds)
	assert.Zero(t, snap.Progress)
	assert.Zero(t, clk.Pending())

	clk.Advance(time.Minute)
	assert.Len(t, rec.events, 2)

	assert.Equal(t, []notification{
		{"Focus Session Started", "Time to lock in! 🔥"},
		{"Focus Session Complete! 🎉", "Great job! Time for a break."},
	}, n.sent)
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	tm, clk, rec, n := newTimer(t, 10)

	tm.Start()
	clk.Advance(2 * time.Second)
	tm.Start()

	assert.Len(t, rec.events, 1)
	assert.Len(t, n.sent, 1)
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(time.Second)
	assert.Equal(t, 7, tm.Snapshot().RemainingSeconds)
}

func TestStop(t *testing.T) {
	tm, clk, rec, n := newTimer(t, 10)

	tm.Stop()
	assert.Empty(t, rec.events)

	tm.Start()
	clk.Advance(3 * time.Second)
	tm.Stop()

	assert.Equal(
		t,
		[]timer.EventKind{timer.SessionStarted, timer.SessionStopped},
		rec.kinds(),
	)
	assert.Equal(t, notification{"Session Stopped", "Focus session ended early"}, n.sent[1])

	snap := tm.Snapshot()
	assert.Equal(t, timer.Idle, snap.Phase)
	assert.Equal(t, 7, snap.RemainingSeconds)

	clk.Advance(time.Minute)
	assert.Equal(t, 7, tm.Snapshot().RemainingSeconds)
	assert.Len(t, rec.events, 2)

	tm.Stop()
	assert.Len(t, rec.events, 2)
}

func TestTickWhenIdleIsNoop(t *testing.T) {
	tm, _, rec, _ := newTimer(t, 10)

	tm.Tick()

	assert.Equal(t, 10, tm.Snapshot().RemainingSeconds)
	assert.Empty(t, rec.events)
}

func TestReset(t *testing.T) {
	tm, clk, rec, _ := newTimer(t, 60)

	tm.Start()
	clk.Advance(15 * time.Second)
	tm.Reset()

	assert.Equal(
		t,
		[]timer.EventKind{timer.SessionStarted, timer.SessionStopped},
		rec.kinds(),
	)
	assert.Equal(t, 60, tm.Snapshot().RemainingSeconds)
	assert.Equal(t, "1:00", tm.Snapshot().DisplayTime)
	assert.False(t, tm.Running())

	tm.Reset()
	assert.Len(t, rec.events, 2)
}

func TestSetDuration(t *testing.T) {
	testCases := []struct {
		name          string
		seconds       int
		elapsed       time.Duration
		start         bool
		wantRemaining int
	}{
		{name: "idle", seconds: 2700, wantRemaining: 2700},
		{name: "running longer", seconds: 3600, start: true, elapsed: 10 * time.Second, wantRemaining: 1490},
		{name: "running shorter", seconds: 600, start: true, elapsed: 10 * time.Second, wantRemaining: 600},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm, clk, _, _ := newTimer(t, 1500)

			if tc.start {
				tm.Start()
				clk.Advance(tc.elapsed)
			}

			require.NoError(t, tm.SetDuration(tc.seconds))

			snap := tm.Snapshot()
			assert.Equal(t, tc.seconds, snap.DurationSeconds)
			assert.Equal(t, tc.wantRemaining, snap.RemainingSeconds)
			assert.GreaterOrEqual(t, snap.Progress, 0.0)
			assert.LessOrEqual(t, snap.Progress, 1.0)
		})
	}
}

func TestSetDurationThenReset(t *testing.T) {
	testCases := []struct {
		seconds int
		display string
	}{
		{seconds: 1, display: "0:01"},
		{seconds: 59, display: "0:59"},
		{seconds: 60, display: "1:00"},
		{seconds: 61, display: "1:01"},
		{seconds: 3599, display: "59:59"},
		{seconds: 3600, display: "60:00"},
	}

	for _, tc := range testCases {
		for _, running := range []bool{false, true} {
			name := fmt.Sprintf("%d seconds, running=%t", tc.seconds, running)

			t.Run(name, func(t *testing.T) {
				tm, clk, _, _ := newTimer(t, 1500)

				if running {
					tm.Start()
					clk.Advance(5 * time.Second)
				}

				require.NoError(t, tm.SetDuration(tc.seconds))
				tm.Reset()

				snap := tm.Snapshot()
				assert.Equal(t, tc.seconds, snap.RemainingSeconds)
				assert.Zero(t, snap.Progress)
				assert.Equal(t, tc.display, snap.DisplayTime)
				assert.Equal(t, timer.Idle, snap.Phase)
			})
		}
	}
}

func TestSetDurationRejectsNonPositive(t *testing.T) {
	for _, seconds := range []int{0, -5} {
		tm, _, _, _ := newTimer(t, 300)

		err := tm.SetDuration(seconds)
		assert.True(t, errors.Is(err, timer.ErrInvalidDuration))
		assert.Equal(t, 300, tm.Snapshot().DurationSeconds)
		assert.Equal(t, 300, tm.Snapshot().RemainingSeconds)
	}
}

func TestNotificationFailureDoesNotInterrupt(t *testing.T) {
	tm, clk, rec, n := newTimer(t, 2)
	n.err = errors.New("no notification daemon")

	tm.Start()
	clk.Advance(2 * time.Second)

	assert.Equal(
		t,
		[]timer.EventKind{timer.SessionStarted, timer.SessionCompleted},
		rec.kinds(),
	)
}

func TestChangeHandlerObservesTicks(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, time.May, 4, 9, 0, 0, 0, time.UTC))

	var remaining []int

	tm := timer.New(
		clk,
		nil,
		timer.WithDuration(3),
		timer.WithChangeHandler(func(s timer.Snapshot) {
			remaining = append(remaining, s.RemainingSeconds)
		}),
	)

	tm.Start()
	clk.Advance(3 * time.Second)

	assert.Equal(t, []int{3, 2, 1, 3}, remaining)
}

func TestCloseCancelsTicking(t *testing.T) {
	tm, clk, rec, _ := newTimer(t, 10)

	tm.Start()
	tm.Close()
	clk.Advance(time.Minute)

	assert.Equal(t, 10, tm.Snapshot().RemainingSeconds)
	assert.Len(t, rec.events, 1)
	assert.Zero(t, clk.Pending())
}
