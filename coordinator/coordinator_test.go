package coordinator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusplug/focusplug/coordinator"
	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/internal/models"
	"github.com/focusplug/focusplug/store"
	"github.com/focusplug/focusplug/timer"
)

// journal records the calls made to every collaborator in one sequence.
type journal struct {
	entries []string
}

func (j *journal) add(s string) {
	j.entries = append(j.entries, s)
}

type fakeEnforcer struct {
	j       *journal
	applied [][]string
	cleared int
}

func (f *fakeEnforcer) ApplyBlockList(domains []string) error {
	f.j.add("apply")
	f.applied = append(f.applied, domains)

	return nil
}

func (f *fakeEnforcer) ClearBlockList() error {
	f.j.add("clear")
	f.cleared++

	return nil
}

type fakeWriter struct {
	j        *journal
	saves    []map[string]any
	sessions []models.Session
}

func (f *fakeWriter) Save(entries map[string]any) {
	if _, ok := entries[store.KeyTotalSessions]; ok {
		f.j.add("save stats")
	}

	f.saves = append(f.saves, entries)
}

func (f *fakeWriter) AddSession(sess models.Session) {
	f.j.add("add session")
	f.sessions = append(f.sessions, sess)
}

type fakeNotifier struct {
	j *journal
}

func (f *fakeNotifier) Notify(title, _ string) error {
	f.j.add("notify " + title)
	return nil
}

type memStore map[string][]byte

func (m memStore) Get(key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, store.ErrNotFound
	}

	return v, nil
}

var epoch = time.Date(2025, time.April, 7, 9, 0, 0, 0, time.UTC)

type fixture struct {
	c        *coordinator.Coordinator
	clock    *clock.Fake
	j        *journal
	enforcer *fakeEnforcer
	writer   *fakeWriter
}

func newFixture(t *testing.T, db store.Reader, duration time.Duration) *fixture {
	t.Helper()

	j := &journal{}
	f := &fixture{
		clock:    clock.NewFake(epoch),
		j:        j,
		enforcer: &fakeEnforcer{j: j},
		writer:   &fakeWriter{j: j},
	}

	f.c = coordinator.New(&coordinator.Config{
		Clock:        f.clock,
		Notifier:     &fakeNotifier{j: j},
		Enforcer:     f.enforcer,
		DB:           db,
		Writer:       f.writer,
		Duration:     duration,
		DefaultSites: []string{"reddit.com", "youtube.com"},
	})

	t.Cleanup(f.c.Close)

	return f
}

func TestStartAppliesBlockList(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	f.c.StartSession()

	snap := f.c.Snapshot()
	assert.Equal(t, timer.Running, snap.Timer.Phase)
	assert.True(t, snap.Blocker.Enabled)
	assert.True(t, snap.Blocker.Blocking)
	assert.Equal(t, [][]string{{"reddit.com", "youtube.com"}}, f.enforcer.applied)
}

func TestStopClearsBlockingWithoutStats(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	f.c.StartSession()
	f.clock.Advance(20 * time.Second)
	f.c.StopSession()

	snap := f.c.Snapshot()
	assert.Equal(t, timer.Idle, snap.Timer.Phase)
	assert.Equal(t, 40, snap.Timer.RemainingSeconds)
	assert.False(t, snap.Blocker.Blocking)
	assert.Equal(t, 1, f.enforcer.cleared)

	assert.Zero(t, snap.Stats.TotalSessions)
	assert.NotContains(t, f.j.entries, "save stats")

	require.Len(t, f.writer.sessions, 1)
	assert.Equal(t, models.Session{
		StartTime:       epoch,
		EndTime:         epoch.Add(20 * time.Second),
		DurationSeconds: 60,
		ElapsedSeconds:  20,
		Completed:       false,
	}, f.writer.sessions[0])
}

func TestCompletionOrder(t *testing.T) {
	f := newFixture(t, nil, 5*time.Second)

	var events []timer.EventKind

	f.c.OnSessionEvent(func(e timer.Event) {
		f.j.add("hook " + string(e.Kind))
		events = append(events, e.Kind)
	})

	f.c.StartSession()
	f.clock.Advance(5 * time.Second)

	assert.Equal(t, []string{
		"notify Focus Session Started",
		"apply",
		"hook session_started",
		"notify Focus Session Complete! 🎉",
		"save stats",
		"clear",
		"add session",
		"hook session_completed",
	}, f.j.entries)

	assert.Equal(
		t,
		[]timer.EventKind{timer.SessionStarted, timer.SessionCompleted},
		events,
	)

	snap := f.c.Snapshot()
	assert.Equal(t, timer.Idle, snap.Timer.Phase)
	assert.Equal(t, 5, snap.Timer.RemainingSeconds)
	assert.False(t, snap.Blocker.Blocking)
	assert.Equal(t, 1, snap.Stats.TotalSessions)
	assert.Equal(t, 5, snap.Stats.TotalFocusSeconds)
	assert.Equal(t, 1, snap.Stats.Streak)

	require.Len(t, f.writer.sessions, 1)
	assert.True(t, f.writer.sessions[0].Completed)
	assert.Equal(t, 5, f.writer.sessions[0].ElapsedSeconds)
}

func TestRestoresPersistedState(t *testing.T) {
	encoded, err := store.Encode(map[string]any{
		store.KeyBlockedWebsites:       []string{"news.ycombinator.com"},
		store.KeyWebsiteBlockerEnabled: false,
		store.KeyTotalSessions:         12,
		store.KeyCurrentStreak:         3,
		store.KeyLastSaveDate:          epoch.AddDate(0, 0, -1),
		store.KeyTodaysSessions:        4,
	})
	require.NoError(t, err)

	f := newFixture(t, memStore(encoded), time.Minute)

	snap := f.c.Snapshot()
	assert.Equal(t, []string{"news.ycombinator.com"}, snap.Blocker.Domains)
	assert.False(t, snap.Blocker.Enabled)
	assert.Equal(t, 12, snap.Stats.TotalSessions)
	assert.Equal(t, 3, snap.Stats.Streak)
	assert.Zero(t, snap.Stats.TodaysSessions)

	f.c.StartSession()
	assert.Empty(t, f.enforcer.applied)
	assert.False(t, f.c.Snapshot().Blocker.Blocking)
}

func TestSetBlockerEnabledDuringSession(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	f.c.SetBlockerEnabled(false)
	f.c.StartSession()
	assert.Empty(t, f.enforcer.applied)

	f.c.SetBlockerEnabled(true)
	assert.True(t, f.c.Snapshot().Blocker.Blocking)
	assert.Len(t, f.enforcer.applied, 1)

	f.c.SetBlockerEnabled(false)
	assert.False(t, f.c.Snapshot().Blocker.Blocking)
}

func TestTriggerBreakDuringSession(t *testing.T) {
	f := newFixture(t, nil, time.Hour)

	f.c.StartSession()
	f.clock.Advance(10 * time.Minute)
	f.c.TriggerBreak()

	assert.False(t, f.c.Snapshot().Blocker.Blocking)

	f.clock.Advance(5 * time.Minute)

	snap := f.c.Snapshot()
	assert.True(t, snap.Blocker.Blocking)
	assert.Equal(t, 45*60, snap.Timer.RemainingSeconds)
	assert.Len(t, f.enforcer.applied, 2)
}

func TestTriggerBreakWhileIdle(t *testing.T) {
	f := newFixture(t, nil, time.Hour)

	f.c.TriggerBreak()

	snap := f.c.Snapshot()
	assert.False(t, snap.Blocker.Blocking)
	assert.Equal(t, timer.Idle, snap.Timer.Phase)

	f.clock.Advance(5*time.Minute - time.Second)
	assert.False(t, f.c.Snapshot().Blocker.Blocking)

	f.clock.Advance(time.Second)

	snap = f.c.Snapshot()
	assert.True(t, snap.Blocker.Blocking)
	assert.Equal(t, timer.Idle, snap.Timer.Phase)
	assert.Equal(t, []string{"clear", "apply"}, f.j.entries)
}

func TestTriggerBreakWhileIdleWithBlockerDisabled(t *testing.T) {
	f := newFixture(t, nil, time.Hour)

	f.c.SetBlockerEnabled(false)
	f.c.TriggerBreak()
	f.clock.Advance(5 * time.Minute)

	assert.False(t, f.c.Snapshot().Blocker.Blocking)
	assert.Empty(t, f.enforcer.applied)
}

func TestStats(t *testing.T) {
	encoded, err := store.Encode(map[string]any{
		store.KeyTotalSessions:  7,
		store.KeyCurrentStreak:  2,
		store.KeyLastSaveDate:   epoch,
		store.KeyTodaysSessions: 1,
	})
	require.NoError(t, err)

	f := newFixture(t, memStore(encoded), time.Minute)

	got := f.c.Stats()
	assert.Equal(t, 7, got.TotalSessions)
	assert.Equal(t, 1, got.TodaysSessions)

	f.c.StartSession()
	f.clock.Advance(time.Minute)

	got = f.c.Stats()
	assert.Equal(t, 8, got.TotalSessions)
	assert.Equal(t, 2, got.TodaysSessions)
	assert.Equal(t, f.c.Snapshot().Stats, got)
}

func TestSetSessionDuration(t *testing.T) {
	f := newFixture(t, nil, 0)

	assert.Equal(t, "25:00", f.c.DisplayTime())

	require.NoError(t, f.c.SetSessionDuration(90))
	f.c.ResetSession()

	assert.Equal(t, "1:30", f.c.DisplayTime())
	assert.Zero(t, f.c.Progress())

	err := f.c.SetSessionDuration(0)
	assert.True(t, errors.Is(err, timer.ErrInvalidDuration))
	assert.Equal(t, 90, f.c.Snapshot().Timer.DurationSeconds)
}

func TestSkipSession(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	f.c.StartSession()
	f.clock.Advance(10 * time.Second)
	f.c.SkipSession()

	snap := f.c.Snapshot()
	assert.Equal(t, timer.Idle, snap.Timer.Phase)
	assert.Equal(t, 60, snap.Timer.RemainingSeconds)
	assert.Zero(t, snap.Stats.TotalSessions)
	assert.Contains(t, f.j.entries, "save stats")
}

func TestWebsiteFacade(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	assert.True(t, f.c.AddWebsite("https://www.Foo.com"))
	assert.False(t, f.c.AddWebsite("foo.com"))
	assert.True(t, f.c.RemoveWebsite("reddit.com"))
	assert.Equal(t, []string{"youtube.com", "Foo.com"}, f.c.Websites())

	f.c.UpdateBlockedWebsites("example.com\nhttps://golang.org\n")
	assert.Equal(t, []string{"example.com", "golang.org"}, f.c.Websites())
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t, nil, 3*time.Second)

	ch := f.c.Subscribe(16)

	f.c.StartSession()
	f.clock.Advance(3 * time.Second)

	var last coordinator.Snapshot

	count := 0

	for len(ch) > 0 {
		last = <-ch
		count++
	}

	assert.Positive(t, count)
	assert.Equal(t, 1, last.Stats.TotalSessions)
	assert.Equal(t, timer.Idle, last.Timer.Phase)

	f.c.Close()

	_, ok := <-ch
	assert.False(t, ok)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	f := newFixture(t, nil, 10*time.Second)

	ch := f.c.Subscribe(1)

	f.c.StartSession()
	f.clock.Advance(10 * time.Second)

	assert.Len(t, ch, 1)
	assert.Equal(t, 1, f.c.Snapshot().Stats.TotalSessions)
}

func TestSlowSubscriberReceivesLatestSnapshot(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	ch := f.c.Subscribe(1)

	f.c.StartSession()
	f.clock.Advance(10 * time.Second)

	var last coordinator.Snapshot

	for len(ch) > 0 {
		last = <-ch
	}

	want := f.c.Snapshot()
	assert.Equal(t, 50, last.Timer.RemainingSeconds)
	assert.Equal(t, want, last)
}

func TestCloseStopsTicking(t *testing.T) {
	f := newFixture(t, nil, time.Minute)

	f.c.StartSession()
	f.c.Close()
	f.clock.Advance(time.Hour)

	assert.Zero(t, f.clock.Pending())
	assert.False(t, f.c.Snapshot().Blocker.Blocking)
}
