// Package stats keeps the daily and all-time focus counters and summarizes
// session history
package stats

import (
	"log/slog"
	"time"

	"github.com/focusplug/focusplug/internal/clock"
	"github.com/focusplug/focusplug/internal/timeutil"
	"github.com/focusplug/focusplug/store"
)

// Persister saves settings without waiting for the write to complete.
type Persister interface {
	Save(entries map[string]any)
}

// Snapshot is a copy of the ledger counters with their display forms.
type Snapshot struct {
	LastSessionDate    time.Time `json:"last_session_date"    yaml:"last_session_date"`
	TodaysFocusTime    string    `json:"todays_focus_time"    yaml:"todays_focus_time"`
	TotalFocusTime     string    `json:"total_focus_time"     yaml:"total_focus_time"`
	Streak             int       `json:"streak"               yaml:"streak"`
	TodaysSessions     int       `json:"todays_sessions"      yaml:"todays_sessions"`
	TodaysFocusSeconds int       `json:"todays_focus_seconds" yaml:"todays_focus_seconds"`
	TotalSessions      int       `json:"total_sessions"       yaml:"total_sessions"`
	TotalFocusSeconds  int       `json:"total_focus_seconds"  yaml:"total_focus_seconds"`
}

// Ledger owns the streak and the session counters. Today's counters are
// zeroed whenever the last save happened on an earlier calendar day.
type Ledger struct {
	clock           clock.Clock
	persister       Persister
	lastSessionDate time.Time
	lastSaveDate    time.Time
	streak          int
	todaysSessions  int
	todaysFocus     int
	totalSessions   int
	totalFocus      int
}

// Load reads the ledger from r and applies the day boundary check. Values
// that cannot be read are logged and start from zero.
func Load(clk clock.Clock, r store.Reader, p Persister) *Ledger {
	l := &Ledger{
		clock:     clk,
		persister: p,
	}

	if r != nil {
		load(r, store.KeyCurrentStreak, &l.streak)
		load(r, store.KeyTodaysSessions, &l.todaysSessions)
		load(r, store.KeyTodaysFocusTime, &l.todaysFocus)
		load(r, store.KeyTotalSessions, &l.totalSessions)
		load(r, store.KeyTotalFocusTime, &l.totalFocus)
		load(r, store.KeyLastSessionDate, &l.lastSessionDate)
		load(r, store.KeyLastSaveDate, &l.lastSaveDate)
	}

	l.rollover(clk.Now())

	return l
}

func load[T any](r store.Reader, key string, dst *T) {
	v, ok, err := store.Load[T](r, key)
	if err != nil {
		slog.Error(
			"unable to load stats value",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return
	}

	if ok {
		*dst = v
	}
}

// RecordCompletion counts a completed session of durationSeconds and updates
// the streak.
func (l *Ledger) RecordCompletion(durationSeconds int) {
	now := l.clock.Now()

	l.rollover(now)

	if durationSeconds < 0 {
		durationSeconds = 0
	}

	l.todaysSessions++
	l.totalSessions++
	l.todaysFocus += durationSeconds
	l.totalFocus += durationSeconds

	if l.lastSessionDate.IsZero() {
		l.streak = 1
	} else {
		days := timeutil.DaysBetween(l.lastSessionDate, now)

		switch {
		case days <= 0:
		case days == 1:
			l.streak++
		default:
			l.streak = 1
		}
	}

	l.lastSessionDate = now
	l.lastSaveDate = now

	l.persist()
}

// SessionSkipped saves the ledger as is. The streak is left alone.
func (l *Ledger) SessionSkipped() {
	now := l.clock.Now()

	l.rollover(now)
	l.lastSaveDate = now

	l.persist()
}

// Snapshot returns the current counters. A day boundary crossed since the
// last save is applied first.
func (l *Ledger) Snapshot() Snapshot {
	l.rollover(l.clock.Now())

	return Snapshot{
		Streak:             l.streak,
		TodaysSessions:     l.todaysSessions,
		TodaysFocusSeconds: l.todaysFocus,
		TotalSessions:      l.totalSessions,
		TotalFocusSeconds:  l.totalFocus,
		LastSessionDate:    l.lastSessionDate,
		TodaysFocusTime:    timeutil.FormatFocusTime(l.todaysFocus, false),
		TotalFocusTime:     timeutil.FormatFocusTime(l.totalFocus, true),
	}
}

func (l *Ledger) rollover(now time.Time) {
	if timeutil.SameDay(l.lastSaveDate, now) {
		return
	}

	l.todaysSessions = 0
	l.todaysFocus = 0
}

func (l *Ledger) persist() {
	if l.persister == nil {
		return
	}

	l.persister.Save(map[string]any{
		store.KeyCurrentStreak:   l.streak,
		store.KeyTodaysSessions:  l.todaysSessions,
		store.KeyTodaysFocusTime: l.todaysFocus,
		store.KeyTotalSessions:   l.totalSessions,
		store.KeyTotalFocusTime:  l.totalFocus,
		store.KeyLastSessionDate: l.lastSessionDate,
		store.KeyLastSaveDate:    l.lastSaveDate,
	})
}
