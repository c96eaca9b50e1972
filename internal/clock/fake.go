package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock. Callbacks run synchronously on the
// goroutine that calls Advance, in the order they fall due.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

type fakeTimer struct {
	clock  *Fake
	at     time.Time
	period time.Duration
	fn     func()
	seq    int
	active bool
}

// NewFake returns a Fake clock set to now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// Set jumps the wall clock to t without firing any timers. Pending timers
// keep their remaining delay, as a monotonic timer would across a wall-clock
// change.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delta := t.Sub(f.now)

	for _, timer := range f.timers {
		timer.at = timer.at.Add(delta)
	}

	f.now = t
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.schedule(d, 0, fn)
}

func (f *Fake) Every(d time.Duration, fn func()) Timer {
	return f.schedule(d, d, fn)
}

func (f *Fake) schedule(d, period time.Duration, fn func()) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++

	t := &fakeTimer{
		clock:  f,
		at:     f.now.Add(d),
		period: period,
		fn:     fn,
		seq:    f.seq,
		active: true,
	}

	f.timers = append(f.timers, t)

	return t
}

// Advance moves the clock forward by d, firing every timer that falls due on
// the way. A periodic timer fires once per elapsed period.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()

		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()

			return
		}

		f.now = next.at

		if next.period > 0 {
			next.at = next.at.Add(next.period)
		} else {
			f.removeLocked(next)
		}

		fn := next.fn

		f.mu.Unlock()

		fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}

func (f *Fake) nextDue(target time.Time) *fakeTimer {
	var next *fakeTimer

	for _, t := range f.timers {
		if t.at.After(target) {
			continue
		}

		if next == nil || t.at.Before(next.at) ||
			(t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}

	return next
}

func (f *Fake) removeLocked(t *fakeTimer) {
	t.active = false

	for i := range f.timers {
		if f.timers[i] == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if !t.active {
		return false
	}

	t.clock.removeLocked(t)

	return true
}
