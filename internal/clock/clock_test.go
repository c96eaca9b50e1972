package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/focusplug/focusplug/internal/clock"
)

var epoch = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestFakeAfterFuncFiresOnce(t *testing.T) {
	c := clock.NewFake(epoch)

	var fired []time.Time

	c.AfterFunc(5*time.Second, func() {
		fired = append(fired, c.Now())
	})

	c.Advance(4 * time.Second)
	assert.Empty(t, fired)

	c.Advance(10 * time.Second)
	assert.Equal(t, []time.Time{epoch.Add(5 * time.Second)}, fired)
	assert.Equal(t, epoch.Add(14*time.Second), c.Now())
	assert.Zero(t, c.Pending())
}

func TestFakeEveryFiresPerPeriod(t *testing.T) {
	c := clock.NewFake(epoch)

	var count int

	timer := c.Every(time.Second, func() {
		count++
	})

	c.Advance(3 * time.Second)
	assert.Equal(t, 3, count)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(3 * time.Second)
	assert.Equal(t, 3, count)
}

func TestFakeCallbackCanStopItself(t *testing.T) {
	c := clock.NewFake(epoch)

	var (
		count int
		timer clock.Timer
	)

	timer = c.Every(time.Second, func() {
		count++
		if count == 2 {
			timer.Stop()
		}
	})

	c.Advance(10 * time.Second)

	assert.Equal(t, 2, count)
	assert.Zero(t, c.Pending())
}

func TestFakeFiresInDueOrder(t *testing.T) {
	c := clock.NewFake(epoch)

	var order []string

	c.AfterFunc(3*time.Second, func() { order = append(order, "late") })
	c.AfterFunc(time.Second, func() { order = append(order, "early") })
	c.AfterFunc(time.Second, func() { order = append(order, "early-second") })

	c.Advance(5 * time.Second)

	assert.Equal(t, []string{"early", "early-second", "late"}, order)
}

func TestFakeSetDoesNotFire(t *testing.T) {
	c := clock.NewFake(epoch)

	var fired bool

	c.AfterFunc(time.Second, func() { fired = true })

	c.Set(epoch.Add(time.Hour))

	assert.False(t, fired)
	assert.Equal(t, 1, c.Pending())
}

func TestFakeSetKeepsRemainingDelay(t *testing.T) {
	c := clock.NewFake(epoch)

	var fired bool

	c.AfterFunc(2*time.Second, func() { fired = true })

	c.Set(epoch.Add(24 * time.Hour))
	c.Advance(time.Second)
	assert.False(t, fired)

	c.Advance(time.Second)
	assert.True(t, fired)
}
