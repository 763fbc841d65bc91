package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeltaSamplesElapsedSeconds(t *testing.T) {
	fake := NewFake()
	d := NewDelta(fake)

	dt, now := d.Get()
	assert.Zero(t, dt)
	assert.Zero(t, now)

	fake.Advance(16 * time.Millisecond)
	dt, now = d.Get()
	assert.InDelta(t, 0.016, dt, 1e-6)
	assert.Equal(t, 16*time.Millisecond, now)

	dt, _ = d.Get()
	assert.Zero(t, dt)

	fake.Advance(500 * time.Millisecond)
	dt, _ = d.Get()
	assert.InDelta(t, 0.5, dt, 1e-6)
}

func TestFakeSetNeverRewinds(t *testing.T) {
	fake := NewFake()
	fake.Set(2 * time.Second)
	fake.Set(time.Second)
	assert.Equal(t, 2*time.Second, fake.Now())
}

func TestMonotonicAdvances(t *testing.T) {
	c := NewMonotonic()
	first := c.Now()
	time.Sleep(time.Millisecond)
	assert.Greater(t, c.Now(), first)
}
