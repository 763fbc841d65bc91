package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepOrderPostedTimersFrames(t *testing.T) {
	c := clock.NewFake()
	s := NewScheduler(WithClock(c))

	var order []string
	s.RequestFrame(func(time.Duration) { order = append(order, "frame") })
	s.AfterFunc(0, func() { order = append(order, "timer") })
	s.Post(func() { order = append(order, "posted") })

	s.Step()
	assert.Equal(t, []string{"posted", "timer", "frame"}, order)
}

func TestFrameRequestedDuringStepRunsNextStep(t *testing.T) {
	s := NewScheduler(WithClock(clock.NewFake()))

	count := 0
	var loop FrameCallback
	loop = func(time.Duration) {
		count++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	s.Step()
	assert.Equal(t, 1, count)
	s.Step()
	s.Step()
	assert.Equal(t, 3, count)

	frames, _ := s.Pending()
	assert.Equal(t, 1, frames)
}

func TestAfterFuncFiresOnceWhenDue(t *testing.T) {
	c := clock.NewFake()
	s := NewScheduler(WithClock(c))

	fired := 0
	s.AfterFunc(2*time.Second, func() { fired++ })

	c.Advance(1999 * time.Millisecond)
	s.Step()
	assert.Equal(t, 0, fired)

	c.Advance(time.Millisecond)
	s.Step()
	assert.Equal(t, 1, fired)

	c.Advance(time.Second)
	s.Step()
	assert.Equal(t, 1, fired)
}

func TestAfterFuncDeadlineOrderAndCancel(t *testing.T) {
	c := clock.NewFake()
	s := NewScheduler(WithClock(c))

	var order []int
	s.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	cancel := s.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })

	assert.True(t, cancel())
	assert.False(t, cancel())

	c.Advance(time.Second)
	s.Step()
	assert.Equal(t, []int{1, 3}, order)
}

func TestPostIsSafeFromOtherGoroutines(t *testing.T) {
	s := NewScheduler(WithClock(clock.NewFake()))

	var wg sync.WaitGroup
	count := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(func() { count++ })
		}()
	}
	wg.Wait()

	s.Step()
	assert.Equal(t, 50, count)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewScheduler(WithFrameRate(1000))
	ctx, cancel := context.WithCancel(context.Background())

	stepped := make(chan struct{}, 1)
	s.Post(func() { stepped <- struct{}{} })

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-stepped
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
