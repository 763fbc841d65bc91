package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queue struct {
	tasks []func()
}

func (q *queue) post(fn func()) { q.tasks = append(q.tasks, fn) }

func (q *queue) drain() {
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		task()
	}
}

func TestFutureResolvesOnce(t *testing.T) {
	q := &queue{}
	f := NewFuture[int](q.post)

	var got []int
	f.Then(func(v int, err error) {
		require.NoError(t, err)
		got = append(got, v)
	})

	assert.False(t, f.Done())
	assert.True(t, f.Resolve(7, nil))
	assert.False(t, f.Resolve(9, errors.New("late")))
	assert.True(t, f.Done())

	assert.Empty(t, got, "continuations wait for the loop")
	q.drain()
	assert.Equal(t, []int{7}, got)
}

func TestFutureThenAfterResolveIsPosted(t *testing.T) {
	q := &queue{}
	f := NewFuture[string](q.post)
	boom := errors.New("boom")
	f.Resolve("", boom)

	var gotErr error
	f.Then(func(_ string, err error) { gotErr = err })
	assert.Nil(t, gotErr)

	q.drain()
	assert.ErrorIs(t, gotErr, boom)
}

func TestFutureNilPostRunsInline(t *testing.T) {
	f := NewFuture[int](nil)
	var got int
	f.Then(func(v int, _ error) { got = v })
	f.Resolve(3, nil)
	assert.Equal(t, 3, got)
}
