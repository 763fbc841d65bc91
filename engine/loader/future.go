package loader

import "sync"

// Future is a single-shot asynchronous result. It is resolved once, typically
// from a worker goroutine, and its continuations run on the loop goroutine
// through the post function supplied at construction.
type Future[T any] struct {
	post func(func())

	mu       sync.Mutex
	resolved bool
	value    T
	err      error
	conts    []func(T, error)
}

// NewFuture creates an unresolved Future whose continuations are delivered via post.
// A nil post runs continuations on the resolving goroutine.
//
// Parameters:
//   - post: schedules a task on the loop goroutine
//
// Returns:
//   - *Future[T]: the unresolved future
func NewFuture[T any](post func(func())) *Future[T] {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Future[T]{post: post}
}

// Resolve delivers the result. Only the first call has any effect.
//
// Parameters:
//   - v: the result value
//   - err: the failure, if any
//
// Returns:
//   - bool: true if this call resolved the future
func (f *Future[T]) Resolve(v T, err error) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.value, f.err = v, err
	conts := f.conts
	f.conts = nil
	f.mu.Unlock()

	for _, fn := range conts {
		f.deliver(fn, v, err)
	}
	return true
}

// Then registers a continuation. If the future is already resolved the
// continuation is still posted rather than run inline.
//
// Parameters:
//   - fn: receives the value and error exactly once
func (f *Future[T]) Then(fn func(T, error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.resolved {
		f.conts = append(f.conts, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()
	f.deliver(fn, v, err)
}

// Done reports whether the future has been resolved.
func (f *Future[T]) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

func (f *Future[T]) deliver(fn func(T, error), v T, err error) {
	f.post(func() { fn(v, err) })
}
