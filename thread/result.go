package thread

import "context"

type outcome[T any] struct {
	val T
	err error
}

// Result delivers the return value of a unit of work started with Async.
// Like a Thread handle, a Result is not safe for concurrent use.
type Result[T any] struct {
	t   *Thread
	ch  chan outcome[T]
	got bool
	out outcome[T]
}

// Async runs fn on a new thread and captures its return value. The
// spawn options are the same as Spawn's.
func Async[T any](fn func() (T, error), opts ...SpawnOption) (*Result[T], error) {
	if fn == nil {
		return nil, errNilCallable
	}
	r := &Result[T]{ch: make(chan outcome[T], 1)}
	t, err := Spawn(func() {
		v, err := fn()
		r.ch <- outcome[T]{val: v, err: err}
	}, opts...)
	if err != nil {
		return nil, err
	}
	r.t = t
	return r, nil
}

// Wait blocks until the work has produced its value, joins the finished
// handle, and returns the value. If ctx ends first, Wait returns
// ctx.Err() without consuming the result; it may be called again. Once
// the value has been delivered, further calls return it immediately.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	if r.got {
		return r.out.val, r.out.err
	}
	select {
	case out := <-r.ch:
		r.out, r.got = out, true
		if r.t.Joinable() {
			r.t.Join()
		}
		return out.val, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Thread returns the handle owning the work's execution context.
func (r *Result[T]) Thread() *Thread { return r.t }
