package thread

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ID identifies the execution context owned by a handle. IDs are unique
// for the life of the process and stable across handle moves.
type ID uint64

// None is the identity reported by an empty handle.
const None ID = 0

// ErrLimit is returned by Spawn when the supplied Limiter has no free
// capacity for another execution context.
var ErrLimit = errors.New("thread: limit reached")

var errNilCallable = errors.New("thread: nil callable")

var lastID atomic.Uint64

func nextID() ID { return ID(lastID.Add(1)) }

// state is the spawned execution context, shared between the running
// goroutine and whichever handle currently owns it.
type state struct {
	id   ID
	done chan struct{}
}

// Thread is a move-only handle owning at most one execution context.
// The zero value is an empty handle. A Thread must not be copied after
// first use, and a single handle is not safe for concurrent use.
type Thread struct {
	noCopy noCopy
	s      *state
}

type SpawnOption func(*spawnConfig)

type spawnConfig struct {
	lim Limiter
	obs Observer
}

// WithLimiter makes Spawn fail with ErrLimit when lim has no capacity.
// The slot is released when the spawned work completes.
func WithLimiter(lim Limiter) SpawnOption {
	return func(c *spawnConfig) { c.lim = lim }
}

// WithSpawnObserver reports ThreadStarted/ThreadFinished for the spawned
// context. The hooks receive context.Background(); spawn under a Group
// for group-scoped hooks.
func WithSpawnObserver(obs Observer) SpawnOption {
	return func(c *spawnConfig) { c.obs = obs }
}

// Spawn starts fn on a new execution context and returns a joinable
// handle. The work begins immediately; there is no separate start step.
//
// fn captures its environment the way any closure does, by reference.
// For a by-value snapshot of arguments taken at the call site, use
// Spawn1 or Spawn2.
//
// A panic escaping fn crashes the process, exactly as it would for a
// bare goroutine. Group converts panics to errors if that is wanted.
func Spawn(fn func(), opts ...SpawnOption) (*Thread, error) {
	if fn == nil {
		return nil, errNilCallable
	}
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lim != nil && !cfg.lim.TryAcquire() {
		return nil, ErrLimit
	}
	s := &state{id: nextID(), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		if cfg.lim != nil {
			defer cfg.lim.Release()
		}
		if cfg.obs == nil {
			fn()
			return
		}
		cfg.obs.ThreadStarted(context.Background(), s.id)
		start := time.Now()
		fn()
		cfg.obs.ThreadFinished(context.Background(), s.id, time.Since(start), nil, false)
	}()
	return &Thread{s: s}, nil
}

// Spawn1 starts fn with one argument bound by value: a is copied at the
// call site into storage owned by the new context, so later writes to
// the caller's variable are not seen by the work. To share a slot with
// the caller instead, make A a pointer type; the caller then guarantees
// the pointee outlives the work.
func Spawn1[A any](fn func(A), a A, opts ...SpawnOption) (*Thread, error) {
	if fn == nil {
		return nil, errNilCallable
	}
	return Spawn(func() { fn(a) }, opts...)
}

// Spawn2 is Spawn1 for a two-argument callable.
func Spawn2[A, B any](fn func(A, B), a A, b B, opts ...SpawnOption) (*Thread, error) {
	if fn == nil {
		return nil, errNilCallable
	}
	return Spawn(func() { fn(a, b) }, opts...)
}

// Joinable reports whether the handle owns an execution context that has
// not been joined or detached.
func (t *Thread) Joinable() bool { return t != nil && t.s != nil }

// ID returns the identity of the owned context, or None for an empty
// handle.
func (t *Thread) ID() ID {
	if t == nil || t.s == nil {
		return None
	}
	return t.s.id
}

// Join blocks until the owned work completes and empties the handle.
// Joining a non-joinable handle is a usage fault and panics.
func (t *Thread) Join() {
	if t == nil || t.s == nil {
		panic("thread: Join on a non-joinable handle")
	}
	<-t.s.done
	t.s = nil
}

// Detach disassociates the handle from its context without waiting. The
// work runs to completion on its own and is reclaimed by the runtime.
// Detaching a non-joinable handle is a usage fault and panics.
func (t *Thread) Detach() {
	if t == nil || t.s == nil {
		panic("thread: Detach on a non-joinable handle")
	}
	t.s = nil
}

// MoveFrom transfers ownership of src's context to t and empties src.
// The context's identity is unchanged by the move. Moving onto a handle
// that still owns a joinable context is a usage fault and panics; join
// or detach it first. Moving from an empty handle leaves both empty.
func (t *Thread) MoveFrom(src *Thread) {
	if t.s != nil {
		panic("thread: MoveFrom onto a joinable handle")
	}
	if src == nil || src.s == nil {
		return
	}
	t.s, src.s = src.s, nil
}

// Close is the scoped-teardown path, meant for defer: it joins the owned
// context if the handle is still joinable and is a no-op otherwise. The
// returned error is always nil; the signature matches io.Closer.
func (t *Thread) Close() error {
	if t == nil || t.s == nil {
		return nil
	}
	<-t.s.done
	t.s = nil
	return nil
}

// noCopy triggers go vet's copylocks check on Thread values.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
