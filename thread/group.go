package thread

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Policy int

const (
	FailFast Policy = iota
	Supervisor
)

type Option func(*Options)

type Options struct {
	PanicAsError   bool
	Observer       Observer
	MaxConcurrency int
}

func defaultOptions() Options { return Options{PanicAsError: true} }

func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func WithMaxConcurrency(n int) Option { return func(o *Options) { o.MaxConcurrency = n } }

// Group owns every handle it spawns and joins all of them in Wait, so
// destroying the group's scope cannot leave a context running unjoined.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	policy Policy
	wg     sync.WaitGroup

	mu       sync.Mutex
	firstErr error
	canceled bool
	members  []*Thread

	opts Options
	obs  Observer
	lim  Limiter
}

func NewGroup(parent context.Context, policy Policy, optFns ...Option) *Group {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	g := &Group{ctx: ctx, cancel: cancel, policy: policy, opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&g.opts)
	}
	g.obs = g.opts.Observer
	if g.opts.MaxConcurrency > 0 {
		g.lim = NewLimiter(g.opts.MaxConcurrency)
	}
	if g.obs != nil {
		g.obs.GroupCreated(ctx)
	}
	return g
}

func (g *Group) Context() context.Context { return g.ctx }

// Go spawns fn on a member thread. The group records the handle and
// joins it in Wait. A non-nil return value is recorded as the group's
// first error; under FailFast it also cancels the group context.
func (g *Group) Go(fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	g.wg.Add(1)
	idc := make(chan ID, 1)
	t, err := Spawn(func() { g.run(<-idc, fn) })
	if err != nil {
		g.wg.Done()
		g.fail(err)
		return
	}
	idc <- t.ID()
	g.mu.Lock()
	g.members = append(g.members, t)
	g.mu.Unlock()
}

func (g *Group) run(id ID, fn func(ctx context.Context) error) {
	defer g.wg.Done()
	if g.lim != nil {
		if err := g.lim.Acquire(g.ctx); err != nil {
			g.fail(err)
			return
		}
		defer g.lim.Release()
	}
	defer func() {
		if r := recover(); r != nil {
			if g.opts.PanicAsError {
				err := fmt.Errorf("panic in thread %d: %v", id, r)
				g.fail(err)
				if g.obs != nil {
					g.obs.ThreadFinished(g.ctx, id, 0, err, true)
				}
			} else {
				if g.obs != nil {
					g.obs.ThreadFinished(g.ctx, id, 0, nil, true)
				}
				panic(r)
			}
		}
	}()

	var start time.Time
	if g.obs != nil {
		start = time.Now()
		g.obs.ThreadStarted(g.ctx, id)
	}

	err := fn(g.ctx)
	if err != nil {
		g.fail(err)
	}
	if g.obs != nil {
		g.obs.ThreadFinished(g.ctx, id, time.Since(start), err, false)
	}
}

func (g *Group) Cancel(err error) {
	g.mu.Lock()
	wasCanceled := g.canceled
	g.canceled = true
	if g.firstErr == nil && err != nil {
		g.firstErr = err
	}
	cause := g.firstErr
	g.mu.Unlock()

	g.cancel()
	if !wasCanceled && g.obs != nil {
		g.obs.GroupCancelled(g.ctx, cause)
	}
}

// Wait blocks until every member context has completed, joins every
// recorded handle, and returns the first error.
func (g *Group) Wait() error {
	var start time.Time
	if g.obs != nil {
		start = time.Now()
	}
	g.wg.Wait()

	g.mu.Lock()
	members := g.members
	g.members = nil
	g.mu.Unlock()
	for _, t := range members {
		if t.Joinable() {
			t.Join()
		}
	}

	if g.obs != nil {
		g.obs.GroupJoined(g.ctx, time.Since(start))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstErr
}

// Len reports how many member handles the group currently holds
// unjoined.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

func (g *Group) fail(err error) {
	if err == nil {
		return
	}
	g.mu.Lock()
	if g.firstErr == nil {
		g.firstErr = err
	}
	shouldCancel := g.policy == FailFast
	cause := g.firstErr
	g.mu.Unlock()
	if shouldCancel {
		g.Cancel(cause)
	}
}

func (g *Group) Child(policy Policy, optFns ...Option) *Group {
	childOpts := g.opts
	for _, fn := range optFns {
		fn(&childOpts)
	}
	ctx, cancel := context.WithCancel(g.ctx)
	c := &Group{ctx: ctx, cancel: cancel, policy: policy, opts: childOpts, obs: childOpts.Observer}
	if childOpts.MaxConcurrency > 0 {
		c.lim = NewLimiter(childOpts.MaxConcurrency)
	}
	if c.obs != nil {
		c.obs.GroupCreated(ctx)
	}
	return c
}
