// Package errgroup provides an adapter that mimics golang.org/x/sync/errgroup
// semantics over thread.Group. It enables incremental migration without
// rewriting call sites against the handle-based API.
package errgroup

import (
	"context"

	"github.com/NetPo4ki/go-thread/thread"
)

// Group is an errgroup-like wrapper over a FailFast thread.Group.
type Group struct {
	g   *thread.Group
	ctx context.Context
}

// WithContext creates a Group bound to ctx. Returned context is canceled when
// any function passed to Go returns a non-nil error.
func WithContext(ctx context.Context) (*Group, context.Context) {
	tg := thread.NewGroup(ctx, thread.FailFast)
	g := &Group{g: tg, ctx: tg.Context()}
	return g, g.ctx
}

// Go starts a function on a group-owned thread. It should return a
// non-nil error to signal failure.
func (g *Group) Go(f func() error) {
	if f == nil {
		return
	}
	g.g.Go(func(context.Context) error {
		return f()
	})
}

// Wait blocks until all functions have returned and their threads are
// joined. It returns the first non-nil error or nil on success.
func (g *Group) Wait() error {
	return g.g.Wait()
}
