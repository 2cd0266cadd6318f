package otel

import (
	"context"
	"time"

	"github.com/NetPo4ki/go-thread/thread"
)

// Nop is a no-op implementation of the thread.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer
// without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) GroupCreated(context.Context)               {}
func (*Nop) GroupCancelled(context.Context, error)      {}
func (*Nop) GroupJoined(context.Context, time.Duration) {}
func (*Nop) ThreadStarted(context.Context, thread.ID)   {}
func (*Nop) ThreadFinished(context.Context, thread.ID, time.Duration, error, bool) {
}
