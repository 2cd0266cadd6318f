package thread

import (
	"context"
	"time"
)

// Observer receives lifecycle hooks from groups and spawned threads.
// Implementations must be safe for concurrent use.
type Observer interface {
	GroupCreated(ctx context.Context)
	GroupCancelled(ctx context.Context, cause error)
	GroupJoined(ctx context.Context, wait time.Duration)
	ThreadStarted(ctx context.Context, id ID)
	ThreadFinished(ctx context.Context, id ID, dur time.Duration, err error, panicked bool)
}
