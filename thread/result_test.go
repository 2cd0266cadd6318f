package thread

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestAsyncDeliversValue(t *testing.T) {
	t.Parallel()
	r, err := Async(func() (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 1 + rand.Intn(10), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := r.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v < 1 || v > 10 {
		t.Fatalf("value %d out of range [1,10]", v)
	}
	if r.Thread().Joinable() {
		t.Fatal("handle should be joined once the value is delivered")
	}
	v2, err := r.Wait(context.Background())
	if err != nil || v2 != v {
		t.Fatalf("repeated Wait should return the delivered value, got (%d, %v)", v2, err)
	}
}

func TestAsyncPropagatesError(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("boom")
	r, err := Async(func() (string, error) { return "", wantErr })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Wait(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected work error, got %v", err)
	}
}

func TestAsyncWaitHonorsContext(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	r, err := Async(func() (string, error) {
		<-release
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	close(release)
	v, err := r.Wait(context.Background())
	if err != nil || v != "done" {
		t.Fatalf("retried Wait should deliver the value, got (%q, %v)", v, err)
	}
}

func TestAsyncRespectsLimiter(t *testing.T) {
	t.Parallel()
	lim := NewLimiter(1)
	block := make(chan struct{})
	r, err := Async(func() (int, error) {
		<-block
		return 1, nil
	}, WithLimiter(lim))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Async(func() (int, error) { return 2, nil }, WithLimiter(lim)); !errors.Is(err, ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
	close(block)
	if _, err := r.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
