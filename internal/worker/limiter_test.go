package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_PacesSameHost(t *testing.T) {
	l := NewLimiter(50, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "https://example.com/post"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	// Burst 1 at 50 rps: two of three calls pay ~20ms each
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("3 calls took %v, expected pacing", elapsed)
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)
	ctx := context.Background()

	start := time.Now()
	hosts := []string{"https://a.example/x", "https://b.example/x", "https://c.example/x"}
	for _, h := range hosts {
		if err := l.Wait(ctx, h); err != nil {
			t.Fatalf("wait %s: %v", h, err)
		}
	}
	// Each host has its own bucket, so first calls never queue
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("distinct hosts took %v, expected no queuing", elapsed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	l := NewLimiter(100, 10)

	start := time.Now()
	if err := l.WaitWithDelay(context.Background(), "https://example.com/x", 50*time.Millisecond); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("extra delay not honored: %v", elapsed)
	}
}

func TestLimiter_WaitWithDelayCancelled(t *testing.T) {
	l := NewLimiter(100, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.WaitWithDelay(ctx, "https://example.com/x", time.Minute); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
