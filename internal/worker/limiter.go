package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound fetches per host so a batch of article sources on
// one site does not hammer it
type Limiter struct {
	mu     sync.RWMutex
	byHost map[string]*rate.Limiter
	limit  rate.Limit
	burst  int
}

// NewLimiter creates a limiter applying requestsPerSecond with the given
// burst to every host
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		byHost: make(map[string]*rate.Limiter),
		limit:  rate.Limit(requestsPerSecond),
		burst:  burst,
	}
}

// Wait blocks until the host behind rawURL has capacity
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.hostLimiter(parsed.Host).Wait(ctx)
}

// WaitWithDelay waits for capacity and then honors an extra delay, e.g. a
// robots.txt crawl-delay directive
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, extra time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if extra <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(extra):
		return nil
	}
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.byHost[host]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.byHost[host]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.limit, l.burst)
	l.byHost[host] = limiter
	return limiter
}
