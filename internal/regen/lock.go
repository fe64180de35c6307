package regen

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// KeyLock is a keyed try-lock with a TTL backstop. Acquire never blocks: the
// second caller for a live key is told no and backs off to the caller. The
// TTL exists so a crashed holder cannot wedge a key forever; an expired hold
// is stealable by the next Acquire. Each successful Acquire hands out a
// token, and Release only frees the key while that token still owns it, so a
// slow holder resurfacing after a steal cannot free the stealer's live hold.
type KeyLock struct {
	mu    sync.Mutex
	ttl   time.Duration
	held  map[string]hold
	clock func() time.Time
}

type hold struct {
	token  string
	expiry time.Time
}

// NewKeyLock creates a keyed lock whose holds expire after ttl
func NewKeyLock(ttl time.Duration) *KeyLock {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &KeyLock{
		ttl:   ttl,
		held:  make(map[string]hold),
		clock: time.Now,
	}
}

// Acquire attempts to take the key. Returns the ownership token and true on
// success, or false if another live hold exists.
func (l *KeyLock) Acquire(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.expiry) {
		return "", false
	}
	token := uuid.NewString()
	l.held[key] = hold{token: token, expiry: now.Add(l.ttl)}
	return token, true
}

// Release frees the key if token still owns it. A token from a hold that was
// stolen after its TTL lapsed is ignored; releasing a never-held key is safe.
func (l *KeyLock) Release(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
}

// Held reports whether the key currently carries a live hold
func (l *KeyLock) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.held[key]
	return ok && l.clock().Before(h.expiry)
}
