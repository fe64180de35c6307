package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists resolved source text across runs so repeated
// generations against the same reference skip the refetch
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache creates a disk cache rooted at dir
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: ttl}
}

// diskEntry is the on-disk record. Expiry rides inside the file so a
// clock-independent sweep is never needed.
type diskEntry struct {
	Body      []byte `json:"body"`
	ExpiresAt int64  `json:"expires_at"` // Unix seconds
}

func (c *DiskCache) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Unreadable entries are dropped, not surfaced
		_ = os.Remove(c.path(key))
		return nil, false
	}

	if time.Now().Unix() >= entry.ExpiresAt {
		_ = os.Remove(c.path(key))
		return nil, false
	}
	return entry.Body, true
}

// Set stores a value. A zero ttl means the cache default.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	raw, err := json.Marshal(diskEntry{
		Body:      value,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), raw, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".src")
}
