package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching resolved sources
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a source reference
func Key(ref string) string {
	hash := sha256.Sum256([]byte(ref))
	return "samforge:v1:" + hex.EncodeToString(hash[:])
}
