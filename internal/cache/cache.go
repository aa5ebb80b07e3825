// Package cache provides the layered snapshot cache used by evidence
// gathering. Repeated checks of the same post hit the cache instead of
// refetching oEmbed lookups and linked pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface all cache layers implement
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "claimlens:v1:" + hex.EncodeToString(sum[:])
}
