package cache

import "time"

// Cache memoizes expensive analytics results. Keys are deterministic
// functions of operation name and parameters, values are JSON-encoded
// payloads. Writes are idempotent (same key, equivalent recomputed value),
// so concurrent population races cost at most duplicate work.
type Cache interface {
	// Get returns the cached value and whether the key was present and
	// unexpired
	Get(key string) ([]byte, bool, error)

	// Set stores a value that expires after ttl
	Set(key string, value []byte, ttl time.Duration) error

	// Close releases underlying resources
	Close() error
}
