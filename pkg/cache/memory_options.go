package cache

import "time"

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the TTL applied when Set receives zero.
// A negative value makes such entries permanent.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the background sweeper; expired entries are then
// dropped lazily on access.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.cleanupInterval = d }
}

// WithMaxEntries caps the number of entries; the least recently used
// entry is evicted when the cap is reached. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) { o.maxEntries = n }
}
