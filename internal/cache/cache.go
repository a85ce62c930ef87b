package cache

import "time"

// Cache defines the key-value store shared by every data accessor and every
// mutation site. Entries carry a TTL; a TTL <= 0 never expires.
type Cache interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (any, bool)

	// GetStale returns the value whether or not it has expired.
	// Only the error-fallback path of a fetch should use it.
	GetStale(key string) (any, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the entry does not expire.
	Set(key string, value any, ttl time.Duration)

	// Delete removes a key if present.
	Delete(key string)

	// InvalidatePrefix removes every key starting with prefix and returns how many were removed.
	InvalidatePrefix(prefix string) int

	// Has reports whether a key is present and not expired.
	Has(key string) bool

	// Len returns the number of non-expired items currently stored.
	Len() int

	// Keys returns every stored key, expired or not, in sorted order.
	Keys() []string

	// Clear removes all entries.
	Clear()

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}

// GetAs is a typed Get. A value stored under key with a different type is a miss.
func GetAs[T any](c Cache, key string) (T, bool) {
	return as[T](c.Get(key))
}

// GetStaleAs is a typed GetStale.
func GetStaleAs[T any](c Cache, key string) (T, bool) {
	return as[T](c.GetStale(key))
}

func as[T any](v any, ok bool) (T, bool) {
	var zero T
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
