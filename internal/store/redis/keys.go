package redis

import "strings"

const (
	// KeyPrefix namespaces every board value in a shared Redis.
	KeyPrefix = "shelf:kv:"
)

// Key returns the Redis key holding the board value name.
func Key(name string) string {
	return KeyPrefix + name
}

// Name is the inverse of Key. ok is false for keys outside the namespace.
func Name(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) || len(key) == len(KeyPrefix) {
		return "", false
	}
	return key[len(KeyPrefix):], true
}
