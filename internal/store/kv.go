// Package store defines the key-value persistence the board writes its
// snapshots to. Backends live in the sub-packages.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted board state. Values are JSON documents.
const (
	KeyColumns      = "columns"
	KeyCustomBooks  = "customBooks"
	KeyHiddenBooks  = "hiddenBooks"
	KeyDeletedBooks = "deletedBooks" // legacy name of the hidden list, read only
	KeyFeedback     = "bookFeedback"
	KeyCatalogCache = "catalogCache"
)

var (
	// ErrLocked is returned when another process owns the backing file.
	ErrLocked = errors.New("store is locked by another process")
	// ErrMalformed is returned by GetJSON when a stored value does not decode.
	ErrMalformed = errors.New("malformed stored value")
)

// KV is a string-keyed store of opaque values.
type KV interface {
	// Get returns the value and true, or nil and false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the value under key into dst. It returns false when the key
// is absent and an error wrapping ErrMalformed when the value is not valid JSON
// for dst.
func GetJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
