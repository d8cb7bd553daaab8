package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Store is the Redis backed store.KV. Values are kept without TTL: the board
// snapshot is the only durable copy of the user's state.
type Store struct {
	client *redis.Client
}

// NewStore wraps an already connected client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves a value by name
func (s *Store) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, Key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return data, true, nil
}

// Set stores a value by name
func (s *Store) Set(ctx context.Context, name string, value []byte) error {
	if err := s.client.Set(ctx, Key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// Remove deletes a value by name
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, Key(name)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Names lists the value names currently stored, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if name, ok := Name(iter.Val()); ok {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
