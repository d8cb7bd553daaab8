// Package feedback keeps the rating and comment attached to each book id.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/store"
)

// Store persists feedback as one JSON object under store.KeyFeedback,
// keyed by book id. Every change rewrites the whole object.
type Store struct {
	mu     sync.Mutex
	kv     store.KV
	logger logger.Logger
}

// New creates a feedback store over kv.
func New(kv store.KV, log logger.Logger) *Store {
	return &Store{kv: kv, logger: log}
}

// Get returns the feedback for id, or the zero Feedback when none is stored.
func (s *Store) Get(ctx context.Context, id string) (domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return domain.Feedback{}, err
	}
	return all[id], nil
}

// Set stores rating and comments for id. Rating must be within
// domain.MinRating and domain.MaxRating. Setting the zero feedback clears it.
func (s *Store) Set(ctx context.Context, id string, rating int, comments string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: empty book id", domain.ErrInvalid)
	}
	fb := domain.Feedback{Rating: rating, Comments: strings.TrimSpace(comments)}
	if err := domain.Validate(fb); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if fb.IsZero() {
		delete(all, id)
	} else {
		all[id] = fb
	}
	return s.save(ctx, all)
}

// Clear removes any feedback for id. Clearing an id without feedback does
// not write.
func (s *Store) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[id]; !ok {
		return nil
	}
	delete(all, id)
	return s.save(ctx, all)
}

// All returns a copy of every stored feedback.
func (s *Store) All(ctx context.Context) (map[string]domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Retain drops the feedback of every id for which keep returns false and
// reports how many entries were removed. keep runs with the store locked.
func (s *Store) Retain(ctx context.Context, keep func(id string) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for id := range all {
		if !keep(id) {
			delete(all, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(ctx, all)
}

// load reads the stored object. A malformed value is logged and read as empty.
func (s *Store) load(ctx context.Context) (map[string]domain.Feedback, error) {
	all := make(map[string]domain.Feedback)
	_, err := store.GetJSON(ctx, s.kv, store.KeyFeedback, &all)
	if errors.Is(err, store.ErrMalformed) {
		s.logger.Warn("ignoring malformed feedback", logger.Error(err))
		return make(map[string]domain.Feedback), nil
	}
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Store) save(ctx context.Context, all map[string]domain.Feedback) error {
	if err := store.SetJSON(ctx, s.kv, store.KeyFeedback, all); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}
