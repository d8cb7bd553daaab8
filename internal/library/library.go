// Package library owns the books the user authored and the catalog books the
// user chose to hide.
package library

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

// Library persists custom books under store.KeyCustomBooks and hidden
// catalog keys under store.KeyHiddenBooks.
type Library struct {
	mu     sync.Mutex
	kv     store.KV
	logger logger.Logger
}

func New(kv store.KV, log logger.Logger) *Library {
	return &Library{kv: kv, logger: log}
}

// AddCustom validates draft and stores it as a new custom book.
func (l *Library) AddCustom(ctx context.Context, draft domain.BookDraft) (domain.Book, error) {
	draft = draft.Normalize()
	if err := domain.Validate(draft); err != nil {
		return domain.Book{}, err
	}
	book := draft.Book()

	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.loadCustom(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	books = append(books, book)
	if err := store.SetJSON(ctx, l.kv, store.KeyCustomBooks, books); err != nil {
		return domain.Book{}, fmt.Errorf("failed to save custom books: %w", err)
	}

	l.logger.Info("custom book added", logger.BookID(book.ID), logger.String("title", book.Title))
	return book, nil
}

// RemoveCustom erases the custom book with id. It reports false when no such
// book exists.
func (l *Library) RemoveCustom(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.loadCustom(ctx)
	if err != nil {
		return false, err
	}

	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return false, nil
	}
	if err := store.SetJSON(ctx, l.kv, store.KeyCustomBooks, kept); err != nil {
		return false, fmt.Errorf("failed to save custom books: %w", err)
	}
	return true, nil
}

// Custom returns every custom book, in creation order.
func (l *Library) Custom(ctx context.Context) ([]domain.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadCustom(ctx)
}

// CustomBook looks up a custom book by id.
func (l *Library) CustomBook(ctx context.Context, id string) (domain.Book, bool, error) {
	books, err := l.Custom(ctx)
	if err != nil {
		return domain.Book{}, false, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, true, nil
		}
	}
	return domain.Book{}, false, nil
}

// Hide records the composite key of a catalog book so the catalog stops
// offering it. Hiding twice is a no-op.
func (l *Library) Hide(ctx context.Context, book domain.Book) error {
	key := book.Key()

	l.mu.Lock()
	defer l.mu.Unlock()

	keys, err := l.loadHidden(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if k == key {
			return nil
		}
	}
	keys = append(keys, key)
	if err := store.SetJSON(ctx, l.kv, store.KeyHiddenBooks, keys); err != nil {
		return fmt.Errorf("failed to save hidden books: %w", err)
	}

	l.logger.Info("catalog book hidden", logger.BookID(book.ID), logger.String("key", key))
	return nil
}

// Hidden returns the set of hidden composite keys.
func (l *Library) Hidden(ctx context.Context) (map[string]bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys, err := l.loadHidden(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set, nil
}

// IsHidden reports whether book was hidden by the user.
func (l *Library) IsHidden(ctx context.Context, book domain.Book) (bool, error) {
	hidden, err := l.Hidden(ctx)
	if err != nil {
		return false, err
	}
	return hidden[book.Key()], nil
}

// loadCustom reads the custom books, giving ids to entries stored without one.
func (l *Library) loadCustom(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	_, err := store.GetJSON(ctx, l.kv, store.KeyCustomBooks, &books)
	if errors.Is(err, store.ErrMalformed) {
		l.logger.Warn("ignoring malformed custom books", logger.Error(err))
		return []domain.Book{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		b = b.WithID()
		b.Custom = true
		out = append(out, b)
	}
	return out, nil
}

// loadHidden merges the hidden list with the legacy deleted list.
func (l *Library) loadHidden(ctx context.Context) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)

	for _, key := range []string{store.KeyHiddenBooks, store.KeyDeletedBooks} {
		var stored []string
		_, err := store.GetJSON(ctx, l.kv, key, &stored)
		if errors.Is(err, store.ErrMalformed) {
			l.logger.Warn("ignoring malformed hidden list", logger.String("key", key), logger.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, k := range stored {
			k = strings.TrimSpace(k)
			if k != "" && !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}
