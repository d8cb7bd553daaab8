// Package columns holds the reading board: three fixed status columns and the
// books filed in them. All membership changes go through Store, which keeps a
// book in at most one column and writes a full snapshot after every change.
package columns

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/store"
)

// Renderer receives the full board after every change. It is called with the
// store lock held and must not call back into the Store.
type Renderer interface {
	Render(cols []domain.Column)
}

// Notifier receives user-facing messages about board changes.
type Notifier interface {
	Notify(n domain.Notification)
}

// FeedbackClearer drops the feedback of a book leaving the board.
type FeedbackClearer interface {
	Clear(ctx context.Context, id string) error
}

type Option func(*Store)

func WithRenderer(r Renderer) Option { return func(s *Store) { s.renderer = r } }

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithLogger(l logger.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides time.Now for notification timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// Store is the single source of truth for column membership.
type Store struct {
	mu       sync.Mutex
	columns  []domain.Column
	dragged  *domain.Book
	kv       store.KV
	feedback FeedbackClearer
	renderer Renderer
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time

	// filed mirrors the ids in columns for readers that must not take mu.
	filed atomic.Pointer[map[string]struct{}]
}

// New restores the board from kv. A missing, unreadable or malformed snapshot
// is replaced by the default empty layout, which is persisted right away.
// feedback may be nil.
func New(ctx context.Context, kv store.KV, feedback FeedbackClearer, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		feedback: feedback,
		logger:   logger.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cols, dirty, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("board snapshot unusable, starting with empty columns", logger.Error(err))
		cols, dirty = domain.DefaultLayout(), true
	}
	s.swap(cols)

	if dirty {
		if err := s.persist(ctx, cols); err != nil {
			s.logger.Error("failed to persist initial board", logger.Error(err))
		}
	}
	s.render()
	return s
}

// MoveToColumn files book in the target column and removes it from every
// other column. A nil book or an unknown column is a no-op. Moving a book to
// the column that already holds it leaves the order unchanged.
func (s *Store) MoveToColumn(ctx context.Context, target domain.ColumnID, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(ctx, target, book)
}

func (s *Store) move(ctx context.Context, target domain.ColumnID, book *domain.Book) error {
	if book == nil {
		return nil
	}
	ti := s.indexOf(target)
	if ti < 0 {
		s.logger.Debug("ignoring move to unknown column", logger.Column(target.String()))
		return nil
	}
	b := book.WithID()

	next := s.snapshot()
	if !containsID(next[ti].Books, b.ID) {
		next[ti].Books = append(next[ti].Books, b)
	}
	for i := range next {
		if i != ti {
			next[i].Books = withoutID(next[i].Books, b.ID)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.swap(next)
	s.logger.Debug("book moved", logger.BookID(b.ID), logger.Column(target.String()))
	s.render()
	return nil
}

// RemoveBookByID unfiles the book with id and clears its feedback. It
// reports false, without notifying or writing, when no column holds id.
func (s *Store) RemoveBookByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unfile(ctx, id, true)
}

func (s *Store) unfile(ctx context.Context, id string, notify bool) (bool, error) {
	next := s.snapshot()
	var removed *domain.Book
	for i := range next {
		for j, b := range next[i].Books {
			if b.ID == id {
				removed = &b
				next[i].Books = append(next[i].Books[:j:j], next[i].Books[j+1:]...)
				break
			}
		}
		if removed != nil {
			break
		}
	}
	if removed == nil {
		return false, nil
	}

	// The board and the feedback stay untouched unless the new board is durable.
	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.swap(next)

	var err error
	if s.feedback != nil {
		if cerr := s.feedback.Clear(ctx, id); cerr != nil {
			err = fmt.Errorf("failed to clear feedback for %s: %w", id, cerr)
		}
	}
	if notify {
		s.notify(domain.LevelSuccess, fmt.Sprintf("%q was removed from its column", removed.Title), id)
	}
	s.render()

	s.logger.Info("book unfiled", logger.BookID(id))
	return true, err
}

// AllBookIDs returns the id of every filed book, in column then display order.
func (s *Store) AllBookIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	seen := make(map[string]bool)
	for _, c := range s.columns {
		for _, b := range c.Books {
			if !seen[b.ID] {
				seen[b.ID] = true
				ids = append(ids, b.ID)
			}
		}
	}
	return ids
}

// IsFiled reports whether a column holds id. It never blocks on an ongoing
// board change and sees every change whose write has completed.
func (s *Store) IsFiled(id string) bool {
	filed := s.filed.Load()
	if filed == nil {
		return false
	}
	_, ok := (*filed)[id]
	return ok
}

// Contains reports whether book is filed in any column.
func (s *Store) Contains(book domain.Book) bool {
	_, ok := s.ColumnOf(book.WithID().ID)
	return ok
}

// ColumnOf returns the column holding id.
func (s *Store) ColumnOf(id string) (domain.ColumnID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.columns {
		if containsID(c.Books, id) {
			return c.ID, true
		}
	}
	return "", false
}

// Book returns the filed book with id.
func (s *Store) Book(id string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.columns {
		for _, b := range c.Books {
			if b.ID == id {
				return b, true
			}
		}
	}
	return domain.Book{}, false
}

// Columns returns a deep copy of the board.
func (s *Store) Columns() []domain.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []domain.Column {
	out := make([]domain.Column, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.Clone()
	}
	return out
}

// swap installs cols as the current board.
func (s *Store) swap(cols []domain.Column) {
	filed := make(map[string]struct{})
	for _, c := range cols {
		for _, b := range c.Books {
			filed[b.ID] = struct{}{}
		}
	}
	s.columns = cols
	s.filed.Store(&filed)
}

func (s *Store) indexOf(id domain.ColumnID) int {
	for i, c := range s.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) render() {
	if s.renderer != nil {
		s.renderer.Render(s.snapshot())
	}
}

func (s *Store) notify(level, msg, bookID string) {
	if s.notifier != nil {
		s.notifier.Notify(domain.Notification{Level: level, Message: msg, BookID: bookID, At: s.now()})
	}
}

func containsID(books []domain.Book, id string) bool {
	for _, b := range books {
		if b.ID == id {
			return true
		}
	}
	return false
}

func withoutID(books []domain.Book, id string) []domain.Book {
	out := books[:0:0]
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
