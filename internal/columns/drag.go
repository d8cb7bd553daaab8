package columns

import (
	"context"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// BeginDrag holds book until it is dropped or the drag is cancelled. There
// is at most one drag in flight; starting another replaces the held book.
func (s *Store) BeginDrag(book domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := book.WithID()
	s.dragged = &b
	s.logger.Debug("drag started", logger.BookID(b.ID))
}

// Drop moves the held book to target and clears the holder. It reports false
// when nothing was held or target is not a column.
func (s *Store) Drop(ctx context.Context, target domain.ColumnID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := s.dragged
	s.dragged = nil
	if held == nil {
		return false, nil
	}
	if _, ok := domain.ParseColumnID(string(target)); !ok {
		return false, nil
	}
	return true, s.move(ctx, target, held)
}

// CancelDrag clears the holder without moving anything.
func (s *Store) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragged = nil
}

// Dragging returns the held book, if any.
func (s *Store) Dragging() (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragged == nil {
		return domain.Book{}, false
	}
	return *s.dragged, true
}
