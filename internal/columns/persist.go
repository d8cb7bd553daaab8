package columns

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/store"
)

// load reads the stored snapshot. dirty reports that the snapshot had to be
// repaired (or did not exist) and should be written back.
func (s *Store) load(ctx context.Context) (cols []domain.Column, dirty bool, err error) {
	var stored []domain.Column
	ok, err := store.GetJSON(ctx, s.kv, store.KeyColumns, &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		s.logger.Info("no saved board, creating default columns")
		return domain.DefaultLayout(), true, nil
	}

	byID := make(map[domain.ColumnID]domain.Column, len(stored))
	for _, c := range stored {
		if _, known := domain.ParseColumnID(string(c.ID)); !known {
			s.logger.Warn("dropping unknown column from saved board",
				logger.Column(string(c.ID)), logger.Int("books", len(c.Books)))
			dirty = true
			continue
		}
		if _, dup := byID[c.ID]; dup {
			return nil, false, fmt.Errorf("%w: column %s saved twice", store.ErrMalformed, c.ID)
		}
		byID[c.ID] = c
	}

	seen := make(map[string]bool)
	cols = make([]domain.Column, 0, len(domain.ColumnIDs))
	for _, id := range domain.ColumnIDs {
		c, ok := byID[id]
		if !ok {
			return nil, false, fmt.Errorf("%w: column %s missing", store.ErrMalformed, id)
		}
		if c.Title == "" {
			c.Title = id.Title()
			dirty = true
		}

		books := make([]domain.Book, 0, len(c.Books))
		for _, b := range c.Books {
			if b.ID == "" {
				dirty = true
			}
			b = b.WithID()
			if seen[b.ID] {
				s.logger.Warn("dropping duplicate book from saved board",
					logger.BookID(b.ID), logger.Column(id.String()))
				dirty = true
				continue
			}
			seen[b.ID] = true
			books = append(books, b)
		}
		c.Books = books
		cols = append(cols, c)
	}

	s.logger.Info("board restored", logger.Int("books", len(seen)))
	return cols, dirty, nil
}

// persist writes cols as the complete board under store.KeyColumns.
func (s *Store) persist(ctx context.Context, cols []domain.Column) error {
	if err := store.SetJSON(ctx, s.kv, store.KeyColumns, cols); err != nil {
		return fmt.Errorf("failed to persist board: %w", err)
	}
	return nil
}
