package columns

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Library stores the user's own books and the hidden catalog list.
type Library interface {
	AddCustom(ctx context.Context, draft domain.BookDraft) (domain.Book, error)
	RemoveCustom(ctx context.Context, id string) (bool, error)
	Hide(ctx context.Context, book domain.Book) error
}

// Board combines the column store with the library for the actions that
// touch both: creating a book and deleting one permanently.
type Board struct {
	*Store
	library Library
}

func NewBoard(s *Store, lib Library) *Board {
	return &Board{Store: s, library: lib}
}

// Create adds a custom book and files it in the to-read column.
func (b *Board) Create(ctx context.Context, draft domain.BookDraft) (domain.Book, error) {
	book, err := b.library.AddCustom(ctx, draft)
	if err != nil {
		return domain.Book{}, err
	}
	if err := b.MoveToColumn(ctx, domain.ToRead, &book); err != nil {
		if _, rerr := b.library.RemoveCustom(ctx, book.ID); rerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to discard unfiled book %s: %w", book.ID, rerr))
		}
		return domain.Book{}, err
	}
	b.mu.Lock()
	b.notify(domain.LevelSuccess, fmt.Sprintf("%q was added", book.Title), book.ID)
	b.mu.Unlock()
	return book, nil
}

// Delete removes book everywhere: it is unfiled, its feedback is cleared, and
// then a custom book is erased while a catalog book is hidden from the
// catalog.
func (b *Board) Delete(ctx context.Context, book domain.Book) error {
	book = book.WithID()

	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	filed, err := b.unfile(ctx, book.ID, false)
	if err != nil && !filed {
		// The book is still on the board: leave the library alone.
		b.notify(domain.LevelError, fmt.Sprintf("%q could not be deleted", book.Title), book.ID)
		return err
	}
	if err != nil {
		errs = append(errs, err)
	}
	if !filed && b.feedback != nil {
		if err := b.feedback.Clear(ctx, book.ID); err != nil {
			errs = append(errs, fmt.Errorf("failed to clear feedback for %s: %w", book.ID, err))
		}
	}

	if book.Custom {
		if _, err := b.library.RemoveCustom(ctx, book.ID); err != nil {
			errs = append(errs, err)
		}
	} else if err := b.library.Hide(ctx, book); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		b.notify(domain.LevelError, fmt.Sprintf("%q could not be deleted", book.Title), book.ID)
		return err
	}

	b.notify(domain.LevelSuccess, fmt.Sprintf("%q was deleted permanently", book.Title), book.ID)
	b.logger.Info("book deleted", logger.BookID(book.ID), logger.Bool("custom", book.Custom))
	return nil
}
