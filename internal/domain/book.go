package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Book is a work the user tracks.
//
// ID is the sole identity used by the board. Catalog books get it from their
// ISBN, or from a name-based UUID of Key() when the catalog has none; books
// the user creates get a random "custom-" id. Two Book values with the same
// ID are the same book no matter what their other fields say.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=300"`
	Author      string `json:"author" validate:"required,max=200"`
	Published   string `json:"published,omitempty" validate:"max=32"` // bare year or DD/MM/YYYY, display only
	Pages       int    `json:"pages,omitempty" validate:"gte=0"`
	Description string `json:"description,omitempty" validate:"max=4000"`

	// Custom marks a book authored by the user rather than sourced from the
	// catalog. Deleting a custom book erases it, deleting a catalog book hides it.
	Custom bool `json:"isTemporary,omitempty"`
}

// catalogNamespace seeds the name-based ids of catalog books without an ISBN.
var catalogNamespace = uuid.MustParse("5b1f8e0c-7a43-4c1e-9d0a-3f6b2c8e9a41")

const unknownPublished = "unknown"

// Key is the composite title_author_published identifier recorded in the
// hidden list for catalog books.
func (b Book) Key() string {
	published := b.Published
	if published == "" {
		published = unknownPublished
	}
	return fmt.Sprintf("%s_%s_%s", b.Title, b.Author, published)
}

// WithID returns b with an id assigned if it has none. The derived id is
// stable: the same title, author and published always give the same id.
func (b Book) WithID() Book {
	if strings.TrimSpace(b.ID) != "" {
		b.ID = strings.TrimSpace(b.ID)
		return b
	}
	b.ID = uuid.NewSHA1(catalogNamespace, []byte(b.Key())).String()
	return b
}

// NewCustomID generates the id of a user-authored book.
func NewCustomID() string {
	return "custom-" + uuid.NewString()
}

// UnmarshalJSON accepts ids stored as JSON numbers, which older snapshots
// contain for books created by the user.
func (b *Book) UnmarshalJSON(data []byte) error {
	type alias Book
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		b.ID = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("book id: %w", err)
		}
		b.ID = s
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("book id: %w", err)
		}
		b.ID = n.String()
	}
	return nil
}

// BookDraft is the user input for a new custom book.
type BookDraft struct {
	Title       string `json:"title" validate:"required,max=300"`
	Author      string `json:"author" validate:"required,max=200"`
	Published   string `json:"published" validate:"max=32"`
	Pages       int    `json:"pages" validate:"gte=0"`
	Description string `json:"description" validate:"max=4000"`
}

// Normalize trims the free-text fields.
func (d BookDraft) Normalize() BookDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	d.Published = strings.TrimSpace(d.Published)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Book turns the draft into a custom book with a fresh id.
func (d BookDraft) Book() Book {
	d = d.Normalize()
	return Book{
		ID:          NewCustomID(),
		Title:       d.Title,
		Author:      d.Author,
		Published:   d.Published,
		Pages:       d.Pages,
		Description: d.Description,
		Custom:      true,
	}
}

// PublishedOn formats a day/month/year triple the way user-created books
// store their publication date.
func PublishedOn(day, month, year int) string {
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}
