package catalogapi

import (
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Placeholders for fields the catalog leaves empty.
const (
	UnknownAuthor      = "Unknown author"
	UnknownDate        = "Unknown date"
	NoDescription      = "No description available"
	descriptionSubject = 3
)

// MapWorks converts catalog entries to books. Entries without a title are
// skipped. Every book gets an id: its ISBN, or one derived from its
// title, author and publication year.
func MapWorks(works []Work) []domain.Book {
	books := make([]domain.Book, 0, len(works))
	for _, w := range works {
		title := strings.TrimSpace(w.Title)
		if title == "" {
			continue
		}
		books = append(books, domain.Book{
			ID:          strings.TrimSpace(w.ISBN),
			Title:       title,
			Author:      author(w.Authors),
			Published:   published(w.FirstPublishYear),
			Pages:       max(w.Pages, 0),
			Description: description(w.Subject),
		}.WithID())
	}
	return books
}

func author(authors []Author) string {
	if len(authors) == 0 || strings.TrimSpace(authors[0].Name) == "" {
		return UnknownAuthor
	}
	return strings.TrimSpace(authors[0].Name)
}

func published(year int) string {
	if year == 0 {
		return UnknownDate
	}
	return strconv.Itoa(year)
}

func description(subjects []string) string {
	if len(subjects) == 0 {
		return NoDescription
	}
	if len(subjects) > descriptionSubject {
		subjects = subjects[:descriptionSubject]
	}
	return strings.Join(subjects, ", ")
}
