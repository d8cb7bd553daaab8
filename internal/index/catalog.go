package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// CatalogIndex holds the catalog books in memory, in source order. It is
// rebuilt wholesale on every catalog reload.
type CatalogIndex struct {
	mu         sync.RWMutex
	books      map[string]domain.Book // ID -> Book
	order      []string
	source     string    // where the last load came from
	lastReload time.Time // Timestamp of last catalog reload
}

// NewCatalogIndex creates an empty index
func NewCatalogIndex() *CatalogIndex {
	return &CatalogIndex{
		books: make(map[string]domain.Book),
	}
}

// Update replaces all books in the index. Books sharing an id keep the first.
func (idx *CatalogIndex) Update(books []domain.Book, source string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.books = make(map[string]domain.Book, len(books))
	idx.order = make([]string, 0, len(books))
	for _, b := range books {
		b = b.WithID()
		if _, dup := idx.books[b.ID]; dup {
			continue
		}
		idx.books[b.ID] = b
		idx.order = append(idx.order, b.ID)
	}
	idx.source = source
	idx.lastReload = time.Now()
}

// Get retrieves a book by ID
func (idx *CatalogIndex) Get(id string) (domain.Book, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.books[id]
	return b, ok
}

// All returns every book in source order
func (idx *CatalogIndex) All() []domain.Book {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	books := make([]domain.Book, 0, len(idx.order))
	for _, id := range idx.order {
		books = append(books, idx.books[id])
	}
	return books
}

// Count returns the number of books in the index
func (idx *CatalogIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.order)
}

// Source returns where the current books were loaded from
func (idx *CatalogIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// LastReload returns the timestamp of the last reload, zero if never loaded
func (idx *CatalogIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
