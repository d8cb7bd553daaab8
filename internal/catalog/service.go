// Package catalog assembles the books a user can browse: the catalog minus the
// hidden ones, plus the user's own books.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/store"
)

// Sources recorded in the index after a reload.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceSeed   = "seed"
)

// ErrUnavailable is returned by Reload when no source produced any book.
var ErrUnavailable = errors.New("catalog unavailable")

// Fetcher returns the remote catalog.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Book, error)
}

// SeedLoader returns the local seed catalog.
type SeedLoader interface {
	Load() ([]domain.Book, error)
}

// Library is the user's side of the catalog.
type Library interface {
	Custom(ctx context.Context) ([]domain.Book, error)
	Hidden(ctx context.Context) (map[string]bool, error)
}

// Filed lists the ids already on the board.
type Filed interface {
	AllBookIDs() []string
}

type Options struct {
	Remote   Fetcher       // nil disables the remote catalog
	Seed     SeedLoader    // nil disables the seed file
	CacheTTL time.Duration // max age of the cached remote catalog, 0 disables the fallback
}

type Service struct {
	index   *index.CatalogIndex
	library Library
	filed   Filed
	kv      store.KV
	opts    Options
	logger  logger.Logger
	now     func() time.Time
}

func NewService(idx *index.CatalogIndex, lib Library, filed Filed, kv store.KV, log logger.Logger, opts Options) *Service {
	return &Service{
		index:   idx,
		library: lib,
		filed:   filed,
		kv:      kv,
		opts:    opts,
		logger:  log,
		now:     time.Now,
	}
}

// cacheDocument is the value stored under store.KeyCatalogCache.
type cacheDocument struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Books     []domain.Book `json:"books"`
}

// Reload refreshes the index from the remote catalog and the seed file. When
// the remote fails and the index is empty, the cached copy of the last
// successful fetch is used instead. A failed reload never empties a populated
// index.
func (s *Service) Reload(ctx context.Context) error {
	var (
		books   []domain.Book
		sources []string
		errs    []error
	)

	if s.opts.Remote != nil {
		remote, err := s.opts.Remote.Fetch(ctx)
		switch {
		case err == nil:
			books = append(books, remote...)
			sources = append(sources, SourceRemote)
			s.saveCache(ctx, remote)
		case s.index.Count() > 0 && s.index.Source() != SourceSeed:
			return fmt.Errorf("failed to reload catalog, keeping %d books: %w", s.index.Count(), err)
		default:
			errs = append(errs, err)
			if cached, ok := s.loadCache(ctx); ok {
				books = append(books, cached...)
				sources = append(sources, SourceCache)
			}
		}
	}

	if s.opts.Seed != nil {
		seed, err := s.opts.Seed.Load()
		if err != nil {
			errs = append(errs, err)
		} else {
			books = append(books, seed...)
			sources = append(sources, SourceSeed)
		}
	}

	if len(books) == 0 {
		errs = append(errs, ErrUnavailable)
		return errors.Join(errs...)
	}

	s.index.Update(books, strings.Join(sources, "+"))
	s.logger.Info("catalog loaded",
		logger.Int("count", s.index.Count()),
		logger.String("source", s.index.Source()))

	for _, err := range errs {
		s.logger.Warn("catalog source failed", logger.Error(err))
	}
	return nil
}

func (s *Service) saveCache(ctx context.Context, books []domain.Book) {
	doc := cacheDocument{FetchedAt: s.now().UTC(), Books: books}
	if err := store.SetJSON(ctx, s.kv, store.KeyCatalogCache, doc); err != nil {
		s.logger.Warn("failed to cache catalog", logger.Error(err))
	}
}

func (s *Service) loadCache(ctx context.Context) ([]domain.Book, bool) {
	if s.opts.CacheTTL <= 0 {
		return nil, false
	}

	var doc cacheDocument
	ok, err := store.GetJSON(ctx, s.kv, store.KeyCatalogCache, &doc)
	if err != nil {
		s.logger.Warn("catalog cache unreadable", logger.Error(err))
		return nil, false
	}
	if !ok || len(doc.Books) == 0 {
		return nil, false
	}

	age := s.now().Sub(doc.FetchedAt)
	if age > s.opts.CacheTTL {
		s.logger.Info("catalog cache expired", logger.Duration("age", age))
		return nil, false
	}

	s.logger.Info("using cached catalog",
		logger.Int("count", len(doc.Books)),
		logger.Duration("age", age))
	return doc.Books, true
}

// AllBooks returns the catalog books the user has not hidden, followed by
// the user's own books. Without a catalog only the user's books are
// returned.
func (s *Service) AllBooks(ctx context.Context) ([]domain.Book, error) {
	custom, err := s.library.Custom(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom books: %w", err)
	}

	hidden, err := s.library.Hidden(ctx)
	if err != nil {
		s.logger.Warn("failed to read hidden books", logger.Error(err))
		return custom, nil
	}

	catalogBooks := s.index.All()
	books := make([]domain.Book, 0, len(catalogBooks)+len(custom))
	for _, b := range catalogBooks {
		if !hidden[b.Key()] {
			books = append(books, b)
		}
	}
	return append(books, custom...), nil
}

// Search returns the unfiled books whose title or author contains term,
// ignoring case. An empty term matches every unfiled book.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Book, error) {
	all, err := s.AllBooks(ctx)
	if err != nil {
		return nil, err
	}

	filed := make(map[string]bool)
	for _, id := range s.filed.AllBookIDs() {
		filed[id] = true
	}

	term = strings.ToLower(strings.TrimSpace(term))
	matches := []domain.Book{}
	for _, b := range all {
		if filed[b.ID] {
			continue
		}
		if term == "" ||
			strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// Lookup finds a book by id among the user's books and the catalog,
// including hidden catalog books.
func (s *Service) Lookup(ctx context.Context, id string) (domain.Book, bool, error) {
	custom, err := s.library.Custom(ctx)
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("failed to read custom books: %w", err)
	}
	for _, b := range custom {
		if b.ID == id {
			return b, true, nil
		}
	}
	b, ok := s.index.Get(id)
	return b, ok, nil
}

// Count returns the number of catalog books currently indexed.
func (s *Service) Count() int { return s.index.Count() }

// Source returns where the indexed catalog came from.
func (s *Service) Source() string { return s.index.Source() }

// LastReload returns when the index was last rebuilt.
func (s *Service) LastReload() time.Time { return s.index.LastReload() }
