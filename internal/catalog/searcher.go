package catalog

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// ErrSuperseded is returned for a search whose results arrived after the
// results of a search dispatched later.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Searcher numbers searches in dispatch order and only delivers results that
// are newer than the last delivered ones.
type Searcher struct {
	service    *Service
	dispatched atomic.Uint64
	delivered  atomic.Uint64
}

func NewSearcher(s *Service) *Searcher {
	return &Searcher{service: s}
}

// Result is a delivered search.
type Result struct {
	Seq   uint64        `json:"seq"`
	Term  string        `json:"term"`
	Books []domain.Book `json:"books"`
}

// Search runs the search. The returned sequence number is set even when
// the error is ErrSuperseded.
func (s *Searcher) Search(ctx context.Context, term string) (Result, error) {
	seq := s.dispatched.Add(1)

	books, err := s.service.Search(ctx, term)
	if err != nil {
		return Result{Seq: seq, Term: term}, err
	}

	for {
		last := s.delivered.Load()
		if last >= seq {
			return Result{Seq: seq, Term: term}, ErrSuperseded
		}
		if s.delivered.CompareAndSwap(last, seq) {
			return Result{Seq: seq, Term: term, Books: books}, nil
		}
	}
}

// Latest returns the sequence number of the last delivered search.
func (s *Searcher) Latest() uint64 { return s.delivered.Load() }
