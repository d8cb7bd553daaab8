package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// gatedFiled blocks the first AllBookIDs call until released.
type gatedFiled struct {
	entered chan struct{}
	release chan struct{}
	first   bool
}

func (g *gatedFiled) AllBookIDs() []string {
	if g.first {
		g.first = false
		close(g.entered)
		<-g.release
	}
	return nil
}

func TestSearcherDeliversInOrder(t *testing.T) {
	ctx := context.Background()
	f := newService(t, nil, Options{Remote: &fakeFetcher{books: []domain.Book{dune, emma}}})
	_ = f.service.Reload(ctx)
	s := NewSearcher(f.service)

	first, err := s.Search(ctx, "dune")
	if err != nil || first.Seq != 1 || len(first.Books) != 1 {
		t.Fatalf("first Search() = %+v, %v", first, err)
	}
	second, err := s.Search(ctx, "emma")
	if err != nil || second.Seq != 2 {
		t.Fatalf("second Search() = %+v, %v", second, err)
	}
	if s.Latest() != 2 {
		t.Errorf("Latest() = %d, want 2", s.Latest())
	}
}

func TestSearcherDropsStaleResponse(t *testing.T) {
	ctx := context.Background()
	gate := &gatedFiled{entered: make(chan struct{}), release: make(chan struct{}), first: true}
	f := newService(t, gate, Options{Remote: &fakeFetcher{books: []domain.Book{dune, emma}}})
	_ = f.service.Reload(ctx)
	s := NewSearcher(f.service)

	type outcome struct {
		res Result
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := s.Search(ctx, "d")
		slow <- outcome{res, err}
	}()
	<-gate.entered

	fast, err := s.Search(ctx, "du")
	if err != nil || fast.Seq != 2 {
		t.Fatalf("newer Search() = %+v, %v", fast, err)
	}

	close(gate.release)
	got := <-slow
	if !errors.Is(got.err, ErrSuperseded) {
		t.Fatalf("stale Search() error = %v, want ErrSuperseded", got.err)
	}
	if got.res.Seq != 1 || got.res.Books != nil {
		t.Errorf("stale result = %+v", got.res)
	}
	if s.Latest() != 2 {
		t.Errorf("Latest() = %d, want 2", s.Latest())
	}
}
