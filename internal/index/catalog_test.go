package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func TestNewCatalogIndex(t *testing.T) {
	idx := NewCatalogIndex()
	if idx == nil {
		t.Fatal("NewCatalogIndex() returned nil")
	}
	if idx.Count() != 0 {
		t.Errorf("new index should be empty, got %d", idx.Count())
	}
	if !idx.LastReload().IsZero() {
		t.Error("new index should never have been reloaded")
	}
}

func TestUpdateKeepsSourceOrder(t *testing.T) {
	idx := NewCatalogIndex()

	idx.Update([]domain.Book{
		{ID: "3", Title: "C", Author: "x"},
		{ID: "1", Title: "A", Author: "x"},
		{ID: "2", Title: "B", Author: "x"},
		{ID: "1", Title: "A again", Author: "x"},
	}, "remote")

	all := idx.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d books, want 3", len(all))
	}
	for i, want := range []string{"3", "1", "2"} {
		if all[i].ID != want {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].ID, want)
		}
	}
	if b, _ := idx.Get("1"); b.Title != "A" {
		t.Errorf("duplicate id replaced first book: %+v", b)
	}
	if idx.Source() != "remote" || idx.LastReload().IsZero() {
		t.Errorf("source = %q, lastReload = %v", idx.Source(), idx.LastReload())
	}
}

func TestUpdateOverwrites(t *testing.T) {
	idx := NewCatalogIndex()

	idx.Update([]domain.Book{{ID: "1", Title: "A", Author: "x"}}, "remote")
	idx.Update([]domain.Book{{ID: "2", Title: "B", Author: "x"}, {ID: "3", Title: "C", Author: "x"}}, "cache")

	if idx.Count() != 2 {
		t.Errorf("Update() should overwrite, got %d books want 2", idx.Count())
	}
	if _, ok := idx.Get("1"); ok {
		t.Error("book from previous load still indexed")
	}
}

func TestUpdateAssignsIDs(t *testing.T) {
	idx := NewCatalogIndex()
	book := domain.Book{Title: "Dune", Author: "Herbert"}

	idx.Update([]domain.Book{book}, "seed")

	if _, ok := idx.Get(book.WithID().ID); !ok {
		t.Error("book without id not indexed under its derived id")
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewCatalogIndex()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			idx.Update([]domain.Book{{ID: "1", Title: "A", Author: "x"}}, "remote")
		}()
		go func() {
			defer wg.Done()
			_ = idx.All()
			_, _ = idx.Get("1")
		}()
	}
	wg.Wait()

	if idx.Count() != 1 {
		t.Errorf("Count() = %d, want 1", idx.Count())
	}
}
