package columns

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func TestDragAndDrop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, ok := f.store.Dragging(); ok {
		t.Fatal("new store should hold nothing")
	}

	f.store.BeginDrag(*dune())
	if b, ok := f.store.Dragging(); !ok || b.ID != "b1" {
		t.Fatalf("Dragging() = %+v, %v", b, ok)
	}

	moved, err := f.store.Drop(ctx, domain.Reading)
	if err != nil || !moved {
		t.Fatalf("Drop() = %v, %v", moved, err)
	}
	if col, _ := f.store.ColumnOf("b1"); col != domain.Reading {
		t.Errorf("b1 in %q, want reading", col)
	}
	if _, ok := f.store.Dragging(); ok {
		t.Error("holder not cleared after drop")
	}

	moved, _ = f.store.Drop(ctx, domain.Read)
	if moved {
		t.Error("Drop() with empty holder should report false")
	}
}

func TestDragReplacesHeldBook(t *testing.T) {
	f := newFixture(t)

	f.store.BeginDrag(*dune())
	f.store.BeginDrag(domain.Book{ID: "b2", Title: "Emma", Author: "Austen"})

	if b, _ := f.store.Dragging(); b.ID != "b2" {
		t.Errorf("Dragging() = %q, want b2", b.ID)
	}
}

func TestCancelDrag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.store.BeginDrag(*dune())
	f.store.CancelDrag()

	if _, ok := f.store.Dragging(); ok {
		t.Error("holder not cleared after cancel")
	}
	if moved, _ := f.store.Drop(ctx, domain.ToRead); moved {
		t.Error("Drop() after cancel moved a book")
	}
	if len(f.store.AllBookIDs()) != 0 {
		t.Error("board changed after cancelled drag")
	}
}

func TestDropOnUnknownColumnClearsHolder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.store.BeginDrag(*dune())
	moved, err := f.store.Drop(ctx, domain.ColumnID("trash"))
	if err != nil || moved {
		t.Fatalf("Drop() = %v, %v", moved, err)
	}
	if _, ok := f.store.Dragging(); ok {
		t.Error("holder not cleared")
	}
	if f.store.Contains(*dune()) {
		t.Error("book filed by a drop on an unknown column")
	}
}
