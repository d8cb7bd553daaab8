package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/store"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "shelf.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, path
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	defer func() { _ = s.Close() }()

	if _, ok, err := s.Get(ctx, "columns"); ok || err != nil {
		t.Fatalf("Get(absent) = %v, %v", ok, err)
	}

	if err := s.Set(ctx, "columns", []byte(`[1]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "columns", []byte(`[2]`)); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, ok, err := s.Get(ctx, "columns")
	if err != nil || !ok || string(got) != "[2]" {
		t.Fatalf("Get() = %q, %v, %v; want [2]", got, ok, err)
	}

	if err := s.Remove(ctx, "columns"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "columns"); ok {
		t.Error("value still present after Remove()")
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	if err := store.SetJSON(ctx, s, "bookFeedback", map[string]int{"b1": 4}); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	var got map[string]int
	ok, err := store.GetJSON(ctx, reopened, "bookFeedback", &got)
	if err != nil || !ok || got["b1"] != 4 {
		t.Errorf("GetJSON() after reopen = %v, %v, %v", got, ok, err)
	}
}

func TestOpenIsExclusive(t *testing.T) {
	s, path := openTemp(t)
	defer func() { _ = s.Close() }()

	_, err := Open(context.Background(), path)
	if !errors.Is(err, store.ErrLocked) {
		t.Fatalf("second Open() error = %v, want ErrLocked", err)
	}
}
