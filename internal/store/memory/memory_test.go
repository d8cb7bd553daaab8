package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/store"
)

func TestStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v; want v1", got, ok, err)
	}

	// Returned slices are copies.
	got[0] = 'X'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "v1" {
		t.Errorf("Get() exposed internal storage, value now %q", again)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("key still present after Remove()")
	}
	if s.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", s.Writes())
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := New()

	type payload struct {
		Name string `json:"name"`
	}

	if err := store.SetJSON(ctx, s, "p", payload{Name: "shelf"}); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}
	var p payload
	ok, err := store.GetJSON(ctx, s, "p", &p)
	if err != nil || !ok || p.Name != "shelf" {
		t.Fatalf("GetJSON() = %+v, %v, %v", p, ok, err)
	}

	ok, err = store.GetJSON(ctx, s, "absent", &p)
	if ok || err != nil {
		t.Errorf("GetJSON(absent) = %v, %v; want false, nil", ok, err)
	}

	_ = s.Set(ctx, "bad", []byte("{not json"))
	_, err = store.GetJSON(ctx, s, "bad", &p)
	if !errors.Is(err, store.ErrMalformed) {
		t.Errorf("GetJSON(bad) error = %v, want ErrMalformed", err)
	}
}
