package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/store"
	"github.com/MrSnakeDoc/shelf/internal/store/memory"
)

func TestGetDefaultsToZero(t *testing.T) {
	s := New(memory.New(), logger.NewNop())

	fb, err := s.Get(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fb != (domain.Feedback{}) {
		t.Errorf("Get() = %+v, want zero feedback", fb)
	}
}

func TestSetGetClear(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := New(kv, logger.NewNop())

	if err := s.Set(ctx, "b1", 4, "  great read "); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	fb, _ := s.Get(ctx, "b1")
	if fb.Rating != 4 || fb.Comments != "great read" {
		t.Errorf("Get() = %+v", fb)
	}

	// Stored shape is {id: {rating, comments}}.
	var raw map[string]domain.Feedback
	if ok, err := store.GetJSON(ctx, kv, store.KeyFeedback, &raw); !ok || err != nil {
		t.Fatalf("stored feedback missing: %v, %v", ok, err)
	}
	if raw["b1"].Rating != 4 {
		t.Errorf("stored = %+v", raw)
	}

	if err := s.Clear(ctx, "b1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if fb, _ := s.Get(ctx, "b1"); !fb.IsZero() {
		t.Errorf("Get() after Clear() = %+v", fb)
	}
}

func TestClearUnknownDoesNotWrite(t *testing.T) {
	kv := memory.New()
	s := New(kv, logger.NewNop())

	if err := s.Clear(context.Background(), "nope"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if kv.Writes() != 0 {
		t.Errorf("Clear() of unknown id wrote %d times", kv.Writes())
	}
}

func TestSetRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		rating int
	}{
		{"negative", "b1", -1},
		{"above max", "b1", domain.MaxRating + 1},
		{"empty id", " ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(memory.New(), logger.NewNop())
			err := s.Set(context.Background(), tt.id, tt.rating, "")
			if !errors.Is(err, domain.ErrInvalid) {
				t.Errorf("Set() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestMalformedFeedbackReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, store.KeyFeedback, []byte(`{"b1":`))
	s := New(kv, logger.NewNop())

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("All() = %v, want empty", all)
	}

	if err := s.Set(ctx, "b2", 5, ""); err != nil {
		t.Fatalf("Set() over malformed value error = %v", err)
	}
	if fb, _ := s.Get(ctx, "b2"); fb.Rating != 5 {
		t.Errorf("Get() = %+v", fb)
	}
}

func TestRetain(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), logger.NewNop())
	_ = s.Set(ctx, "keep", 3, "")
	_ = s.Set(ctx, "drop1", 1, "")
	_ = s.Set(ctx, "drop2", 0, "meh")

	removed, err := s.Retain(ctx, func(id string) bool { return id == "keep" })
	if err != nil {
		t.Fatalf("Retain() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Retain() removed %d, want 2", removed)
	}

	all, _ := s.All(ctx)
	if len(all) != 1 || all["keep"].Rating != 3 {
		t.Errorf("All() after Retain() = %v", all)
	}
}
