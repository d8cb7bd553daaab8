package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(client)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if _, ok, err := s.Get(ctx, "columns"); ok || err != nil {
		t.Fatalf("Get(absent) = %v, %v; want false, nil", ok, err)
	}

	if err := s.Set(ctx, "columns", []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := mr.Get("shelf:kv:columns")
	if err != nil {
		t.Fatalf("value not stored under the namespaced key: %v", err)
	}
	if raw != "[]" {
		t.Errorf("stored value = %q, want []", raw)
	}
	if ttl := mr.TTL("shelf:kv:columns"); ttl != 0 {
		t.Errorf("stored value has TTL %v, want none", ttl)
	}

	got, ok, err := s.Get(ctx, "columns")
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	if err := s.Remove(ctx, "columns"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if mr.Exists("shelf:kv:columns") {
		t.Error("key still exists after Remove()")
	}
}

func TestStoreNames(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	_ = s.Set(ctx, "customBooks", []byte(`[]`))
	_ = s.Set(ctx, "bookFeedback", []byte(`{}`))
	_ = mr.Set("other:key", "ignored")

	names, err := s.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	want := []string{"bookFeedback", "customBooks"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestStorePingFailsWhenServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	s := NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	defer func() { _ = s.Close() }()
	mr.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail once the server is gone")
	}
}

func TestKeyName(t *testing.T) {
	if got := Key("columns"); got != "shelf:kv:columns" {
		t.Errorf("Key() = %q", got)
	}
	if name, ok := Name("shelf:kv:columns"); !ok || name != "columns" {
		t.Errorf("Name() = %q, %v", name, ok)
	}
	for _, bad := range []string{"shelf:kv:", "other:service:x", ""} {
		if _, ok := Name(bad); ok {
			t.Errorf("Name(%q) should not be ok", bad)
		}
	}
}
