package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

func fastOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		ConnectTimeout: 400 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		DialTimeout:    50 * time.Millisecond,
		WarnThreshold:  2,
	}
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), fastOptions(mr.Addr()), logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Errorf("client unusable: %v", err)
	}
}

func TestNewGivesUpAfterTimeout(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err = New(context.Background(), fastOptions(addr), logger.NewNop())
	if err == nil {
		t.Fatal("New() should fail when nothing listens")
	}
	if !strings.Contains(err.Error(), "redis unavailable") {
		t.Errorf("error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("New() took %v, want about ConnectTimeout", elapsed)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := fastOptions("localhost:6379")
	opts.RetryInterval = 0
	if _, err := New(context.Background(), opts, logger.NewNop()); err == nil {
		t.Error("New() should reject a zero RetryInterval")
	}
}
