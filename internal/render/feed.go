package render

import (
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

const DefaultFeedSize = 50

// Feed keeps the most recent notifications, oldest first.
type Feed struct {
	mu    sync.Mutex
	items []domain.Notification
	size  int
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(n domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0:0], f.items[over:]...)
	}
}

// Recent returns up to limit notifications, newest last. limit <= 0 returns
// all of them.
func (f *Feed) Recent(limit int) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.items
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]domain.Notification, len(items))
	copy(out, items)
	return out
}
