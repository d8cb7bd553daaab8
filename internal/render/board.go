// Package render keeps what the presentation layer shows: the latest board
// and the recent notifications.
package render

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// View is a rendered board.
type View struct {
	Revision   uint64          `json:"revision"`
	RenderedAt time.Time       `json:"renderedAt"`
	Columns    []domain.Column `json:"columns"`
}

// Board caches the last board handed to Render. Each render bumps the
// revision so clients can tell whether their copy is stale.
type Board struct {
	mu   sync.RWMutex
	view View
	now  func() time.Time
}

func NewBoard() *Board {
	return &Board{now: time.Now, view: View{Columns: domain.DefaultLayout()}}
}

func (b *Board) Render(cols []domain.Column) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view = View{
		Revision:   b.view.Revision + 1,
		RenderedAt: b.now(),
		Columns:    cols,
	}
}

// View returns a copy of the current view.
func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v := b.view
	v.Columns = make([]domain.Column, len(b.view.Columns))
	for i, c := range b.view.Columns {
		v.Columns[i] = c.Clone()
	}
	return v
}

// Revision returns the current revision.
func (b *Board) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view.Revision
}
