package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// FeedbackRetainer drops feedback entries rejected by keep.
type FeedbackRetainer interface {
	Retain(ctx context.Context, keep func(id string) bool) (int, error)
}

// Filed reports whether a book is on the board. IsFiled is called while the
// feedback store is locked, so it must not wait on board changes.
type Filed interface {
	IsFiled(id string) bool
}

// CustomBooks finds the user's own books.
type CustomBooks interface {
	CustomBook(ctx context.Context, id string) (domain.Book, bool, error)
}

// FeedbackSweeper removes feedback left behind for books that are neither on
// the board nor among the user's own books.
type FeedbackSweeper struct {
	feedback FeedbackRetainer
	filed    Filed
	custom   CustomBooks
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewFeedbackSweeper(
	feedback FeedbackRetainer,
	filed Filed,
	custom CustomBooks,
	log logger.Logger,
	interval time.Duration,
) *FeedbackSweeper {
	return &FeedbackSweeper{
		feedback: feedback,
		filed:    filed,
		custom:   custom,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start sweeps once, then every interval. interval <= 0 sweeps only once.
func (fs *FeedbackSweeper) Start(ctx context.Context) {
	if _, err := fs.Sweep(ctx); err != nil {
		fs.logger.Warn("initial feedback sweep failed", logger.Error(err))
	}
	if fs.interval <= 0 {
		return
	}

	ticker := time.NewTicker(fs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := fs.Sweep(ctx); err != nil {
					fs.logger.Error("feedback sweep failed", logger.Error(err))
				}
			case <-fs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (fs *FeedbackSweeper) Stop() {
	close(fs.stopCh)
}

// Sweep removes orphaned feedback and returns how many entries went away.
// Membership is checked per entry while the feedback store is locked, so a
// book filed before its feedback was written is always kept.
func (fs *FeedbackSweeper) Sweep(ctx context.Context) (int, error) {
	removed, err := fs.feedback.Retain(ctx, func(id string) bool {
		if fs.filed.IsFiled(id) {
			return true
		}
		_, custom, err := fs.custom.CustomBook(ctx, id)
		if err != nil {
			fs.logger.Warn("keeping feedback, custom books unreadable",
				logger.BookID(id), logger.Error(err))
			return true
		}
		return custom
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep feedback: %w", err)
	}

	if removed > 0 {
		fs.logger.Info("orphaned feedback removed", logger.Int("removed", removed))
	} else {
		fs.logger.Debug("no orphaned feedback")
	}
	return removed, nil
}
