package worker

import (
	"context"
	"log/slog"
	"time"
)

type Sweeper interface {
	Sweep(ttl time.Duration) int
}

// PageSweeper drops new bill forms that have been idle longer than ttl.
type PageSweeper struct {
	pages    Sweeper
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger
}

func NewPageSweeper(pages Sweeper, interval, ttl time.Duration, logger *slog.Logger) *PageSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PageSweeper{
		pages:    pages,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

func (w *PageSweeper) Start(ctx context.Context) {
	w.logger.Info("starting page sweeper", "interval", w.interval, "ttl", w.ttl)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("page sweeper stopped")
			return
		case <-ticker.C:
			if n := w.pages.Sweep(w.ttl); n > 0 {
				w.logger.Info("expired new bill pages dropped", "count", n)
			}
		}
	}
}
