package app

import (
	"context"
	"sync"
	"time"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
)

// Scheduler refreshes the market snapshot in the background so the
// overview command usually serves a warm cache.
type Scheduler struct {
	market   interfaces.MarketService
	interval time.Duration
	logger   *common.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler creates a scheduler refreshing at the given interval
func NewScheduler(market interfaces.MarketService, interval time.Duration, logger *common.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		market:   market,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the refresh loop. An immediate refresh warms the cache
// before the first user request.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx)
	s.logger.Info().Dur("interval", s.interval).Msg("market refresh scheduler started")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	start := time.Now()
	if err := s.market.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("scheduled market refresh failed")
		return
	}
	s.logger.Debug().Dur("elapsed", time.Since(start)).Msg("market snapshot refreshed")
}

// Stop cancels the loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.running = false
	s.logger.Info().Msg("market refresh scheduler stopped")
}
