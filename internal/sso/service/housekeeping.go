package service

import (
	"context"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/aussiebroadwan/sso/internal/sso/store"
)

// HousekeepingService periodically purges token rows whose refresh token has
// expired. Endpoints never rely on it: a stale row is rejected on use whether
// or not it has been purged yet.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Clock    clock.WithTicker

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour and a
// nil clock to the real one.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration, clk clock.WithTicker) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Clock:    clk,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one cleanup immediately and then one per interval, in the background.
func (s *HousekeepingService) Start() {
	ticker := s.Clock.NewTicker(s.Interval)
	go s.run(ticker)
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run(ticker clock.Ticker) {
	defer close(s.doneCh)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C():
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired token rows once and returns how many went.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Store.Tokens().DeleteExpiredTokens(ctx, s.Clock.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired tokens", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "tokens_deleted", n)
	return n
}
