package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Snapshot is a point-in-time computation of the cooperative dashboard figures
type Snapshot struct {
	ID         string                   `json:"id"`
	Totals     domain.CooperativeTotals `json:"totals"`
	Portfolio  domain.PortfolioStats    `json:"portfolio"`
	ComputedAt time.Time                `json:"computed_at"`
}

// SnapshotService recomputes dashboard figures on a cron schedule and notifies subscribers
type SnapshotService struct {
	source   SnapshotSource
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger

	// refreshMu serializes refreshes so an older computation never replaces a newer one
	refreshMu sync.Mutex

	mu          sync.RWMutex
	latest      *Snapshot
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(source SnapshotSource, schedule string, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{
		source:      source,
		schedule:    schedule,
		cron:        cron.New(),
		log:         log.With().Str("component", "snapshot").Logger(),
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Start registers the refresh job, computes the first snapshot and starts the scheduler
func (s *SnapshotService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Refresh(context.Background()); err != nil {
			s.log.Error().Err(err).Msg("scheduled snapshot refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.schedule, err)
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("initial snapshot refresh failed")
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("snapshot scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish
func (s *SnapshotService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("snapshot scheduler stopped")
}

// Refresh recomputes the snapshot, stores it and notifies subscribers
func (s *SnapshotService) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	totals, err := s.source.CooperativeTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	portfolio, err := s.source.LoanPortfolio(ctx, domain.LoanFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute portfolio: %w", err)
	}

	snap := Snapshot{
		ID:         uuid.NewString(),
		Totals:     totals,
		Portfolio:  portfolio.Stats,
		ComputedAt: time.Now(),
	}

	s.mu.Lock()
	s.latest = &snap
	subscribers := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}

	s.log.Debug().
		Str("snapshot_id", snap.ID).
		Int("members", totals.MemberCount).
		Int("active_loans", totals.TotalActiveLoan).
		Msg("snapshot refreshed")
	return &snap, nil
}

// Latest returns the most recent snapshot, if any
func (s *SnapshotService) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

// Subscribe registers fn to receive every new snapshot. The returned func removes it.
func (s *SnapshotService) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
