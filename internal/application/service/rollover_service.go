package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

// RolloverState is the archiver's current phase.
type RolloverState int

const (
	// StateCurrentDay means the marker matches today; checks no-op.
	StateCurrentDay RolloverState = iota
	// StateTransitioning means an archive-and-purge is in progress.
	StateTransitioning
)

// RolloverService archives and purges history on calendar-day
// boundaries. A check runs at startup and on a recurring timer; it is
// idempotent per calendar date.
type RolloverService struct {
	store    repository.Store
	sink     repository.ArchiveSink
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	state RolloverState
}

// NewRolloverService creates the archiver. The check interval must be
// an hour or less; anything longer is capped.
func NewRolloverService(store repository.Store, sink repository.ArchiveSink, interval time.Duration) *RolloverService {
	if interval <= 0 || interval > time.Hour {
		interval = time.Hour
	}
	return &RolloverService{
		store:    store,
		sink:     sink,
		interval: interval,
		now:      time.Now,
	}
}

// State returns the current phase.
func (s *RolloverService) State() RolloverState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start runs a check immediately, then once per interval until the
// context ends. The timer retries every tick regardless of prior
// failures.
func (s *RolloverService) Start(ctx context.Context) {
	s.Check()
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Check()
			}
		}
	}()
}

// Check performs one rollover check. When the persisted marker is
// stale or absent it archives the current history (best-effort),
// purges it and writes today's date. A marker equal to today is a
// no-op, so re-running on the same date does nothing.
func (s *RolloverService) Check() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format(dateLayout)
	if s.store.GetMarker(repository.KeyLastAutoClear) == today {
		s.state = StateCurrentDay
		return
	}

	s.state = StateTransitioning
	bills := s.store.LoadBills()
	if len(bills) > 0 {
		// Export failure must never trap the user in a growing,
		// unarchived history across days, so it does not block the
		// marker update.
		filename := fmt.Sprintf("billing_history_%s.xlsx", bills[0].Date.Format(dateLayout))
		if err := s.sink.Export(ArchiveRows(bills), filename); err != nil {
			log.Printf("Day-rollover archive export failed, purging anyway: %v", err)
		}
		if err := s.store.ClearHistory(); err != nil {
			log.Printf("Day-rollover purge failed: %v", err)
			s.state = StateCurrentDay
			return
		}
	}
	if err := s.store.SetMarker(repository.KeyLastAutoClear, today); err != nil {
		log.Printf("Day-rollover marker update failed: %v", err)
	}
	s.state = StateCurrentDay
}
