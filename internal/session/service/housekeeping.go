package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
)

// HousekeepingService periodically cancels pending invites past their expiry
// so sessions don't show long-dead invites. Cancelled rows keep their codes;
// code lookups rely on terminal rows to report accepted/revoked outcomes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 15 minutes.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep cancels every pending invite past its expiry and resets the owning
// session's projection. Invites are processed independently - a failure on
// one won't stop the others.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	expired, err := s.Store.Invites().ListExpiredPendingInvites(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to list expired invites", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	var cancelled int
	for _, inv := range expired {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Invites().MarkInviteStatus(ctx, inv.ID, domain.InviteCancelled); err != nil {
				return err
			}
			if inv.Open() {
				return nil
			}
			return tx.Sessions().UpdateAssignedSitterStatus(ctx, inv.SessionID, domain.AssignedCancelled, "")
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Raced with an accept or decline between list and sweep.
		case err != nil:
			s.Logger.Error("failed to expire invite", "invite_id", inv.ID, "error", err)
		default:
			cancelled++
		}
	}

	s.Logger.Info("housekeeping sweep completed", "expired", len(expired), "cancelled", cancelled)
}
