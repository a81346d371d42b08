package service

import (
	"fmt"
	"log"

	"roombooking/internal/schedule"
)

// BookingStatusStore is the pair of batched conditional updates the
// reconciler drives. Both return the ids they touched so an unchanged clock
// produces an empty result rather than repeated writes.
type BookingStatusStore interface {
	MarkOverdue(day, now string) ([]int, error)
	ReactivateOverdue(day, now string) ([]int, error)
}

// overdueNotifier alerts the front desk about newly overdue bookings.
type overdueNotifier interface {
	OverdueAlert(day string, ids []int)
}

// ReconcilerService keeps persisted booking statuses in step with the clock.
// It runs on a cron schedule and is safe to run at any frequency: the work is
// expressed as conditional updates, so a pass that finds nothing out of step
// writes nothing. Its writes raise row-change notifications like any other
// write, which is how connected clients learn about status flips.
type ReconcilerService struct {
	store  BookingStatusStore
	clock  schedule.Clock
	notify overdueNotifier
}

func NewReconcilerService(store BookingStatusStore, clock schedule.Clock, notify overdueNotifier) *ReconcilerService {
	return &ReconcilerService{store: store, clock: clock, notify: notify}
}

// Reconcile performs one pass: active bookings past their end flip to
// overdue, overdue bookings whose end moved ahead of the clock (extension or
// clock adjustment) flip back to active. The comparison time comes from the
// injected clock, never the database's, so the simulated clock drives status
// changes the same way the wall clock does.
func (s *ReconcilerService) Reconcile() error {
	now := s.clock.Now()
	day := now.Format("2006-01-02")
	clockTime := now.Format("15:04:05")

	overdue, err := s.store.MarkOverdue(day, clockTime)
	if err != nil {
		return fmt.Errorf("error marking overdue bookings: %w", err)
	}
	if len(overdue) > 0 {
		log.Printf("reconciler: marked %d booking(s) overdue on %s: %v", len(overdue), day, overdue)
		if s.notify != nil {
			s.notify.OverdueAlert(day, overdue)
		}
	}

	reactivated, err := s.store.ReactivateOverdue(day, clockTime)
	if err != nil {
		return fmt.Errorf("error reactivating overdue bookings: %w", err)
	}
	if len(reactivated) > 0 {
		log.Printf("reconciler: reactivated %d booking(s) on %s: %v", len(reactivated), day, reactivated)
	}
	return nil
}

// Run is the cron entrypoint; errors are logged and retried on the next tick.
func (s *ReconcilerService) Run() {
	if err := s.Reconcile(); err != nil {
		log.Printf("reconciler: %v", err)
	}
}
