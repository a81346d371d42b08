package service

import (
	"testing"
	"time"

	"roombooking/internal/schedule"
)

// memoryStatusStore reproduces the conditional-update semantics of the real
// store against an in-memory booking set.
type memoryStatusStore struct {
	bookings []memoryBooking
	writes   int
}

type memoryBooking struct {
	id     int
	day    string
	end    string // HH:MM:SS
	status string
}

func (s *memoryStatusStore) MarkOverdue(day, now string) ([]int, error) {
	var ids []int
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.status == "active" && b.day == day && b.end < now {
			b.status = "overdue"
			s.writes++
			ids = append(ids, b.id)
		}
	}
	return ids, nil
}

func (s *memoryStatusStore) ReactivateOverdue(day, now string) ([]int, error) {
	var ids []int
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.status == "overdue" && b.day == day && b.end > now {
			b.status = "active"
			s.writes++
			ids = append(ids, b.id)
		}
	}
	return ids, nil
}

type recordingNotifier struct {
	days []string
	ids  [][]int
}

func (n *recordingNotifier) OverdueAlert(day string, ids []int) {
	n.days = append(n.days, day)
	n.ids = append(n.ids, ids)
}

func reconcilerAt(store *memoryStatusStore, at time.Time) (*ReconcilerService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewReconcilerService(store, schedule.FixedClock{T: at}, notifier), notifier
}

func TestReconcile_MarksActivePastEndOverdue(t *testing.T) {
	store := &memoryStatusStore{bookings: []memoryBooking{
		{id: 1, day: "2026-03-12", end: "10:30:00", status: "active"},
		{id: 2, day: "2026-03-12", end: "12:00:00", status: "active"},
		{id: 3, day: "2026-03-11", end: "10:30:00", status: "active"},
	}}
	svc, notifier := reconcilerAt(store, time.Date(2026, 3, 12, 10, 31, 0, 0, time.UTC))

	if err := svc.Reconcile(); err != nil {
		t.Fatal(err)
	}
	if store.bookings[0].status != "overdue" {
		t.Errorf("booking 1 past its end should be overdue, got %s", store.bookings[0].status)
	}
	if store.bookings[1].status != "active" {
		t.Errorf("booking 2 still running should stay active, got %s", store.bookings[1].status)
	}
	if store.bookings[2].status != "active" {
		t.Errorf("booking 3 on another day must not be touched, got %s", store.bookings[2].status)
	}
	if len(notifier.ids) != 1 || len(notifier.ids[0]) != 1 || notifier.ids[0][0] != 1 {
		t.Errorf("notifier should be told about booking 1, got %v", notifier.ids)
	}
}

func TestReconcile_SecondPassWritesNothing(t *testing.T) {
	store := &memoryStatusStore{bookings: []memoryBooking{
		{id: 1, day: "2026-03-12", end: "10:30:00", status: "active"},
	}}
	at := time.Date(2026, 3, 12, 10, 31, 0, 0, time.UTC)
	svc, notifier := reconcilerAt(store, at)

	if err := svc.Reconcile(); err != nil {
		t.Fatal(err)
	}
	writesAfterFirst := store.writes

	if err := svc.Reconcile(); err != nil {
		t.Fatal(err)
	}
	if store.writes != writesAfterFirst {
		t.Errorf("a repeated pass with an unchanged clock wrote %d extra time(s)", store.writes-writesAfterFirst)
	}
	if len(notifier.ids) != 1 {
		t.Errorf("the notifier should fire once, got %d alerts", len(notifier.ids))
	}
}

func TestReconcile_ReactivatesExtendedBooking(t *testing.T) {
	store := &memoryStatusStore{bookings: []memoryBooking{
		{id: 1, day: "2026-03-12", end: "10:45:00", status: "overdue"},
	}}
	svc, _ := reconcilerAt(store, time.Date(2026, 3, 12, 10, 29, 0, 0, time.UTC))

	if err := svc.Reconcile(); err != nil {
		t.Fatal(err)
	}
	if store.bookings[0].status != "active" {
		t.Errorf("overdue booking with its end ahead of the clock should be active, got %s", store.bookings[0].status)
	}
}

func TestReconcile_FollowsSimulatedClockBackwards(t *testing.T) {
	store := &memoryStatusStore{bookings: []memoryBooking{
		{id: 1, day: "2026-03-12", end: "10:30:00", status: "active"},
	}}
	svc, _ := reconcilerAt(store, time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC))
	if err := svc.Reconcile(); err != nil {
		t.Fatal(err)
	}
	if store.bookings[0].status != "overdue" {
		t.Fatalf("expected overdue, got %s", store.bookings[0].status)
	}

	// The simulated clock can move backwards; the booking flips back.
	earlier, _ := reconcilerAt(store, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))
	if err := earlier.Reconcile(); err != nil {
		t.Fatal(err)
	}
	if store.bookings[0].status != "active" {
		t.Errorf("winding the clock back should reactivate the booking, got %s", store.bookings[0].status)
	}
}
