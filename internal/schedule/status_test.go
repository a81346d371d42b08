package schedule

import (
	"testing"
	"time"
)

func TestLate(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	b := Booking{ID: 1, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Status: StatusReserved}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", day.Add(8*time.Hour + 50*time.Minute), false},
		{"inside grace period", day.Add(9*time.Hour + 10*time.Minute), false},
		{"past grace period", day.Add(9*time.Hour + 11*time.Minute), true},
		{"browsing the day after", day.AddDate(0, 0, 1).Add(12 * time.Hour), false},
		{"browsing the day before", day.AddDate(0, 0, -1).Add(12 * time.Hour), false},
	}
	for _, tt := range tests {
		if got := Late(b, day, tt.now); got != tt.want {
			t.Errorf("%s: Late = %v, want %v", tt.name, got, tt.want)
		}
	}

	active := b
	active.Status = StatusActive
	if Late(active, day, day.Add(12*time.Hour)) {
		t.Error("only reserved bookings can be late")
	}
}

func TestClampEnd(t *testing.T) {
	scheduled := mustTime(t, "10:30")
	tests := []struct {
		now  string
		want string
	}{
		{"10:05", "10:00"},
		{"10:20", "10:30"},
		{"11:15", "10:30"},
	}
	for _, tt := range tests {
		now := mustTime(t, tt.now)
		if got := ClampEnd(scheduled, now); got != mustTime(t, tt.want) {
			t.Errorf("ClampEnd(%s) = %s, want %s", tt.now, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusReserved, StatusActive, StatusOverdue, StatusEnded, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("finished").Valid() {
		t.Error("unknown status must not validate")
	}
}

func TestStatusOccupies(t *testing.T) {
	occupying := []Status{StatusReserved, StatusActive, StatusOverdue}
	for _, s := range occupying {
		if !s.Occupies() {
			t.Errorf("%s should occupy its slots", s)
		}
	}
	for _, s := range []Status{StatusEnded, StatusCancelled} {
		if s.Occupies() {
			t.Errorf("%s should not occupy slots", s)
		}
	}
}
