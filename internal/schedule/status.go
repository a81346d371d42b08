package schedule

import "time"

// Status is a booking's persisted lifecycle state.
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusActive    Status = "active"
	StatusOverdue   Status = "overdue"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a state a client may submit.
func (s Status) Valid() bool {
	switch s {
	case StatusReserved, StatusActive, StatusOverdue, StatusEnded, StatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether a booking in this state blocks its slots.
// Ended and cancelled bookings no longer prevent new bookings from being
// offered, although ended ones stay visible on the grid.
func (s Status) Occupies() bool {
	return s == StatusReserved || s == StatusActive || s == StatusOverdue
}

// Booking is the engine's view of a persisted booking row: just enough to
// place it on the grid and reason about conflicts.
type Booking struct {
	ID     int
	RoomID int
	Start  TimeOfDay
	End    TimeOfDay
	Status Status
}

// Late reports the soft presentational condition for a reserved booking whose
// party has not shown up: more than the grace period past the start, and only
// while the clock is on the booking's own day. Browsing past or future days
// never flags anything. It is never persisted.
func Late(b Booking, day time.Time, now time.Time) bool {
	if b.Status != StatusReserved {
		return false
	}
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}
	start := b.Start.At(day)
	return now.After(start.Add(LateGraceMinutes * time.Minute))
}

// ClampEnd bounds the recorded end of a booking being ended now: a booking
// cannot end after its scheduled end, and ending early truncates it. The
// current time is snapped to the nearest slot boundary first.
func ClampEnd(scheduledEnd, now TimeOfDay) TimeOfDay {
	rounded := now.RoundNearest()
	if rounded > scheduledEnd {
		return scheduledEnd
	}
	return rounded
}
