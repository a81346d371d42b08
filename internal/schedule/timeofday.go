package schedule

import (
	"fmt"
	"time"
)

const (
	// SlotMinutes is the booking granularity. Every start time, end time and
	// duration in the system sits on a boundary of this many minutes.
	SlotMinutes = 30

	// MaxOfferedMinutes caps the duration/extension choices presented to the
	// caller. A shorter true ceiling always wins over this cap.
	MaxOfferedMinutes = 120

	// LateGraceMinutes is how far past its start a reserved booking may run
	// before it is surfaced as "late".
	LateGraceMinutes = 10

	minutesPerDay = 24 * 60
)

// TimeOfDay is a clock time expressed as minutes since midnight. Values above
// 24h are legal and denote times on the following calendar day (overnight
// closing windows).
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS" (seconds are discarded).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	m := int(t) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SQL renders the value the way Postgres time columns expect it.
func (t TimeOfDay) SQL() string {
	m := int(t) % minutesPerDay
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// Aligned reports whether the value sits on a slot boundary.
func (t TimeOfDay) Aligned() bool {
	return int(t)%SlotMinutes == 0
}

// At anchors the time of day onto the given calendar day. Values past
// midnight land on the next day.
func (t TimeOfDay) At(day time.Time) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(t) * time.Minute)
}

// MinutesOfDay extracts the time-of-day component of an instant.
func MinutesOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// RoundNearest snaps to the closest slot boundary.
func (t TimeOfDay) RoundNearest() TimeOfDay {
	return TimeOfDay(((int(t) + SlotMinutes/2) / SlotMinutes) * SlotMinutes)
}

// RoundUp snaps forward to the next slot boundary (identity when aligned).
func (t TimeOfDay) RoundUp() TimeOfDay {
	return TimeOfDay(((int(t) + SlotMinutes - 1) / SlotMinutes) * SlotMinutes)
}
