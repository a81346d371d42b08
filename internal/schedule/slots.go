package schedule

import "time"

// OpeningHours is the facility-wide operating window, stored under the
// settings key "operation_hours".
type OpeningHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultOpeningHours is used when the settings store is unreachable or the
// stored value does not parse.
var DefaultOpeningHours = OpeningHours{Start: "06:00", End: "21:00"}

// Window resolves the operating window for a calendar day. Malformed hour
// strings fall back to the default field by field. If the closing time is not
// after the opening time, closing rolls over to the following day, which
// supports overnight operating windows. Equal open/close therefore yields a
// full 24h window rather than an empty one; see DESIGN.md.
func (h OpeningHours) Window(day time.Time) (time.Time, time.Time) {
	start, err := ParseTimeOfDay(h.Start)
	if err != nil {
		start, _ = ParseTimeOfDay(DefaultOpeningHours.Start)
	}
	end, err := ParseTimeOfDay(h.End)
	if err != nil {
		end, _ = ParseTimeOfDay(DefaultOpeningHours.End)
	}
	if end <= start {
		end += minutesPerDay
	}
	return start.At(day), end.At(day)
}

// ClosingLimit is the closing instant expressed as minutes since the day's
// midnight. It exceeds 24h when the window rolls past midnight, making it
// directly comparable with booking TimeOfDay values.
func (h OpeningHours) ClosingLimit(day time.Time) TimeOfDay {
	_, end := h.Window(day)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return TimeOfDay(end.Sub(midnight) / time.Minute)
}

// Slots derives the ordered sequence of bookable slot starts for a day:
// every SlotMinutes step from opening up to but not including closing.
func Slots(day time.Time, hours OpeningHours) []time.Time {
	start, end := hours.Window(day)
	var slots []time.Time
	for cur := start; cur.Before(end); cur = cur.Add(SlotMinutes * time.Minute) {
		slots = append(slots, cur)
	}
	return slots
}
