package schedule

import "sort"

// bookableLimit bounds an availability ceiling at midnight: an overnight
// operating window keeps its late slots on the grid, but a single booking
// never crosses into the next day, so nothing past 24:00 is offered.
func bookableLimit(closeLimit TimeOfDay) TimeOfDay {
	if closeLimit > minutesPerDay {
		return minutesPerDay
	}
	return closeLimit
}

// DurationOptions computes the duration choices, in minutes, for a booking in
// one room starting at start. bookings is the room's booking set for the day;
// excludeID skips the booking being edited (0 for a new booking); current is
// the duration already held by an edited booking, in minutes (0 for none).
// Only bookings still occupying their slots constrain the result; ended and
// cancelled ones do not, matching the store's exclusion constraint.
//
// The ceiling is the start of the nearest other booking after start, or the
// day's closing limit when none exists. A start that falls inside another
// booking yields no options. Choices run in SlotMinutes increments up to the
// presentation cap, but a still-valid current duration is kept even when it
// exceeds the cap so editing never discards a previously legal value.
func DurationOptions(bookings []Booking, start TimeOfDay, closeLimit TimeOfDay, excludeID, current int) []int {
	limit := bookableLimit(closeLimit)
	for _, b := range bookings {
		if b.ID == excludeID || !b.Status.Occupies() {
			continue
		}
		if b.Start > start {
			if b.Start < limit {
				limit = b.Start
			}
		} else if b.Start <= start && b.End > start {
			// Starting inside an existing booking: nothing is available.
			return nil
		}
	}

	max := int(limit - start)
	var options []int
	for d := SlotMinutes; d <= max && d <= MaxOfferedMinutes; d += SlotMinutes {
		options = append(options, d)
	}

	if current > 0 && current <= max {
		found := false
		for _, d := range options {
			if d == current {
				found = true
				break
			}
		}
		if !found {
			options = append(options, current)
			sort.Ints(options)
		}
	}
	return options
}

// ExtensionOptions computes how far an active or overdue booking may be pushed
// forward, in minutes: the gap between its current end and the start of the
// nearest later booking (or the closing limit), in SlotMinutes increments
// capped at the presentation maximum.
func ExtensionOptions(bookings []Booking, start TimeOfDay, currentDuration int, closeLimit TimeOfDay, excludeID int) []int {
	end := start + TimeOfDay(currentDuration)
	limit := bookableLimit(closeLimit)
	for _, b := range bookings {
		if b.ID == excludeID || !b.Status.Occupies() {
			continue
		}
		if b.Start >= end && b.Start < limit {
			limit = b.Start
		}
	}

	max := int(limit - end)
	var options []int
	for d := SlotMinutes; d <= max && d <= MaxOfferedMinutes; d += SlotMinutes {
		options = append(options, d)
	}
	return options
}
