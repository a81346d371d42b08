package schedule

// Cell describes what occupies one (room, slot) grid position. A booking is
// rendered only at its anchor cell, spanning RowSpan rows; interior cells
// report the covering booking but are merged away (Anchor false) so they are
// never offered as booking targets.
type Cell struct {
	Booking *Booking
	Anchor  bool
	RowSpan int
}

// Free reports whether the position can be offered for a new booking. A cell
// covered by an ended booking still renders it but is free again, which is
// what the store's exclusion constraint accepts.
func (c Cell) Free() bool { return c.Booking == nil || !c.Booking.Status.Occupies() }

// RowSpan is the number of grid rows a booking covers, floored to at least
// one row.
func RowSpan(b Booking) int {
	span := (int(b.End-b.Start) + SlotMinutes/2) / SlotMinutes
	if span < 1 {
		span = 1
	}
	return span
}

// CellAt maps a (room, slot) position onto the bookings for the day. Ended
// bookings are reported so the grid keeps showing them; only cancelled ones
// disappear. Overlaps are prevented upstream by the store's exclusion
// constraint; should one slip through, the first booking in persisted order
// wins deterministically.
func CellAt(bookings []Booking, roomID int, slot TimeOfDay) Cell {
	for i := range bookings {
		b := &bookings[i]
		if b.RoomID != roomID || b.Status == StatusCancelled {
			continue
		}
		if slot >= b.Start && slot < b.End {
			return Cell{
				Booking: b,
				Anchor:  slot == b.Start,
				RowSpan: RowSpan(*b),
			}
		}
	}
	return Cell{}
}
