package schedule

import "testing"

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func TestCellAt_AnchorAndMerge(t *testing.T) {
	bookings := []Booking{
		{ID: 1, RoomID: 2, Start: mustTime(t, "09:00"), End: mustTime(t, "10:30"), Status: StatusActive},
	}

	anchor := CellAt(bookings, 2, mustTime(t, "09:00"))
	if anchor.Booking == nil || anchor.Booking.ID != 1 {
		t.Fatal("expected booking at 09:00 anchor cell")
	}
	if !anchor.Anchor {
		t.Error("09:00 cell should be the anchor")
	}
	if anchor.RowSpan != 3 {
		t.Errorf("RowSpan = %d, want 3", anchor.RowSpan)
	}

	for _, s := range []string{"09:30", "10:00"} {
		cell := CellAt(bookings, 2, mustTime(t, s))
		if cell.Booking == nil {
			t.Fatalf("%s should report the covering booking", s)
		}
		if cell.Anchor {
			t.Errorf("%s must be merged into the anchor, not an anchor itself", s)
		}
		if cell.Free() {
			t.Errorf("%s must not be offered as a booking target", s)
		}
	}

	after := CellAt(bookings, 2, mustTime(t, "10:30"))
	if !after.Free() {
		t.Error("10:30 is past the booking end and should be free")
	}
	otherRoom := CellAt(bookings, 3, mustTime(t, "09:00"))
	if !otherRoom.Free() {
		t.Error("another room's cell should be free")
	}
}

func TestCellAt_EndedRendersButIsFree(t *testing.T) {
	bookings := []Booking{
		{ID: 4, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Status: StatusEnded},
	}
	cell := CellAt(bookings, 1, mustTime(t, "09:00"))
	if cell.Booking == nil || cell.Booking.ID != 4 {
		t.Fatal("an ended booking should still show on its cells")
	}
	if !cell.Free() {
		t.Error("an ended booking must not block the cell for a new booking")
	}
}

func TestCellAt_CancelledInvisible(t *testing.T) {
	bookings := []Booking{
		{ID: 7, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "09:30"), Status: StatusCancelled},
	}
	if cell := CellAt(bookings, 1, mustTime(t, "09:00")); !cell.Free() {
		t.Error("cancelled bookings must not occupy cells")
	}
}

func TestCellAt_FirstMatchWins(t *testing.T) {
	// Overlap is prevented upstream; if it happens anyway, persisted order decides.
	bookings := []Booking{
		{ID: 1, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Status: StatusActive},
		{ID: 2, RoomID: 1, Start: mustTime(t, "09:30"), End: mustTime(t, "10:30"), Status: StatusActive},
	}
	cell := CellAt(bookings, 1, mustTime(t, "09:30"))
	if cell.Booking == nil || cell.Booking.ID != 1 {
		t.Fatalf("expected first booking by persisted order, got %+v", cell.Booking)
	}
}

func TestRowSpan_MinimumOneRow(t *testing.T) {
	b := Booking{Start: mustTime(t, "09:00"), End: mustTime(t, "09:00")}
	if got := RowSpan(b); got != 1 {
		t.Errorf("RowSpan of zero-length booking = %d, want 1", got)
	}
}
