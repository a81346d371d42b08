package entities

import "roombooking/internal/schedule"

// GridCell is one (slot, room) position of the day grid. A booking appears at
// its anchor cell with RowSpan rows; cells it covers beyond the anchor are
// marked Merged and carry the booking id only.
type GridCell struct {
	BookingID int  `json:"booking_id,omitempty"`
	Anchor    bool `json:"anchor,omitempty"`
	RowSpan   int  `json:"row_span,omitempty"`
	Merged    bool `json:"merged,omitempty"`
}

type GridResponse struct {
	Day          string                `json:"day"`
	OpeningHours schedule.OpeningHours `json:"opening_hours"`
	Rooms        []RoomResponse        `json:"rooms"`
	Slots        []string              `json:"slots"`
	// Cells is indexed [slot][room], aligned with Slots and Rooms.
	Cells    [][]GridCell      `json:"cells"`
	Bookings []BookingResponse `json:"bookings"`
}
