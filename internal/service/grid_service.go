package service

import (
	"time"

	"roombooking/internal/db"
	"roombooking/internal/entities"
	"roombooking/internal/schedule"
)

// roomLister is the slice of RoomService the grid needs.
type roomLister interface {
	ListBookable() ([]db.Room, error)
}

// GridService assembles the day view: rooms as columns, slot times as rows,
// bookings placed at their anchor cells with the covered rows merged away.
type GridService struct {
	rooms    roomLister
	store    BookingStore
	settings hoursProvider
	clock    schedule.Clock
}

func NewGridService(rooms roomLister, store BookingStore, settings hoursProvider, clock schedule.Clock) *GridService {
	return &GridService{rooms: rooms, store: store, settings: settings, clock: clock}
}

func (s *GridService) BuildGrid(day string) (*entities.GridResponse, error) {
	dayT, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListBookable()
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListForDay(day)
	if err != nil {
		return nil, err
	}

	hours := s.settings.OpeningHours()
	slots := schedule.Slots(dayT, hours)
	bookings := engineBookings(rows)
	now := s.clock.Now()
	midnight := time.Date(dayT.Year(), dayT.Month(), dayT.Day(), 0, 0, 0, 0, dayT.Location())

	resp := &entities.GridResponse{
		Day:          day,
		OpeningHours: hours,
		Rooms:        make([]entities.RoomResponse, len(rooms)),
		Slots:        make([]string, len(slots)),
		Cells:        make([][]entities.GridCell, len(slots)),
		Bookings:     make([]entities.BookingResponse, 0, len(rows)),
	}
	for i, rm := range rooms {
		resp.Rooms[i] = RoomResponse(rm)
	}
	for i, slot := range slots {
		resp.Slots[i] = slot.Format("15:04")
		slotTod := schedule.TimeOfDay(slot.Sub(midnight) / time.Minute)
		row := make([]entities.GridCell, len(rooms))
		for j, rm := range rooms {
			cell := schedule.CellAt(bookings, rm.ID, slotTod)
			if cell.Booking == nil {
				continue
			}
			if cell.Anchor {
				row[j] = entities.GridCell{BookingID: cell.Booking.ID, Anchor: true, RowSpan: cell.RowSpan}
			} else {
				row[j] = entities.GridCell{BookingID: cell.Booking.ID, Merged: true}
			}
		}
		resp.Cells[i] = row
	}
	for _, b := range rows {
		resp.Bookings = append(resp.Bookings, bookingResponse(b, dayT, now))
	}
	return resp, nil
}
