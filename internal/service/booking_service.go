package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"roombooking/internal/db"
	"roombooking/internal/entities"
	apperrors "roombooking/internal/errors"
	"roombooking/internal/schedule"
)

// BookingStore is the persistence surface the booking service needs.
// *repository.BookingRepository implements it; tests substitute a stub.
type BookingStore interface {
	ListForDay(day string) ([]db.Booking, error)
	ListForRoomDay(roomID int, day string) ([]db.Booking, error)
	GetByID(id int) (*db.Booking, error)
	Create(b *db.Booking) error
	Update(b *db.Booking) error
	SetStatus(id int, status string) error
	SetEnd(id int, endTime, status string) error
	Delete(id int) error
}

// hoursProvider is the slice of SettingsService the booking service needs.
type hoursProvider interface {
	OpeningHours() schedule.OpeningHours
}

type BookingService struct {
	store    BookingStore
	settings hoursProvider
	clock    schedule.Clock
}

func NewBookingService(store BookingStore, settings hoursProvider, clock schedule.Clock) *BookingService {
	return &BookingService{store: store, settings: settings, clock: clock}
}

// ListForDay returns the day's non-cancelled bookings, across all rooms or
// for one room, with the soft late flag resolved against the current clock.
func (s *BookingService) ListForDay(day string, roomID int) ([]entities.BookingResponse, error) {
	dayT, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	var bookings []db.Booking
	if roomID > 0 {
		bookings, err = s.store.ListForRoomDay(roomID, day)
	} else {
		bookings, err = s.store.ListForDay(day)
	}
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingResponse(b, dayT, now))
	}
	return out, nil
}

func (s *BookingService) Get(id int) (*entities.BookingResponse, error) {
	b, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	dayT, err := parseDay(b.BookingDay)
	if err != nil {
		return nil, err
	}
	resp := bookingResponse(*b, dayT, s.clock.Now())
	return &resp, nil
}

// Create validates and stores a new booking. Overlap protection is the
// store's exclusion constraint; a violation surfaces as a conflict error.
func (s *BookingService) Create(req entities.BookingRequest) (*entities.BookingResponse, error) {
	row, dayT, err := s.buildRow(req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(row); err != nil {
		return nil, storeError(err)
	}
	resp := bookingResponse(*row, dayT, s.clock.Now())
	return &resp, nil
}

// Update fully replaces a booking's schedulable fields. The status of the
// existing row is preserved unless the request names a new one.
func (s *BookingService) Update(id int, req entities.BookingRequest) (*entities.BookingResponse, error) {
	existing, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	row, dayT, err := s.buildRow(req, id)
	if err != nil {
		return nil, err
	}
	row.CreatedAt = existing.CreatedAt
	if err := s.store.Update(row); err != nil {
		return nil, storeError(err)
	}
	resp := bookingResponse(*row, dayT, s.clock.Now())
	return &resp, nil
}

func (s *BookingService) Delete(id int) error {
	return s.store.Delete(id)
}

// Start flips a reserved booking to active when the party arrives.
func (s *BookingService) Start(id int) error {
	b, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if b.Status != string(schedule.StatusReserved) {
		return apperrors.Conflict("Only a reserved booking can be started.")
	}
	return s.store.SetStatus(id, string(schedule.StatusActive))
}

// End finishes an active or overdue booking now. The recorded end is the
// current time snapped to the nearest slot boundary, never later than the
// scheduled end and never earlier than one slot after the start.
func (s *BookingService) End(id int) error {
	b, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if b.Status != string(schedule.StatusActive) && b.Status != string(schedule.StatusOverdue) {
		return apperrors.Conflict("Only an active or overdue booking can be ended.")
	}
	start, end, err := bookingTimes(*b)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	newEnd := end
	if b.BookingDay == now.Format("2006-01-02") {
		newEnd = schedule.ClampEnd(end, schedule.MinutesOfDay(now))
	}
	if newEnd <= start {
		newEnd = start + schedule.SlotMinutes
	}
	return s.store.SetEnd(id, newEnd.SQL(), string(schedule.StatusEnded))
}

// Extend pushes a booking's end forward by the requested minutes, provided
// that extension is still on offer. An end ahead of the clock flips an
// overdue booking back to active; the reconciler would do the same a tick
// later, this just avoids showing a stale state.
func (s *BookingService) Extend(id, minutes int) error {
	b, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if b.Status != string(schedule.StatusActive) && b.Status != string(schedule.StatusOverdue) {
		return apperrors.Conflict("Only an active or overdue booking can be extended.")
	}
	start, end, err := bookingTimes(*b)
	if err != nil {
		return err
	}
	dayT, err := parseDay(b.BookingDay)
	if err != nil {
		return err
	}

	options, err := s.extensionOptions(b.RoomID, b.BookingDay, dayT, start, int(end-start), id)
	if err != nil {
		return err
	}
	if !containsInt(options, minutes) {
		return apperrors.Conflict("That extension is no longer available. Please refresh and try again.")
	}

	newEnd := end + schedule.TimeOfDay(minutes)
	status := b.Status
	if newEnd.At(dayT).After(s.clock.Now()) {
		status = string(schedule.StatusActive)
	}
	if err := s.store.SetEnd(id, newEnd.SQL(), status); err != nil {
		return storeError(err)
	}
	return nil
}

// Options reports the duration choices for a booking starting at start in a
// room, and the extension choices when an existing booking is being edited.
func (s *BookingService) Options(roomID int, day, start string, excludeID int) (*entities.BookingOptions, error) {
	dayT, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	startTod, err := schedule.ParseTimeOfDay(start)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start time, expected HH:MM")
	}

	rows, err := s.store.ListForRoomDay(roomID, day)
	if err != nil {
		return nil, err
	}
	bookings := engineBookings(rows)
	closeLimit := s.settings.OpeningHours().ClosingLimit(dayT)

	current := 0
	var extensions []int
	if excludeID > 0 {
		for _, b := range bookings {
			if b.ID != excludeID {
				continue
			}
			current = int(b.End - b.Start)
			extensions = schedule.ExtensionOptions(bookings, b.Start, current, closeLimit, excludeID)
			break
		}
	}

	return &entities.BookingOptions{
		Durations:  schedule.DurationOptions(bookings, startTod, closeLimit, excludeID, current),
		Extensions: extensions,
	}, nil
}

func (s *BookingService) extensionOptions(roomID int, day string, dayT time.Time, start schedule.TimeOfDay, currentDuration, excludeID int) ([]int, error) {
	rows, err := s.store.ListForRoomDay(roomID, day)
	if err != nil {
		return nil, err
	}
	closeLimit := s.settings.OpeningHours().ClosingLimit(dayT)
	return schedule.ExtensionOptions(engineBookings(rows), start, currentDuration, closeLimit, excludeID), nil
}

// buildRow validates a request and assembles the row to persist. id is zero
// for a new booking.
func (s *BookingService) buildRow(req entities.BookingRequest, id int) (*db.Booking, time.Time, error) {
	dayT, err := parseDay(req.BookingDay)
	if err != nil {
		return nil, time.Time{}, err
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil || !start.Aligned() {
		return nil, time.Time{}, apperrors.BadRequest("start time must be HH:MM on a 30-minute boundary")
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes%schedule.SlotMinutes != 0 {
		return nil, time.Time{}, apperrors.BadRequest("duration must be a positive multiple of 30 minutes")
	}
	end := start + schedule.TimeOfDay(req.DurationMinutes)
	if end > 24*60 {
		return nil, time.Time{}, apperrors.BadRequest("a booking cannot run past midnight")
	}
	if req.RoomID <= 0 {
		return nil, time.Time{}, apperrors.BadRequest("a room is required")
	}
	if strings.TrimSpace(req.BookedBy) == "" {
		return nil, time.Time{}, apperrors.BadRequest("the name of the person booking is required")
	}
	if req.CourseID == nil && strings.TrimSpace(req.CourseName) == "" {
		return nil, time.Time{}, apperrors.BadRequest("select a course or enter one under Other")
	}

	status := schedule.Status(req.Status)
	if status == "" {
		status = schedule.StatusReserved
	}
	if !status.Valid() {
		return nil, time.Time{}, apperrors.BadRequest(fmt.Sprintf("unknown status %q", req.Status))
	}

	hours := s.settings.OpeningHours()
	open, _ := hours.Window(dayT)
	if start.At(dayT).Before(open) || end > hours.ClosingLimit(dayT) {
		return nil, time.Time{}, apperrors.BadRequest("booking falls outside the opening hours")
	}

	row := &db.Booking{
		ID:         id,
		RoomID:     req.RoomID,
		BookingDay: req.BookingDay,
		StartTime:  start.SQL(),
		EndTime:    end.SQL(),
		Status:     string(status),
		BookedBy:   strings.TrimSpace(req.BookedBy),
	}
	if req.CourseID != nil {
		row.CourseID.Int64 = int64(*req.CourseID)
		row.CourseID.Valid = true
	} else {
		row.CourseName.String = strings.TrimSpace(req.CourseName)
		row.CourseName.Valid = true
	}
	if v := strings.TrimSpace(req.StudentNumbers); v != "" {
		row.StudentNumbers.String = v
		row.StudentNumbers.Valid = true
	}
	row.BorrowedItems = req.BorrowedItems
	return row, dayT, nil
}

func parseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return time.Time{}, apperrors.BadRequest("invalid booking day, expected YYYY-MM-DD")
	}
	return t, nil
}

// bookingTimes parses a row's persisted start and end.
func bookingTimes(b db.Booking) (schedule.TimeOfDay, schedule.TimeOfDay, error) {
	start, err := schedule.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("booking %d has malformed start time: %w", b.ID, err)
	}
	end, err := schedule.ParseTimeOfDay(b.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("booking %d has malformed end time: %w", b.ID, err)
	}
	return start, end, nil
}

// engineBookings converts persisted rows to their scheduling view. Rows with
// unparseable times are skipped rather than poisoning the whole computation.
func engineBookings(rows []db.Booking) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(rows))
	for _, row := range rows {
		start, end, err := bookingTimes(row)
		if err != nil {
			log.Printf("bookings: skipping row: %v", err)
			continue
		}
		out = append(out, schedule.Booking{
			ID:     row.ID,
			RoomID: row.RoomID,
			Start:  start,
			End:    end,
			Status: schedule.Status(row.Status),
		})
	}
	return out
}

func bookingResponse(b db.Booking, dayT time.Time, now time.Time) entities.BookingResponse {
	resp := entities.BookingResponse{
		ID:             b.ID,
		RoomID:         b.RoomID,
		BookingDay:     b.BookingDay,
		Status:         b.Status,
		BookedBy:       b.BookedBy,
		StudentNumbers: b.StudentNumbers.String,
		BorrowedItems:  b.BorrowedItems,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	start, end, err := bookingTimes(b)
	if err == nil {
		resp.StartTime = start.String()
		resp.EndTime = end.String()
		resp.Late = schedule.Late(schedule.Booking{
			ID: b.ID, RoomID: b.RoomID, Start: start, End: end, Status: schedule.Status(b.Status),
		}, dayT, now)
	}
	if b.CourseID.Valid {
		courseID := int(b.CourseID.Int64)
		resp.CourseID = &courseID
		resp.CourseName = b.CourseDisplayName.String
		resp.CourseColor = b.CourseColor.String
	} else {
		resp.CourseName = b.CourseName.String
	}
	return resp
}

// storeError converts recognised constraint violations into user-facing
// errors, passing everything else through.
func storeError(err error) error {
	if he := apperrors.FromStore(err); he != nil {
		return he
	}
	return err
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
