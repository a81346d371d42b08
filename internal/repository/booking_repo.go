package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"roombooking/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `
	b.id, b.room_id, b.booking_day::text, b.start_time::text, b.end_time::text,
	b.status, b.course_id, b.course_name, c.name, c.color_hex,
	b.booked_by, b.student_numbers, b.borrowed_items, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.BookingDay, &b.StartTime, &b.EndTime,
		&b.Status, &b.CourseID, &b.CourseName, &b.CourseDisplayName, &b.CourseColor,
		&b.BookedBy, &b.StudentNumbers, pq.Array(&b.BorrowedItems), &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListForDay returns the non-cancelled bookings for a day across all rooms,
// with joined course display fields, in persisted order.
func (r *BookingRepository) ListForDay(day string) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN courses c ON b.course_id = c.id
		WHERE b.booking_day = $1 AND b.status <> 'cancelled'
		ORDER BY b.id`
	return r.queryBookings(query, day)
}

// ListForRoomDay returns the non-cancelled bookings for one room on one day.
func (r *BookingRepository) ListForRoomDay(roomID int, day string) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN courses c ON b.course_id = c.id
		WHERE b.room_id = $1 AND b.booking_day = $2 AND b.status <> 'cancelled'
		ORDER BY b.id`
	return r.queryBookings(query, roomID, day)
}

func (r *BookingRepository) queryBookings(query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) GetByID(id int) (*db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN courses c ON b.course_id = c.id
		WHERE b.id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(room_id, booking_day, start_time, end_time, status, course_id, course_name,
		 booked_by, student_numbers, borrowed_items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.RoomID,
		b.BookingDay,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.CourseID,
		b.CourseName,
		b.BookedBy,
		b.StudentNumbers,
		pq.Array(b.BorrowedItems),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) Update(b *db.Booking) error {
	query := `
		UPDATE bookings SET
			room_id = $1, booking_day = $2, start_time = $3, end_time = $4,
			status = $5, course_id = $6, course_name = $7, booked_by = $8,
			student_numbers = $9, borrowed_items = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		b.RoomID, b.BookingDay, b.StartTime, b.EndTime,
		b.Status, b.CourseID, b.CourseName, b.BookedBy,
		b.StudentNumbers, pq.Array(b.BorrowedItems), b.ID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("booking %d not found: %w", b.ID, err)
	}
	return err
}

// SetStatus patches only the status field.
func (r *BookingRepository) SetStatus(id int, status string) error {
	res, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking %d status: %w", id, err)
	}
	return requireRow(res, id)
}

// SetEnd patches the end time together with the status, used by the quick
// end/start actions and by extensions.
func (r *BookingRepository) SetEnd(id int, endTime, status string) error {
	res, err := r.DB.Exec(
		`UPDATE bookings SET end_time = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		endTime, status, id,
	)
	if err != nil {
		return fmt.Errorf("error updating booking %d end time: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *BookingRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking %d: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return fmt.Errorf("booking %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

// MarkOverdue is the reconciler's batched conditional update: every booking
// still active on the given day whose end has passed the (possibly simulated)
// current time flips to overdue. Returns the affected ids; a repeated pass
// with an unchanged clock affects zero rows.
func (r *BookingRepository) MarkOverdue(day, now string) ([]int, error) {
	query := `
		UPDATE bookings SET status = 'overdue', updated_at = NOW()
		WHERE status = 'active' AND booking_day = $1 AND end_time < $2
		RETURNING id`
	return r.updateStatuses(query, day, now)
}

// ReactivateOverdue is the symmetric update: an overdue booking whose end is
// ahead of the clock again (extension or clock adjustment) flips back to
// active.
func (r *BookingRepository) ReactivateOverdue(day, now string) ([]int, error) {
	query := `
		UPDATE bookings SET status = 'active', updated_at = NOW()
		WHERE status = 'overdue' AND booking_day = $1 AND end_time > $2
		RETURNING id`
	return r.updateStatuses(query, day, now)
}

func (r *BookingRepository) updateStatuses(query string, args ...interface{}) ([]int, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error running status update: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning updated booking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating updated rows: %w", err)
	}
	return ids, nil
}

// UsageByRoom aggregates booked minutes per room over [from, to].
func (r *BookingRepository) UsageByRoom(from, to string) ([]UsageRow, error) {
	query := `
		SELECT rm.name, COUNT(b.id),
		       COALESCE(SUM(EXTRACT(EPOCH FROM (b.end_time - b.start_time)) / 60), 0)::int
		FROM bookings b
		JOIN rooms rm ON b.room_id = rm.id
		WHERE b.booking_day BETWEEN $1 AND $2 AND b.status <> 'cancelled'
		GROUP BY rm.name
		ORDER BY rm.name`
	return r.queryUsage(query, from, to)
}

// UsageByCourse aggregates booked minutes per course label over [from, to].
// Free-text "Other" course names group under their own label.
func (r *BookingRepository) UsageByCourse(from, to string) ([]UsageRow, error) {
	query := `
		SELECT COALESCE(c.name, b.course_name, 'Unassigned'), COUNT(b.id),
		       COALESCE(SUM(EXTRACT(EPOCH FROM (b.end_time - b.start_time)) / 60), 0)::int
		FROM bookings b
		LEFT JOIN courses c ON b.course_id = c.id
		WHERE b.booking_day BETWEEN $1 AND $2 AND b.status <> 'cancelled'
		GROUP BY 1
		ORDER BY 1`
	return r.queryUsage(query, from, to)
}

type UsageRow struct {
	Label   string
	Count   int
	Minutes int
}

func (r *BookingRepository) queryUsage(query, from, to string) ([]UsageRow, error) {
	rows, err := r.DB.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying usage: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		if err := rows.Scan(&u.Label, &u.Count, &u.Minutes); err != nil {
			return nil, fmt.Errorf("error scanning usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
