package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"roombooking/internal/db"
)

type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(database *sql.DB) *RoomRepository {
	return &RoomRepository{DB: database}
}

const roomColumns = `id, name, capacity, is_available, is_open, borrowable_items, dynamic_labels, created_at, updated_at`

func (r *RoomRepository) scanRooms(rows *sql.Rows) ([]db.Room, error) {
	defer rows.Close()
	var rooms []db.Room
	for rows.Next() {
		var rm db.Room
		err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.IsAvailable, &rm.IsOpen,
			pq.Array(&rm.BorrowableItems), pq.Array(&rm.DynamicLabels), &rm.CreatedAt, &rm.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// ListAvailable returns the rooms offered for booking. Ordering is by name
// only; the numeric-suffix-aware sort happens in the service layer.
func (r *RoomRepository) ListAvailable() ([]db.Room, error) {
	rows, err := r.DB.Query(`SELECT `+roomColumns+` FROM rooms WHERE is_available ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying available rooms: %w", err)
	}
	return r.scanRooms(rows)
}

func (r *RoomRepository) ListAll() ([]db.Room, error) {
	rows, err := r.DB.Query(`SELECT ` + roomColumns + ` FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	return r.scanRooms(rows)
}

func (r *RoomRepository) GetByID(id int) (*db.Room, error) {
	var rm db.Room
	err := r.DB.QueryRow(`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id).Scan(
		&rm.ID, &rm.Name, &rm.Capacity, &rm.IsAvailable, &rm.IsOpen,
		pq.Array(&rm.BorrowableItems), pq.Array(&rm.DynamicLabels), &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying room %d: %w", id, err)
	}
	return &rm, nil
}

func (r *RoomRepository) Create(rm *db.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, is_available, is_open, borrowable_items, dynamic_labels, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, rm.Name, rm.Capacity, rm.IsAvailable, rm.IsOpen,
		pq.Array(rm.BorrowableItems), pq.Array(rm.DynamicLabels)).
		Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
}

func (r *RoomRepository) Update(rm *db.Room) error {
	res, err := r.DB.Exec(`
		UPDATE rooms SET name = $1, capacity = $2, is_available = $3, is_open = $4,
			borrowable_items = $5, dynamic_labels = $6, updated_at = NOW()
		WHERE id = $7`,
		rm.Name, rm.Capacity, rm.IsAvailable, rm.IsOpen,
		pq.Array(rm.BorrowableItems), pq.Array(rm.DynamicLabels), rm.ID)
	if err != nil {
		return fmt.Errorf("error updating room %d: %w", rm.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %d not found: %w", rm.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *RoomRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting room %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}
