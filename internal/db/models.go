package db

import (
	"database/sql"
	"time"
)

type Room struct {
	ID              int
	Name            string
	Capacity        sql.NullInt64
	IsAvailable     bool
	IsOpen          bool
	BorrowableItems []string
	DynamicLabels   []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Course struct {
	ID       int
	Name     string
	ColorHex sql.NullString
}

// Booking is a persisted booking row. BookingDay is "YYYY-MM-DD"; StartTime
// and EndTime are times of day ("HH:MM:SS") on that day. CourseName holds the
// free-text "Other" override when no CourseID is set; CourseDisplayName and
// CourseColor are joined from the courses table on reads.
type Booking struct {
	ID                int
	RoomID            int
	BookingDay        string
	StartTime         string
	EndTime           string
	Status            string
	CourseID          sql.NullInt64
	CourseName        sql.NullString
	CourseDisplayName sql.NullString
	CourseColor       sql.NullString
	BookedBy          string
	StudentNumbers    sql.NullString
	BorrowedItems     []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type User struct {
	ID            int
	Email         string
	Name          sql.NullString
	PasswordHash  string
	Settings      bool
	Authorisation bool
	Analytics     bool
	CreatedAt     time.Time
}
