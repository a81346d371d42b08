package entities

import "time"

// BookingRequest is the payload for creating or fully replacing a booking.
// Times are "HH:MM" on 30-minute boundaries; BookingDay is "YYYY-MM-DD".
type BookingRequest struct {
	RoomID          int      `json:"room_id"`
	BookingDay      string   `json:"booking_day"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Status          string   `json:"status"`
	CourseID        *int     `json:"course_id"`
	CourseName      string   `json:"course_name"`
	BookedBy        string   `json:"booked_by"`
	StudentNumbers  string   `json:"student_numbers"`
	BorrowedItems   []string `json:"borrowed_items"`
}

type BookingResponse struct {
	ID             int       `json:"id"`
	RoomID         int       `json:"room_id"`
	BookingDay     string    `json:"booking_day"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	Late           bool      `json:"late,omitempty"`
	CourseID       *int      `json:"course_id,omitempty"`
	CourseName     string    `json:"course_name,omitempty"`
	CourseColor    string    `json:"course_color,omitempty"`
	BookedBy       string    `json:"booked_by"`
	StudentNumbers string    `json:"student_numbers,omitempty"`
	BorrowedItems  []string  `json:"borrowed_items,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ExtendRequest struct {
	Minutes int `json:"minutes"`
}

// BookingOptions lists the duration or extension choices, in minutes, still
// open for a booking. An empty list means the action must be disabled.
type BookingOptions struct {
	Durations  []int `json:"durations"`
	Extensions []int `json:"extensions,omitempty"`
}
