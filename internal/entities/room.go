package entities

type RoomResponse struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Capacity        *int     `json:"capacity,omitempty"`
	IsAvailable     bool     `json:"is_available"`
	IsOpen          bool     `json:"is_open"`
	BorrowableItems []string `json:"borrowable_items,omitempty"`
	DynamicLabels   []string `json:"dynamic_labels,omitempty"`
}

type RoomRequest struct {
	Name            string   `json:"name"`
	Capacity        *int     `json:"capacity"`
	IsAvailable     bool     `json:"is_available"`
	IsOpen          bool     `json:"is_open"`
	BorrowableItems []string `json:"borrowable_items"`
	DynamicLabels   []string `json:"dynamic_labels"`
}

type CourseResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"color_hex,omitempty"`
}

type CourseRequest struct {
	Name     string `json:"name"`
	ColorHex string `json:"color_hex"`
}
