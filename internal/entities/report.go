package entities

// UsageRow aggregates booked minutes for a grouping key (room or course)
// over a date range.
type UsageRow struct {
	Label         string `json:"label"`
	Bookings      int    `json:"bookings"`
	BookedMinutes int    `json:"booked_minutes"`
}

type UsageReport struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	ByRoom   []UsageRow `json:"by_room"`
	ByCourse []UsageRow `json:"by_course"`
}
