package entities

// TestingClock is the admin-controlled simulated clock, stored under the
// settings key "testing_clock". While enabled, every component that consumes
// time sees Date+Time instead of the wall clock.
type TestingClock struct {
	Enabled bool   `json:"enabled"`
	Date    string `json:"date,omitempty"` // YYYY-MM-DD
	Time    string `json:"time,omitempty"` // HH:MM
}

type NowResponse struct {
	Now       string `json:"now"`
	Simulated bool   `json:"simulated"`
}
