package schedule

import (
	"reflect"
	"testing"
)

const closeAt2100 = TimeOfDay(21 * 60)

func TestDurationOptions_StopsAtNextBooking(t *testing.T) {
	bookings := []Booking{
		{ID: 5, RoomID: 1, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: StatusReserved},
	}
	got := DurationOptions(bookings, mustTime(t, "09:00"), closeAt2100, 0, 0)
	want := []int{30, 60}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DurationOptions = %v, want %v (60 reaches but must not cross 10:00)", got, want)
	}
}

func TestDurationOptions_OpenRoomCapsAtPresentationMax(t *testing.T) {
	got := DurationOptions(nil, mustTime(t, "09:00"), closeAt2100, 0, 0)
	want := []int{30, 60, 90, 120}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DurationOptions = %v, want %v", got, want)
	}
}

func TestDurationOptions_ClosingTimeLimits(t *testing.T) {
	got := DurationOptions(nil, mustTime(t, "20:30"), closeAt2100, 0, 0)
	want := []int{30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DurationOptions near closing = %v, want %v", got, want)
	}
}

func TestDurationOptions_StartInsideBookingConflicts(t *testing.T) {
	bookings := []Booking{
		{ID: 5, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Status: StatusActive},
	}
	if got := DurationOptions(bookings, mustTime(t, "09:30"), closeAt2100, 0, 0); got != nil {
		t.Fatalf("expected no options when starting inside a booking, got %v", got)
	}
}

func TestDurationOptions_ExcludesEditedBooking(t *testing.T) {
	bookings := []Booking{
		{ID: 5, RoomID: 1, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Status: StatusActive},
	}
	got := DurationOptions(bookings, mustTime(t, "09:00"), closeAt2100, 5, 60)
	want := []int{30, 60, 90, 120}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("editing a booking must not conflict with itself: got %v, want %v", got, want)
	}
}

func TestDurationOptions_KeepsCurrentBeyondCap(t *testing.T) {
	got := DurationOptions(nil, mustTime(t, "09:00"), closeAt2100, 3, 150)
	want := []int{30, 60, 90, 120, 150}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("a valid current duration above the cap must be kept: got %v, want %v", got, want)
	}
}

func TestDurationOptions_DropsCurrentPastLimit(t *testing.T) {
	bookings := []Booking{
		{ID: 9, RoomID: 1, Start: mustTime(t, "09:30"), End: mustTime(t, "10:00"), Status: StatusReserved},
	}
	got := DurationOptions(bookings, mustTime(t, "09:00"), closeAt2100, 3, 90)
	want := []int{30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("a current duration that now collides must not be offered: got %v, want %v", got, want)
	}
}

func TestDurationOptions_OvernightWindowStopsAtMidnight(t *testing.T) {
	closeNextMorning := TimeOfDay(30 * 60) // 06:00 the next day
	got := DurationOptions(nil, mustTime(t, "23:30"), closeNextMorning, 0, 0)
	want := []int{30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("a booking may not cross midnight: got %v, want %v", got, want)
	}
	if got := DurationOptions(nil, TimeOfDay(24*60+30), closeNextMorning, 0, 0); got != nil {
		t.Fatalf("slots past midnight have nothing to offer, got %v", got)
	}
}

func TestDurationOptions_EndedBookingDoesNotBlock(t *testing.T) {
	bookings := []Booking{
		{ID: 5, RoomID: 1, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: StatusEnded},
	}
	got := DurationOptions(bookings, mustTime(t, "10:00"), closeAt2100, 0, 0)
	want := []int{30, 60, 90, 120}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("an ended booking no longer blocks its slots: got %v, want %v", got, want)
	}
}

func TestExtensionOptions_OvernightWindowStopsAtMidnight(t *testing.T) {
	closeNextMorning := TimeOfDay(30 * 60)
	got := ExtensionOptions(nil, mustTime(t, "23:00"), 30, closeNextMorning, 1)
	want := []int{30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("an extension may not cross midnight: got %v, want %v", got, want)
	}
}

func TestExtensionOptions(t *testing.T) {
	tests := []struct {
		name     string
		bookings []Booking
		start    string
		dur      int
		want     []int
	}{
		{
			name: "bounded by next booking",
			bookings: []Booking{
				{ID: 2, Start: mustTime(t, "11:00"), End: mustTime(t, "12:00"), Status: StatusReserved},
			},
			start: "09:00", dur: 60,
			want: []int{30, 60},
		},
		{
			name:  "open room capped at presentation max",
			start: "09:00", dur: 30,
			want: []int{30, 60, 90, 120},
		},
		{
			name: "no gap before next booking",
			bookings: []Booking{
				{ID: 2, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: StatusReserved},
			},
			start: "09:00", dur: 60,
			want: nil,
		},
		{
			name:  "bounded by closing",
			start: "20:00", dur: 30,
			want: []int{30},
		},
		{
			name: "ended booking does not bound",
			bookings: []Booking{
				{ID: 2, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: StatusEnded},
			},
			start: "09:00", dur: 60,
			want: []int{30, 60, 90, 120},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtensionOptions(tt.bookings, mustTime(t, tt.start), tt.dur, closeAt2100, 1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtensionOptions = %v, want %v", got, tt.want)
			}
		})
	}
}
