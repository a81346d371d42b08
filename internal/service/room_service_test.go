package service

import (
	"testing"

	"roombooking/internal/db"
)

func roomNames(rooms []db.Room) []string {
	names := make([]string, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
	}
	return names
}

func TestSortRooms_NumberedBeforeAlphabetical(t *testing.T) {
	rooms := []db.Room{
		{Name: "Studio B"},
		{Name: "Room 10"},
		{Name: "Edit Suite"},
		{Name: "Room 2"},
		{Name: "room 1"},
		{Name: "studio A"},
	}
	SortRooms(rooms)

	want := []string{"room 1", "Room 2", "Room 10", "Edit Suite", "studio A", "Studio B"}
	got := roomNames(rooms)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order %v, want %v", got, want)
		}
	}
}

func TestSortRooms_NumericNotLexicographic(t *testing.T) {
	rooms := []db.Room{{Name: "Room 11"}, {Name: "Room 9"}, {Name: "Room 100"}}
	SortRooms(rooms)

	want := []string{"Room 9", "Room 11", "Room 100"}
	got := roomNames(rooms)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order %v, want %v", got, want)
		}
	}
}

func TestSortRooms_StableForEqualNames(t *testing.T) {
	rooms := []db.Room{{ID: 1, Name: "Room 3"}, {ID: 2, Name: "Room 3"}}
	SortRooms(rooms)
	if rooms[0].ID != 1 || rooms[1].ID != 2 {
		t.Fatalf("equal names should keep their relative order, got %+v", rooms)
	}
}
