package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"roombooking/internal/db"
	"roombooking/internal/entities"
	"roombooking/internal/repository"
)

type RoomService struct {
	repo *repository.RoomRepository
}

func NewRoomService(repo *repository.RoomRepository) *RoomService {
	return &RoomService{repo: repo}
}

var roomNumberPattern = regexp.MustCompile(`(?i)^room\s*(\d+)$`)

// SortRooms orders rooms the way they appear as grid columns: "Room N" names
// numerically first, everything else after them in case-insensitive
// alphabetical order.
func SortRooms(rooms []db.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		ni, iNumbered := roomNumber(rooms[i].Name)
		nj, jNumbered := roomNumber(rooms[j].Name)
		switch {
		case iNumbered && jNumbered:
			return ni < nj
		case iNumbered != jNumbered:
			return iNumbered
		default:
			return strings.ToLower(rooms[i].Name) < strings.ToLower(rooms[j].Name)
		}
	})
}

func roomNumber(name string) (int, bool) {
	m := roomNumberPattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ListBookable returns the available rooms in column order.
func (s *RoomService) ListBookable() ([]db.Room, error) {
	rooms, err := s.repo.ListAvailable()
	if err != nil {
		return nil, err
	}
	SortRooms(rooms)
	return rooms, nil
}

// ListAll returns every room, including ones hidden from the grid, for the
// administration surface.
func (s *RoomService) ListAll() ([]db.Room, error) {
	rooms, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	SortRooms(rooms)
	return rooms, nil
}

func (s *RoomService) Create(req entities.RoomRequest) (*db.Room, error) {
	rm := roomFromRequest(req)
	if err := s.repo.Create(rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) Update(id int, req entities.RoomRequest) (*db.Room, error) {
	rm := roomFromRequest(req)
	rm.ID = id
	if err := s.repo.Update(rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) Delete(id int) error {
	return s.repo.Delete(id)
}

func roomFromRequest(req entities.RoomRequest) *db.Room {
	rm := &db.Room{
		Name:            strings.TrimSpace(req.Name),
		IsAvailable:     req.IsAvailable,
		IsOpen:          req.IsOpen,
		BorrowableItems: req.BorrowableItems,
		DynamicLabels:   req.DynamicLabels,
	}
	if req.Capacity != nil {
		rm.Capacity.Int64 = int64(*req.Capacity)
		rm.Capacity.Valid = true
	}
	return rm
}

// RoomResponse converts a room row to its API shape.
func RoomResponse(rm db.Room) entities.RoomResponse {
	resp := entities.RoomResponse{
		ID:              rm.ID,
		Name:            rm.Name,
		IsAvailable:     rm.IsAvailable,
		IsOpen:          rm.IsOpen,
		BorrowableItems: rm.BorrowableItems,
		DynamicLabels:   rm.DynamicLabels,
	}
	if rm.Capacity.Valid {
		capacity := int(rm.Capacity.Int64)
		resp.Capacity = &capacity
	}
	return resp
}
