package api

import (
	"net/http"

	"roombooking/internal/entities"
	"roombooking/internal/repository"
	"roombooking/internal/service"
)

// CatalogHandler serves the read-only lookups the booking panel needs:
// bookable rooms and the course list.
type CatalogHandler struct {
	rooms   *service.RoomService
	courses *repository.CourseRepository
}

func NewCatalogHandler(rooms *service.RoomService, courses *repository.CourseRepository) *CatalogHandler {
	return &CatalogHandler{rooms: rooms, courses: courses}
}

func (h *CatalogHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListBookable()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]entities.RoomResponse, len(rooms))
	for i, rm := range rooms {
		out[i] = service.RoomResponse(rm)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]entities.CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = entities.CourseResponse{ID: c.ID, Name: c.Name, ColorHex: c.ColorHex.String}
	}
	writeJSON(w, http.StatusOK, out)
}
