package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"roombooking/internal/entities"
	"roombooking/internal/service"
)

type BookingHandler struct {
	service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

// ListBookings handles GET /api/bookings?day=YYYY-MM-DD[&room_id=N].
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	roomID, _ := strconv.Atoi(r.URL.Query().Get("room_id"))

	bookings, err := h.service.ListForDay(day, roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid booking id"})
		return
	}
	booking, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.service.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid booking id"})
		return
	}
	var req entities.BookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.service.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid booking id"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartBooking handles POST /api/bookings/{id}/start.
func (h *BookingHandler) StartBooking(w http.ResponseWriter, r *http.Request) {
	h.quickAction(w, r, h.service.Start)
}

// EndBooking handles POST /api/bookings/{id}/end.
func (h *BookingHandler) EndBooking(w http.ResponseWriter, r *http.Request) {
	h.quickAction(w, r, h.service.End)
}

func (h *BookingHandler) quickAction(w http.ResponseWriter, r *http.Request, action func(int) error) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid booking id"})
		return
	}
	if err := action(id); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ExtendBooking handles POST /api/bookings/{id}/extend.
func (h *BookingHandler) ExtendBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid booking id"})
		return
	}
	var req entities.ExtendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.Extend(id, req.Minutes); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// BookingOptions handles GET /api/bookings/options: the duration choices for
// a (room, day, start) position and, when editing, the extension choices.
func (h *BookingHandler) BookingOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomID, err := strconv.Atoi(q.Get("room_id"))
	if err != nil || roomID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "room_id is required"})
		return
	}
	excludeID, _ := strconv.Atoi(q.Get("exclude_id"))

	options, err := h.service.Options(roomID, q.Get("day"), q.Get("start"), excludeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}
