package api

import (
	"net/http"

	"roombooking/internal/auth"
	"roombooking/internal/db"
	"roombooking/internal/entities"
	"roombooking/internal/repository"
	"roombooking/internal/schedule"
	"roombooking/internal/service"
)

// AdminHandler serves the management surface: rooms, courses, settings,
// users and usage reports. Every route is behind the admin middleware.
type AdminHandler struct {
	rooms    *service.RoomService
	courses  *repository.CourseRepository
	settings *service.SettingsService
	clock    *service.SettingsClock
	users    *service.UserService
	bookings *repository.BookingRepository
}

func NewAdminHandler(
	rooms *service.RoomService,
	courses *repository.CourseRepository,
	settings *service.SettingsService,
	clock *service.SettingsClock,
	users *service.UserService,
	bookings *repository.BookingRepository,
) *AdminHandler {
	return &AdminHandler{
		rooms:    rooms,
		courses:  courses,
		settings: settings,
		clock:    clock,
		users:    users,
		bookings: bookings,
	}
}

// Rooms

func (h *AdminHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListAll()
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

func (h *AdminHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req entities.RoomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rm, err := h.rooms.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, service.RoomResponse(*rm))
}

func (h *AdminHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid room id"})
		return
	}
	var req entities.RoomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rm, err := h.rooms.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.RoomResponse(*rm))
}

func (h *AdminHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid room id"})
		return
	}
	if err := h.rooms.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Courses

func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req entities.CourseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	course := &db.Course{Name: req.Name}
	if req.ColorHex != "" {
		course.ColorHex.String = req.ColorHex
		course.ColorHex.Valid = true
	}
	if err := h.courses.Create(course); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.CourseResponse{
		ID: course.ID, Name: course.Name, ColorHex: course.ColorHex.String,
	})
}

func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid course id"})
		return
	}
	var req entities.CourseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	course := &db.Course{ID: id, Name: req.Name}
	if req.ColorHex != "" {
		course.ColorHex.String = req.ColorHex
		course.ColorHex.Valid = true
	}
	if err := h.courses.Update(course); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.CourseResponse{
		ID: course.ID, Name: course.Name, ColorHex: course.ColorHex.String,
	})
}

func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid course id"})
		return
	}
	if err := h.courses.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Settings

func (h *AdminHandler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.OpeningHours())
}

func (h *AdminHandler) SetOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req schedule.OpeningHours
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.settings.SetOpeningHours(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) GetTestingClock(w http.ResponseWriter, r *http.Request) {
	tc, err := h.settings.TestingClock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tc)
}

func (h *AdminHandler) SetTestingClock(w http.ResponseWriter, r *http.Request) {
	var req entities.TestingClock
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.settings.SetTestingClock(req, h.clock); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Users

func userResponse(u db.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name.String,
		Settings:      u.Settings,
		Authorisation: u.Authorisation,
		Analytics:     u.Analytics,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.users.Create(req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(*user))
}

func (h *AdminHandler) UpdateUserFlags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid user id"})
		return
	}
	var req UserFlagsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	claims := auth.FromContext(r.Context())
	if err := h.users.UpdateFlags(claims.UserID, id, req.Settings, req.Authorisation, req.Analytics); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid user id"})
		return
	}
	claims := auth.FromContext(r.Context())
	if err := h.users.Delete(claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reports

// UsageReport handles GET /admin/reports/usage?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *AdminHandler) UsageReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "from and to are required"})
		return
	}

	byRoom, err := h.bookings.UsageByRoom(from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	byCourse, err := h.bookings.UsageByCourse(from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	report := entities.UsageReport{
		From:     from,
		To:       to,
		ByRoom:   usageRows(byRoom),
		ByCourse: usageRows(byCourse),
	}
	writeJSON(w, http.StatusOK, report)
}

func usageRows(rows []repository.UsageRow) []entities.UsageRow {
	out := make([]entities.UsageRow, len(rows))
	for i, row := range rows {
		out[i] = entities.UsageRow{Label: row.Label, Bookings: row.Count, BookedMinutes: row.Minutes}
	}
	return out
}
