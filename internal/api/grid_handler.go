package api

import (
	"net/http"
	"time"

	"roombooking/internal/entities"
	"roombooking/internal/service"
)

type GridHandler struct {
	grid  *service.GridService
	clock *service.SettingsClock
}

func NewGridHandler(grid *service.GridService, clock *service.SettingsClock) *GridHandler {
	return &GridHandler{grid: grid, clock: clock}
}

// Grid handles GET /api/grid?day=YYYY-MM-DD, defaulting to the clock's
// current day so a kiosk can load the view with no parameters.
func (h *GridHandler) Grid(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		day = h.clock.Now().Format("2006-01-02")
	}
	grid, err := h.grid.BuildGrid(day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// Now handles GET /api/now: the (possibly simulated) current time every
// client aligns its highlighting and countdowns to.
func (h *GridHandler) Now(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entities.NowResponse{
		Now:       h.clock.Now().Format(time.RFC3339),
		Simulated: h.clock.Simulated(),
	})
}
