package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roombooking/internal/realtime"
)

// EventsHandler streams booking change notifications to the browser over
// Server-Sent Events. Clients refetch the grid when an event arrives, so the
// payload only needs to say what changed, not carry the new state.
type EventsHandler struct {
	hub *realtime.Hub
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/events?day=YYYY-MM-DD. An empty day subscribes to
// every change.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.hub.Subscribe(r.URL.Query().Get("day"))
	defer cancel()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-heartbeat.C:
			// Keeps intermediaries from closing an idle stream.
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
