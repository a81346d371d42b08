package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

// Channel is the Postgres notification channel raised by the bookings and
// rooms triggers in migrations/schema.sql.
const Channel = "bookings_changed"

// Event is the payload of one row-level change notification.
type Event struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    int    `json:"id"`
	Day   string `json:"day,omitempty"`
}

// Matches reports whether the event is relevant to a subscriber watching a
// given day. Rooms changes and events without a day (DELETEs may not carry
// one) are always relevant.
func (e Event) Matches(day string) bool {
	if e.Table != "bookings" || e.Day == "" || day == "" {
		return true
	}
	return e.Day == day
}

type subscriber struct {
	ch  chan Event
	day string
}

// Hub listens for row-level change notifications and fans them out to
// subscribers. Every event is delivered, including the ones this process's
// own reconciliation writes cause: subscribers are remote clients that need
// those status flips, and they debounce their own refetching.
type Hub struct {
	listener *pq.Listener

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub(connStr string) *Hub {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("realtime listener event %d: %v", ev, err)
		}
	})
	return newHub(listener)
}

func newHub(listener *pq.Listener) *Hub {
	return &Hub{
		listener: listener,
		subs:     make(map[*subscriber]struct{}),
	}
}

// Run blocks pumping notifications until ctx is cancelled. Listen errors are
// logged and retried; a dead listener degrades the service to polling, it
// never takes it down.
func (h *Hub) Run(ctx context.Context) {
	if h.listener != nil {
		if err := h.listener.Listen(Channel); err != nil {
			log.Printf("realtime: failed to LISTEN on %s: %v", Channel, err)
		}
	}
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			if h.listener != nil {
				h.listener.Close()
			}
			return
		case n := <-h.notifications():
			if n == nil {
				// nil notification signals a reconnect; subscribers refetch on
				// the next event they receive.
				continue
			}
			var ev Event
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				log.Printf("realtime: malformed notification %q: %v", n.Extra, err)
				continue
			}
			h.dispatch(ev)
		case <-ping.C:
			if h.listener != nil {
				if err := h.listener.Ping(); err != nil {
					log.Printf("realtime: listener ping failed: %v", err)
				}
			}
		}
	}
}

func (h *Hub) notifications() <-chan *pq.Notification {
	if h.listener == nil {
		return nil
	}
	return h.listener.Notify
}

func (h *Hub) dispatch(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !ev.Matches(sub.day) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Slow subscriber: drop rather than block the pump.
		}
	}
}

// Subscribe registers interest in changes relevant to a day ("" for all).
// The returned cancel func must be called on teardown.
func (h *Hub) Subscribe(day string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, 16), day: day}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	}
	return sub.ch, cancel
}
