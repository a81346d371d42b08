package realtime

import "testing"

func testHub() *Hub {
	return newHub(nil)
}

func TestHub_DispatchFiltersByDay(t *testing.T) {
	h := testHub()
	todayCh, cancelToday := h.Subscribe("2026-03-12")
	defer cancelToday()
	otherCh, cancelOther := h.Subscribe("2026-03-13")
	defer cancelOther()
	allCh, cancelAll := h.Subscribe("")
	defer cancelAll()

	h.dispatch(Event{Table: "bookings", Op: "INSERT", ID: 1, Day: "2026-03-12"})

	select {
	case ev := <-todayCh:
		if ev.ID != 1 {
			t.Fatalf("unexpected event %+v", ev)
		}
	default:
		t.Fatal("subscriber for the matching day should receive the event")
	}
	select {
	case ev := <-otherCh:
		t.Fatalf("subscriber for another day received %+v", ev)
	default:
	}
	select {
	case <-allCh:
	default:
		t.Fatal("wildcard subscriber should receive every event")
	}
}

func TestHub_DeleteWithoutDayReachesEveryone(t *testing.T) {
	h := testHub()
	ch, cancel := h.Subscribe("2026-03-12")
	defer cancel()

	h.dispatch(Event{Table: "bookings", Op: "DELETE", ID: 9})

	select {
	case <-ch:
	default:
		t.Fatal("events without a day must reach day-scoped subscribers")
	}
}

func TestHub_StatusUpdatesReachRemoteSubscribers(t *testing.T) {
	h := testHub()
	ch, cancel := h.Subscribe("2026-03-12")
	defer cancel()

	// Back-to-back events, as a reconciliation pass produces them, must all
	// go out: subscribers are remote clients waiting on exactly these flips.
	h.dispatch(Event{Table: "bookings", Op: "UPDATE", ID: 3, Day: "2026-03-12"})
	h.dispatch(Event{Table: "bookings", Op: "UPDATE", ID: 4, Day: "2026-03-12"})

	for _, wantID := range []int{3, 4} {
		select {
		case ev := <-ch:
			if ev.ID != wantID {
				t.Fatalf("got event %+v, want id %d", ev, wantID)
			}
		default:
			t.Fatalf("subscriber never received the update for booking %d", wantID)
		}
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := testHub()
	ch, cancel := h.Subscribe("")
	cancel()

	h.dispatch(Event{Table: "bookings", Op: "INSERT", ID: 2})
	select {
	case ev := <-ch:
		t.Fatalf("cancelled subscriber received %+v", ev)
	default:
	}
}
