package store

import (
	"testing"

	"cafepos/internal/domain"
)

func TestReplaceAllKeepsCopies(t *testing.T) {
	s := New()
	s.ReplaceAll([]domain.MenuItem{{ID: "M1"}}, nil, nil, nil)

	snap := s.Menu()
	snap[0].ID = "mutated"
	if s.Menu()[0].ID != "M1" {
		t.Fatal("snapshot mutation must not reach the store")
	}
}

func TestFailKeepsLastKnownGood(t *testing.T) {
	s := New()
	s.ReplaceAll([]domain.MenuItem{{ID: "M1"}}, []domain.Order{{OrderID: "A"}}, nil, nil)

	s.Fail("transport", "connection refused")

	if len(s.Menu()) != 1 || len(s.Orders()) != 1 {
		t.Fatal("failure must not clear entities")
	}
	st := s.Status()
	if st.Healthy || st.ErrorCategory != "transport" {
		t.Fatalf("bad status: %+v", st)
	}

	// Next success clears the error.
	s.ReplaceAll(nil, nil, nil, nil)
	if st := s.Status(); !st.Healthy || st.ErrorCategory != "" {
		t.Fatalf("recovery must clear error: %+v", st)
	}
}

func TestOptimisticOrderRemoteWins(t *testing.T) {
	s := New()
	local := domain.Order{OrderID: "local-1", CustomerName: "Tú", OrderStatus: domain.StatusPending}
	s.SetLastSubmitted(local)

	// Remote does not know the order yet: optimistic copy shows first.
	disp := s.DisplayOrders()
	if len(disp) != 1 || disp[0].OrderID != "local-1" {
		t.Fatalf("optimistic order missing: %+v", disp)
	}

	// Remote still without it: optimistic copy survives the refresh.
	s.ReplaceAll(nil, []domain.Order{{OrderID: "other"}}, nil, nil)
	if disp := s.DisplayOrders(); len(disp) != 2 || disp[0].OrderID != "local-1" {
		t.Fatalf("optimistic order must survive non-matching refresh: %+v", disp)
	}

	// Remote echoes the id back: remote wins, local slot cleared.
	s.ReplaceAll(nil, []domain.Order{{OrderID: "local-1", OrderStatus: domain.StatusAccepted}}, nil, nil)
	disp = s.DisplayOrders()
	if len(disp) != 1 {
		t.Fatalf("want 1 order after reconciliation, got %+v", disp)
	}
	if disp[0].OrderStatus != domain.StatusAccepted {
		t.Fatal("remote copy must win once the id matches")
	}
}

func TestSubscribePublish(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Publish(Event{Type: EventOutOfStock, Item: &domain.MenuItem{ID: "M1"}})

	e := <-ch
	if e.Type != EventOutOfStock || e.Item.ID != "M1" {
		t.Fatalf("bad event: %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Fatal("publish must stamp the event")
	}
}

func TestIndicatorFlags(t *testing.T) {
	s := New()
	s.SetIndicator(true, true)
	if st := s.Status(); !st.Loading || st.Refreshing {
		t.Fatalf("want loading only: %+v", st)
	}
	s.SetIndicator(true, false)
	s.SetIndicator(false, true)
	if st := s.Status(); st.Loading || !st.Refreshing {
		t.Fatalf("want refreshing only: %+v", st)
	}
}
