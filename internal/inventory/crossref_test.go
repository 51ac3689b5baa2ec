package inventory

import (
	"testing"

	"cafepos/internal/domain"
)

func TestApplyAttachesQty(t *testing.T) {
	menu := []domain.MenuItem{{ID: "M1", Name: "Trà sữa"}, {ID: "M2", Name: "Cà phê"}}
	recs := []domain.InventoryRecord{{ID: "M1", Name: "Trà sữa", Quantity: 7}}

	out := Apply(menu, recs)
	if out[0].InventoryQty == nil || *out[0].InventoryQty != 7 {
		t.Fatalf("M1 qty not attached: %+v", out[0])
	}
	if out[1].InventoryQty != nil {
		t.Fatalf("M2 has no matching record: %+v", out[1])
	}
}

func TestApplyZeroStockOverridesFlag(t *testing.T) {
	// Remote says in stock, local quantity says zero: local wins.
	menu := []domain.MenuItem{{ID: "X", Name: "Trà đào", IsOutOfStock: false}}
	recs := []domain.InventoryRecord{{ID: "X", Quantity: 0}}

	out := Apply(menu, recs)
	if !out[0].IsOutOfStock {
		t.Fatalf("qty 0 must force out-of-stock: %+v", out[0])
	}
}

func TestApplyNegativeStock(t *testing.T) {
	menu := []domain.MenuItem{{ID: "X", Name: "Trà đào"}}
	recs := []domain.InventoryRecord{{ID: "X", Quantity: -3}}

	out := Apply(menu, recs)
	if !out[0].IsOutOfStock {
		t.Fatal("negative qty must force out-of-stock")
	}
}

func TestApplyPositiveStockKeepsRemoteFlag(t *testing.T) {
	// Positive quantity does not clear a remote out-of-stock flag.
	menu := []domain.MenuItem{{ID: "X", Name: "Trà đào", IsOutOfStock: true}}
	recs := []domain.InventoryRecord{{ID: "X", Quantity: 5}}

	out := Apply(menu, recs)
	if !out[0].IsOutOfStock {
		t.Fatal("remote flag must survive positive stock")
	}
}

func TestDiffEdgeTriggered(t *testing.T) {
	prev := []domain.MenuItem{
		{ID: "A", IsOutOfStock: false},
		{ID: "B", IsOutOfStock: true},
	}
	next := []domain.MenuItem{
		{ID: "A", IsOutOfStock: true},  // false -> true: fires
		{ID: "B", IsOutOfStock: true},  // already out: silent
		{ID: "C", IsOutOfStock: true},  // never observed before: silent
	}

	events := DiffOutOfStock(prev, next)
	if len(events) != 1 || events[0].ID != "A" {
		t.Fatalf("want exactly one event for A, got %+v", events)
	}

	// Same snapshot again: no re-notification.
	if again := DiffOutOfStock(next, next); len(again) != 0 {
		t.Fatalf("level must not re-trigger, got %+v", again)
	}
}

func TestDiffFirstLoadEmitsNothing(t *testing.T) {
	next := []domain.MenuItem{{ID: "A", IsOutOfStock: true}}
	if events := DiffOutOfStock(nil, next); events != nil {
		t.Fatalf("first load must emit nothing, got %+v", events)
	}
}
