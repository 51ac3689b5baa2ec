// Package inventory merges material quantities into menu entities and
// derives stock transitions between fetch cycles.
package inventory

import "cafepos/internal/domain"

// Apply attaches inventory quantities to menu items by id match and applies
// the stock override: zero or negative stock forces out-of-stock no matter
// what the remote's own flag says.
func Apply(menu []domain.MenuItem, records []domain.InventoryRecord) []domain.MenuItem {
	qtyByID := make(map[string]int, len(records))
	for _, r := range records {
		qtyByID[r.ID] = r.Quantity
	}

	out := make([]domain.MenuItem, len(menu))
	for i, item := range menu {
		if qty, ok := qtyByID[item.ID]; ok {
			q := qty
			item.InventoryQty = &q
			if q <= 0 {
				item.IsOutOfStock = true
			}
		}
		out[i] = item
	}
	return out
}

// DiffOutOfStock returns the items whose IsOutOfStock went false to true
// between two snapshots. The diff is edge-triggered: items already out of
// stock do not reappear, and items with no previous observation (including
// the whole first load) emit nothing.
func DiffOutOfStock(prev, next []domain.MenuItem) []domain.MenuItem {
	if len(prev) == 0 {
		return nil
	}
	wasOut := make(map[string]bool, len(prev))
	for _, item := range prev {
		wasOut[item.ID] = item.IsOutOfStock
	}

	var changed []domain.MenuItem
	for _, item := range next {
		out, seen := wasOut[item.ID]
		if seen && !out && item.IsOutOfStock {
			changed = append(changed, item)
		}
	}
	return changed
}
