// Package normalize turns the remote's loosely-keyed flat rows into domain
// entities. It is pure over its input snapshot: no shared state, no I/O.
package normalize

import (
	"time"

	"cafepos/internal/domain"
	"cafepos/internal/remote"
)

var (
	menuID     = field{patterns: []string{"ma mon", "item id"}, fallback: "id"}
	menuName   = field{patterns: []string{"ten mon", "ten", "name"}, fallback: "name"}
	menuPrice  = field{patterns: []string{"gia ban", "price", "don gia"}, fallback: "price"}
	menuGroup  = field{patterns: []string{"danh muc", "phan loai", "category", "nhom"}, fallback: "category"}
	stockFlag  = field{patterns: []string{"het hang", "out of stock", "tinh trang"}, fallback: "isOutOfStock"}
	customFlag = field{patterns: []string{"tuy chinh", "customization", "custom"}, fallback: "hasCustomizations"}

	invID   = field{patterns: []string{"ma nguyen lieu", "material id", "ma nl"}, fallback: "id"}
	invName = field{patterns: []string{"ten nguyen lieu", "ten", "name"}, fallback: "name"}
	invQty  = field{patterns: []string{"so luong", "ton kho", "quantity", "qty"}, fallback: "quantity"}

	txnID   = field{patterns: []string{"ma giao dich", "transaction id"}, fallback: "id"}
	txnKind = field{patterns: []string{"loai", "kind", "type"}, fallback: "kind"}
	txnAmt  = field{patterns: []string{"so tien", "amount", "tien"}, fallback: "amount"}
	txnNote = field{patterns: []string{"ghi chu", "note"}, fallback: "note"}
	txnTime = field{patterns: []string{"thoi gian", "ngay", "timestamp", "date"}, fallback: "timestamp"}
)

// MenuItems shapes menu rows. Rows lacking a resolvable id or name are
// dropped silently; the remote emits incomplete rows routinely.
func MenuItems(rows []remote.Row) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		id, ok := menuID.str(row)
		if !ok {
			continue
		}
		name, ok := menuName.str(row)
		if !ok {
			continue
		}
		item := domain.MenuItem{ID: id, Name: name}
		if v, ok := menuPrice.lookup(row); ok {
			item.Price = asMoney(v)
		}
		item.Category, _ = menuGroup.str(row)
		if v, ok := stockFlag.lookup(row); ok {
			item.IsOutOfStock = asFlag(v)
		}
		if v, ok := customFlag.lookup(row); ok {
			item.HasCustomizations = asFlag(v)
		}
		items = append(items, item)
	}
	return items
}

// InventoryRecords shapes material rows from the inventory feed.
func InventoryRecords(rows []remote.Row) []domain.InventoryRecord {
	recs := make([]domain.InventoryRecord, 0, len(rows))
	for _, row := range rows {
		id, ok := invID.str(row)
		if !ok {
			continue
		}
		name, ok := invName.str(row)
		if !ok {
			continue
		}
		rec := domain.InventoryRecord{ID: id, Name: name}
		if v, ok := invQty.lookup(row); ok {
			rec.Quantity = asInt(v)
		}
		recs = append(recs, rec)
	}
	return recs
}

// Transactions shapes finance-report rows.
func Transactions(rows []remote.Row) []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		id, ok := txnID.str(row)
		if !ok {
			continue
		}
		t := domain.Transaction{ID: id}
		t.Kind, _ = txnKind.str(row)
		if v, ok := txnAmt.lookup(row); ok {
			t.Amount = asMoney(v)
		}
		t.Note, _ = txnNote.str(row)
		if v, ok := txnTime.lookup(row); ok {
			t.Timestamp = parseTime(v)
		}
		txns = append(txns, t)
	}
	return txns
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	case float64:
		// Epoch milliseconds for plausible modern timestamps, else seconds.
		if t > 1e12 {
			return time.UnixMilli(int64(t))
		}
		if t > 0 {
			return time.Unix(int64(t), 0)
		}
	}
	return time.Time{}
}
