package normalize

import (
	"testing"

	"cafepos/internal/remote"
)

func TestFoldStripsDiacritics(t *testing.T) {
	cases := map[string]string{
		"Giá Bán":    "gia ban",
		"Tên Món":    "ten mon",
		"Đơn Giá":    "don gia",
		"price":      "price",
		"SỐ LƯỢNG":   "so luong",
		"Trạng Thái": "trang thai",
	}
	for in, want := range cases {
		if got := fold(in); got != want {
			t.Errorf("fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMenuItemsKeyVariance(t *testing.T) {
	rows := []remote.Row{
		{"Mã Món": "M1", "Tên Món": "Trà sữa", "Giá Bán": "35.000", "Danh Mục": "Trà"},
		{"id": "M2", "name": "Cà phê đen", "price": float64(20000)},
	}
	items := MenuItems(rows)
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].ID != "M1" || items[0].Price != 35000 || items[0].Category != "Trà" {
		t.Fatalf("bad first item: %+v", items[0])
	}
	if items[1].ID != "M2" || items[1].Price != 20000 {
		t.Fatalf("bad second item: %+v", items[1])
	}
}

func TestMenuItemsDropUnresolvable(t *testing.T) {
	rows := []remote.Row{
		{"Giá Bán": "10000"},             // no id, no name
		{"id": "M1"},                     // no name
		{"id": "M2", "name": "Bạc xỉu"},  // ok
		{"name": "Trà đào"},              // no id
	}
	items := MenuItems(rows)
	if len(items) != 1 || items[0].ID != "M2" {
		t.Fatalf("want only M2, got %+v", items)
	}
}

func TestMenuItemsStockAndCustomFlags(t *testing.T) {
	rows := []remote.Row{
		{"id": "M1", "name": "Trà sữa", "Hết Hàng": "TRUE", "Tùy Chỉnh": "x"},
		{"id": "M2", "name": "Cà phê", "Hết Hàng": false},
	}
	items := MenuItems(rows)
	if !items[0].IsOutOfStock || !items[0].HasCustomizations {
		t.Fatalf("flags not parsed: %+v", items[0])
	}
	if items[1].IsOutOfStock {
		t.Fatalf("M2 must be in stock: %+v", items[1])
	}
}

func TestInventoryRecords(t *testing.T) {
	rows := []remote.Row{
		{"Mã Nguyên Liệu": "NL1", "Tên Nguyên Liệu": "Sữa đặc", "Tồn Kho": float64(-2)},
		{"nothing": "here"},
	}
	recs := InventoryRecords(rows)
	if len(recs) != 1 {
		t.Fatalf("want 1 record, got %d", len(recs))
	}
	if recs[0].ID != "NL1" || recs[0].Quantity != -2 {
		t.Fatalf("bad record: %+v", recs[0])
	}
}

func TestOrdersDistinctIDs(t *testing.T) {
	rows := []remote.Row{
		{"Mã Đơn": "A", "Tên Khách": "Anh Tú", "Tên Món": "Trà sữa", "Số Lượng": float64(1)},
		{"Mã Đơn": "B", "Tên Khách": "Chị Hoa", "Tên Món": "Cà phê", "Số Lượng": float64(2)},
		{"Mã Đơn": "A", "Tên Khách": "SHOULD BE IGNORED", "Tên Món": "Bạc xỉu", "Số Lượng": float64(1)},
	}
	orders := Orders(rows)
	if len(orders) != 2 {
		t.Fatalf("want 2 orders, got %d", len(orders))
	}
	// first-seen-wins header
	if orders[0].OrderID != "A" || orders[0].CustomerName != "Anh Tú" {
		t.Fatalf("header must come from first row: %+v", orders[0])
	}
	if len(orders[0].Items) != 2 {
		t.Fatalf("order A wants 2 lines, got %d", len(orders[0].Items))
	}
}

func TestOrdersHeaderOnlyRowNoLine(t *testing.T) {
	rows := []remote.Row{
		{"Mã Đơn": "A", "Tên Khách": "Tú", "Tổng Tiền": "50000"},
	}
	orders := Orders(rows)
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
	if len(orders[0].Items) != 0 {
		t.Fatalf("header-only row must not contribute a line: %+v", orders[0].Items)
	}
	if orders[0].Total != 50000 {
		t.Fatalf("want total 50000, got %d", orders[0].Total)
	}
}

// Scenario from the sheet: two rows for order A assemble into one order
// with total carried by the header and two lines.
func TestOrdersScenarioTeaMilk(t *testing.T) {
	rows := []remote.Row{
		{"orderId": "A", "itemName": "Tea", "quantity": float64(2), "total": float64(50000), "timestamp": "2026-08-30 09:15:00"},
		{"orderId": "A", "itemName": "Milk", "quantity": float64(1)},
	}
	orders := Orders(rows)
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
	o := orders[0]
	if o.OrderID != "A" || o.Total != 50000 {
		t.Fatalf("bad header: %+v", o)
	}
	if len(o.Items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(o.Items))
	}
	if o.Items[0].Name != "Tea" || o.Items[0].Quantity != 2 {
		t.Fatalf("bad first line: %+v", o.Items[0])
	}
	if o.Items[1].Name != "Milk" || o.Items[1].Quantity != 1 {
		t.Fatalf("bad second line: %+v", o.Items[1])
	}
	if o.Timestamp.IsZero() {
		t.Fatal("timestamp must parse")
	}
}

func TestOrdersStatusAndPayment(t *testing.T) {
	rows := []remote.Row{
		{"Mã Đơn": "A", "Trạng Thái": "Đang pha chế", "Phương Thức Thanh Toán": "Chuyển khoản", "Trạng Thái Thanh Toán": "Đã thanh toán"},
		{"Mã Đơn": "B", "Trạng Thái": "Chờ xác nhận", "Phương Thức Thanh Toán": "Tiền mặt", "Trạng Thái Thanh Toán": "Chưa thanh toán"},
		{"Mã Đơn": "C", "Trạng Thái": "Đã hủy"},
	}
	orders := Orders(rows)
	if orders[0].OrderStatus != "InProgress" || orders[0].PaymentMethod != "Transfer" || orders[0].PaymentStatus != "Paid" {
		t.Fatalf("bad order A: %+v", orders[0])
	}
	if orders[1].OrderStatus != "Pending" || orders[1].PaymentMethod != "Cash" || orders[1].PaymentStatus != "Unpaid" {
		t.Fatalf("bad order B: %+v", orders[1])
	}
	if orders[2].OrderStatus != "Cancelled" {
		t.Fatalf("bad order C: %+v", orders[2])
	}
}

func TestOrdersNoteColumns(t *testing.T) {
	// Order-level and line-level note columns side by side resolve to their
	// own fields.
	rows := []remote.Row{
		{"Mã Đơn": "A", "Tên Món": "Trà Đào", "Ghi Chú": "mang đi", "Ghi Chú Món": "ít đá"},
	}
	orders := Orders(rows)
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
	if orders[0].Notes != "mang đi" {
		t.Fatalf("order note lost: %+v", orders[0])
	}
	if len(orders[0].Items) != 1 || orders[0].Items[0].Note != "ít đá" {
		t.Fatalf("bad line note: %+v", orders[0].Items)
	}

	// A lone order-level note column stays on the header and does not leak
	// onto every line.
	rows = []remote.Row{
		{"Mã Đơn": "B", "Tên Món": "Cà Phê", "Ghi Chú": "giao trước 9h"},
		{"Mã Đơn": "B", "Tên Món": "Trà Sữa", "Ghi Chú": "giao trước 9h"},
	}
	orders = Orders(rows)
	if orders[0].Notes != "giao trước 9h" {
		t.Fatalf("order note lost: %+v", orders[0])
	}
	for _, l := range orders[0].Items {
		if l.Note != "" {
			t.Fatalf("order note leaked onto a line: %+v", l)
		}
	}
}

func TestOrdersRowWithoutIDDropped(t *testing.T) {
	rows := []remote.Row{
		{"Tên Món": "Trà sữa", "Số Lượng": float64(1)},
	}
	if orders := Orders(rows); len(orders) != 0 {
		t.Fatalf("row without order id must be dropped, got %+v", orders)
	}
}

func TestTransactions(t *testing.T) {
	rows := []remote.Row{
		{"Mã Giao Dịch": "T1", "Loại": "thu", "Số Tiền": "120.000", "Ghi Chú": "bán hàng"},
		{"Loại": "chi"}, // no id -> dropped
	}
	txns := Transactions(rows)
	if len(txns) != 1 || txns[0].Amount != 120000 || txns[0].Kind != "thu" {
		t.Fatalf("bad transactions: %+v", txns)
	}
}
