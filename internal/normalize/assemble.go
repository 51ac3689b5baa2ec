package normalize

import (
	"strings"

	"cafepos/internal/domain"
	"cafepos/internal/remote"
)

var (
	ordID       = field{patterns: []string{"ma don", "order id", "orderid"}, fallback: "orderId"}
	ordCustomer = field{patterns: []string{"ten khach", "khach hang", "customer"}, fallback: "customerName"}
	ordPhone    = field{patterns: []string{"so dien thoai", "sdt", "phone"}, fallback: "phoneNumber"}
	ordTable    = field{patterns: []string{"so ban", "ban", "table"}, fallback: "tableNumber"}
	ordTotal    = field{patterns: []string{"tong tien", "thanh tien", "total"}, fallback: "total"}
	ordTime     = field{patterns: []string{"thoi gian", "ngay tao", "timestamp"}, fallback: "timestamp"}
	ordNotes    = field{patterns: []string{"ghi chu don", "order note", "notes", "ghi chu"}, fallback: "notes"}
	ordPayWith  = field{patterns: []string{"phuong thuc thanh toan", "hinh thuc thanh toan", "payment method", "phuong thuc"}, fallback: "paymentMethod"}
	ordStatus   = field{patterns: []string{"trang thai don", "order status", "trang thai"}, fallback: "orderStatus"}
	ordPaid     = field{patterns: []string{"trang thai thanh toan", "payment status", "da thanh toan"}, fallback: "paymentStatus"}

	lineName  = field{patterns: []string{"ten mon", "item name", "mon"}, fallback: "itemName"}
	lineID    = field{patterns: []string{"ma mon", "item id"}, fallback: "itemId"}
	lineQty   = field{patterns: []string{"so luong", "quantity", "qty"}, fallback: "quantity"}
	linePrice = field{patterns: []string{"don gia", "unit price", "gia"}, fallback: "unitPrice"}
	lineSize  = field{patterns: []string{"kich co", "size"}, fallback: "size"}
	lineTops  = field{patterns: []string{"topping"}, fallback: "toppings"}
	// "ghi chu mon" only: a generic "ghi chu" column is the order note and
	// must not leak onto every line of the order.
	lineNote  = field{patterns: []string{"ghi chu mon"}, fallback: "note"}
	lineTemp  = field{patterns: []string{"nhiet do", "nong lanh", "temperature"}, fallback: "temperature"}
	lineSugar = field{patterns: []string{"muc duong", "duong", "sugar"}, fallback: "sugarLevel"}
	lineIce   = field{patterns: []string{"luong da", "muc da", "ice level"}, fallback: "iceLevel"}
)

// Orders folds flat line rows into Order aggregates. Every row carries both
// header and line columns; the header is taken from the first row seen for
// an order id, later rows only contribute lines. A row with no resolvable
// item name contributes no line. Output keeps first-seen id order.
func Orders(rows []remote.Row) []domain.Order {
	byID := make(map[string]*domain.Order)
	var seen []string

	for _, row := range rows {
		id, ok := ordID.str(row)
		if !ok {
			continue
		}
		o := byID[id]
		if o == nil {
			o = &domain.Order{
				OrderID:       id,
				Items:         []domain.OrderLine{},
				PaymentStatus: domain.PaymentUnpaid,
			}
			o.CustomerName, _ = ordCustomer.str(row)
			o.PhoneNumber, _ = ordPhone.str(row)
			o.TableNumber, _ = ordTable.str(row)
			if v, ok := ordTotal.lookup(row); ok {
				o.Total = asMoney(v)
			}
			if v, ok := ordTime.lookup(row); ok {
				o.Timestamp = parseTime(v)
			}
			o.Notes, _ = ordNotes.str(row)
			if s, ok := ordPayWith.str(row); ok {
				o.PaymentMethod = parsePaymentMethod(s)
			} else {
				o.PaymentMethod = domain.PaymentCash
			}
			if s, ok := ordStatus.str(row); ok {
				o.OrderStatus = parseOrderStatus(s)
			} else {
				o.OrderStatus = domain.StatusPending
			}
			if s, ok := ordPaid.str(row); ok {
				o.PaymentStatus = parsePaymentStatus(s)
			}
			byID[id] = o
			seen = append(seen, id)
		}

		// Header-only rows must not push a spurious empty line.
		name, ok := lineName.str(row)
		if !ok {
			continue
		}
		line := domain.OrderLine{Name: name, Quantity: 1}
		line.ID, _ = lineID.str(row)
		if v, ok := lineQty.lookup(row); ok {
			if q := asInt(v); q >= 1 {
				line.Quantity = q
			}
		}
		if v, ok := linePrice.lookup(row); ok {
			line.UnitPrice = asMoney(v)
		}
		line.Size, _ = lineSize.str(row)
		if v, ok := lineTops.lookup(row); ok {
			line.Toppings = asStrings(v)
		}
		line.Note, _ = lineNote.str(row)
		line.Temperature, _ = lineTemp.str(row)
		line.SugarLevel, _ = lineSugar.str(row)
		line.IceLevel, _ = lineIce.str(row)
		o.Items = append(o.Items, line)
	}

	out := make([]domain.Order, 0, len(seen))
	for _, id := range seen {
		out = append(out, *byID[id])
	}
	return out
}

func parseOrderStatus(s string) domain.OrderStatus {
	f := fold(s)
	switch {
	case containsAny(f, "hoan thanh", "complete", "done", "xong"):
		return domain.StatusCompleted
	case containsAny(f, "huy", "cancel"):
		return domain.StatusCancelled
	case containsAny(f, "dang pha", "dang lam", "dang thuc hien", "progress"):
		return domain.StatusInProgress
	case containsAny(f, "cho xac nhan", "pending", "moi"):
		return domain.StatusPending
	case containsAny(f, "xac nhan", "da nhan", "accept"):
		return domain.StatusAccepted
	default:
		return domain.StatusPending
	}
}

func parsePaymentMethod(s string) domain.PaymentMethod {
	if containsAny(fold(s), "chuyen khoan", "transfer", "bank", "ck") {
		return domain.PaymentTransfer
	}
	return domain.PaymentCash
}

func parsePaymentStatus(s string) domain.PaymentStatus {
	f := fold(s)
	if containsAny(f, "chua", "unpaid", "false") {
		return domain.PaymentUnpaid
	}
	if containsAny(f, "da thanh toan", "paid", "true", "roi") {
		return domain.PaymentPaid
	}
	return domain.PaymentUnpaid
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
