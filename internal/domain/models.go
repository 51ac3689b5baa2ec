package domain

import "time"

// MenuItem is one sellable item as rehydrated from the remote sheet.
// The whole list is replaced on every successful fetch; items are never
// patched in place.
type MenuItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Price             int64  `json:"price"` // integer currency units (VND)
	Category          string `json:"category,omitempty"`
	IsOutOfStock      bool   `json:"isOutOfStock"`
	HasCustomizations bool   `json:"hasCustomizations"`
	InventoryQty      *int   `json:"inventoryQty,omitempty"`
}

// InventoryRecord is an ingredient/material row. Quantity may be negative
// transiently before the remote reconciles a stock receipt.
type InventoryRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderLine is a snapshot of menu data at order time; it is not kept in
// sync if the menu later changes price or name.
type OrderLine struct {
	ID          string   `json:"id"` // menu item id
	CartItemID  string   `json:"cartItemId,omitempty"`
	Name        string   `json:"name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unitPrice"`
	Size        string   `json:"size,omitempty"`
	Toppings    []string `json:"toppings,omitempty"`
	Note        string   `json:"note,omitempty"`
	Temperature string   `json:"temperature,omitempty"`
	SugarLevel  string   `json:"sugarLevel,omitempty"`
	IceLevel    string   `json:"iceLevel,omitempty"`
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentTransfer PaymentMethod = "Transfer"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusAccepted   OrderStatus = "Accepted"
	StatusInProgress OrderStatus = "InProgress"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Order is an aggregate assembled from the remote's flat line rows.
// OrderID is client-generated at creation time and never reused; Total is
// carried by the header fields, not recomputed from lines.
type Order struct {
	OrderID       string        `json:"orderId"`
	CustomerName  string        `json:"customerName"`
	PhoneNumber   string        `json:"phoneNumber,omitempty"`
	TableNumber   string        `json:"tableNumber,omitempty"`
	Items         []OrderLine   `json:"items"`
	Total         int64         `json:"total"`
	Timestamp     time.Time     `json:"timestamp"`
	Notes         string        `json:"notes,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// Transaction is one finance-report row (income or expense).
type Transaction struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind,omitempty"` // thu (income) | chi (expense)
	Amount    int64     `json:"amount"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
