// Package gateway issues state-changing requests against the remote store.
// The remote is the single source of truth: every successful mutation is
// followed by a forced resynchronization, and no local state is patched
// optimistically beyond the display-continuity order snapshot.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cafepos/internal/domain"
	applog "cafepos/internal/log"
	"cafepos/internal/remote"
	"cafepos/internal/store"
	syncer "cafepos/internal/sync"
)

var (
	ErrUnknownOrder = errors.New("order not found in current snapshot")
	// ErrEmptyCancelPayload: cancelling must carry the order's line items so
	// the remote can reverse its inventory decrement. An order with no lines
	// cannot be cancelled through this path.
	ErrEmptyCancelPayload = errors.New("cancellation requires the order's line items")
	ErrEmptyOrder         = errors.New("order has no line items")
)

// Mutator is the write side of the remote service.
type Mutator interface {
	Mutate(ctx context.Context, action string, payload map[string]any) error
}

// Resyncer forces a refresh after successful mutations.
type Resyncer interface {
	Refresh(ctx context.Context, mode syncer.Mode) error
}

// Snapshots persists the last-submitted order for display continuity
// across restarts; nil disables persistence.
type Snapshots interface {
	SaveLastOrder(o domain.Order) error
}

type Gateway struct {
	remote    Mutator
	sched     Resyncer
	store     *store.Store
	snapshots Snapshots
}

func New(m Mutator, r Resyncer, st *store.Store, snaps Snapshots) *Gateway {
	return &Gateway{remote: m, sched: r, store: st, snapshots: snaps}
}

// OrderDraft is a submitted cart.
type OrderDraft struct {
	CustomerName  string
	PhoneNumber   string
	TableNumber   string
	Notes         string
	PaymentMethod domain.PaymentMethod
	Items         []domain.OrderLine
}

// PlaceOrder creates an order with a client-generated code, pushes it to
// the remote, keeps an optimistic local copy for display continuity, and
// resyncs. Total is computed from the lines at creation time and carried
// with the header from then on.
func (g *Gateway) PlaceOrder(ctx context.Context, draft OrderDraft) (domain.Order, error) {
	if len(draft.Items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	var total int64
	for _, line := range draft.Items {
		total += line.UnitPrice * int64(line.Quantity)
	}
	order := domain.Order{
		OrderID:       "DH-" + uuid.NewString()[:8],
		CustomerName:  draft.CustomerName,
		PhoneNumber:   draft.PhoneNumber,
		TableNumber:   draft.TableNumber,
		Items:         draft.Items,
		Total:         total,
		Timestamp:     time.Now(),
		Notes:         draft.Notes,
		PaymentMethod: draft.PaymentMethod,
		OrderStatus:   domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.PaymentCash
	}

	payload := map[string]any{
		"orderId":       order.OrderID,
		"customerName":  order.CustomerName,
		"phoneNumber":   order.PhoneNumber,
		"tableNumber":   order.TableNumber,
		"items":         linePayload(order.Items),
		"total":         order.Total,
		"timestamp":     order.Timestamp.Format(time.RFC3339),
		"notes":         order.Notes,
		"paymentMethod": string(order.PaymentMethod),
		"orderStatus":   string(order.OrderStatus),
		"paymentStatus": string(order.PaymentStatus),
	}
	if err := g.remote.Mutate(ctx, remote.ActionCreateOrder, payload); err != nil {
		return domain.Order{}, err
	}

	g.store.SetLastSubmitted(order)
	if g.snapshots != nil {
		if err := g.snapshots.SaveLastOrder(order); err != nil {
			applog.Error(nil, "order.snapshot.save", err, map[string]any{"order_id": order.OrderID})
		}
	}
	g.store.Publish(store.Event{Type: store.EventNewOrder, Order: &order})
	g.resync(ctx, "order.create")
	return order, nil
}

// UpdateOrderStatus applies a lifecycle transition through the remote.
// Cancellations carry the order's current lines so the remote can restore
// inventory it decremented at creation.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	cur, ok := g.store.OrderByID(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	if err := cur.Transition(next); err != nil {
		return fmt.Errorf("order %s: %w", orderID, err)
	}

	payload := map[string]any{
		"orderId":     orderID,
		"orderStatus": string(next),
	}
	if next == domain.StatusCompleted {
		// Completion settles the bill regardless of payment method.
		payload["paymentStatus"] = string(domain.PaymentPaid)
	}
	if next == domain.StatusCancelled {
		if len(cur.Items) == 0 {
			return fmt.Errorf("order %s: %w", orderID, ErrEmptyCancelPayload)
		}
		payload["items"] = linePayload(cur.Items)
	}
	if err := g.remote.Mutate(ctx, remote.ActionUpdateOrderStatus, payload); err != nil {
		return err
	}
	g.resync(ctx, "order.status")
	return nil
}

func (g *Gateway) CancelOrder(ctx context.Context, orderID string) error {
	return g.UpdateOrderStatus(ctx, orderID, domain.StatusCancelled)
}

// EditOrder is cancel-then-recreate: the remote has no amendment verb. The
// old order is cancelled and its lines are returned as the seed for a new
// cart; nothing is recreated until the caller submits again.
func (g *Gateway) EditOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	cur, ok := g.store.OrderByID(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	if err := g.CancelOrder(ctx, orderID); err != nil {
		return nil, err
	}
	seed := make([]domain.OrderLine, len(cur.Items))
	copy(seed, cur.Items)
	return seed, nil
}

func (g *Gateway) AdjustInventory(ctx context.Context, materialID string, quantity int) error {
	err := g.remote.Mutate(ctx, remote.ActionUpdateInventory, map[string]any{
		"id":       materialID,
		"quantity": quantity,
	})
	if err != nil {
		return err
	}
	g.resync(ctx, "inventory.adjust")
	return nil
}

// StockReceiptLine is one received material on a stock-in slip.
type StockReceiptLine struct {
	MaterialID string `json:"id"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitCost   int64  `json:"unitCost,omitempty"`
}

func (g *Gateway) CreateStockReceipt(ctx context.Context, lines []StockReceiptLine, note string) error {
	if len(lines) == 0 {
		return errors.New("stock receipt has no lines")
	}
	err := g.remote.Mutate(ctx, remote.ActionCreateStockIn, map[string]any{
		"items": lines,
		"note":  note,
	})
	if err != nil {
		return err
	}
	g.resync(ctx, "inventory.receipt")
	return nil
}

func (g *Gateway) AddMenuItem(ctx context.Context, item domain.MenuItem) error {
	return g.menuMutation(ctx, remote.ActionAddMenuItem, item)
}

func (g *Gateway) EditMenuItem(ctx context.Context, item domain.MenuItem) error {
	return g.menuMutation(ctx, remote.ActionEditMenuItem, item)
}

func (g *Gateway) menuMutation(ctx context.Context, action string, item domain.MenuItem) error {
	err := g.remote.Mutate(ctx, action, map[string]any{
		"id":                item.ID,
		"name":              item.Name,
		"price":             item.Price,
		"category":          item.Category,
		"isOutOfStock":      item.IsOutOfStock,
		"hasCustomizations": item.HasCustomizations,
	})
	if err != nil {
		return err
	}
	g.resync(ctx, "menu.edit")
	return nil
}

func (g *Gateway) DeleteMenuItem(ctx context.Context, id string) error {
	if err := g.remote.Mutate(ctx, remote.ActionDeleteMenuItem, map[string]any{"id": id}); err != nil {
		return err
	}
	g.resync(ctx, "menu.delete")
	return nil
}

func (g *Gateway) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	err := g.remote.Mutate(ctx, remote.ActionCreateTransaction, map[string]any{
		"id":        t.ID,
		"kind":      t.Kind,
		"amount":    t.Amount,
		"note":      t.Note,
		"timestamp": t.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	g.resync(ctx, "finance.create")
	return nil
}

func (g *Gateway) DeleteTransaction(ctx context.Context, id string) error {
	if err := g.remote.Mutate(ctx, remote.ActionDeleteTransaction, map[string]any{"id": id}); err != nil {
		return err
	}
	g.resync(ctx, "finance.delete")
	return nil
}

// SyncDatabase asks the remote to rebuild its own denormalized sheets.
func (g *Gateway) SyncDatabase(ctx context.Context) error {
	if err := g.remote.Mutate(ctx, remote.ActionSyncDatabase, nil); err != nil {
		return err
	}
	g.resync(ctx, "remote.syncdb")
	return nil
}

// resync refetches after a successful mutation so callers observe the
// remote's view. The mutation already succeeded, so a resync failure is
// logged rather than returned; the in-flight guard may also drop it, in
// which case the running fetch surfaces the state shortly after.
func (g *Gateway) resync(ctx context.Context, action string) {
	if err := g.sched.Refresh(ctx, syncer.Resync); err != nil {
		applog.Error(nil, action+".resync", err, nil)
	}
}

// linePayload re-expresses lines in the remote's item payload shape.
func linePayload(lines []domain.OrderLine) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		m := map[string]any{
			"id":        l.ID,
			"name":      l.Name,
			"quantity":  l.Quantity,
			"unitPrice": l.UnitPrice,
		}
		if l.Size != "" {
			m["size"] = l.Size
		}
		if len(l.Toppings) > 0 {
			m["toppings"] = l.Toppings
		}
		if l.Note != "" {
			m["note"] = l.Note
		}
		if l.Temperature != "" {
			m["temperature"] = l.Temperature
		}
		if l.SugarLevel != "" {
			m["sugarLevel"] = l.SugarLevel
		}
		if l.IceLevel != "" {
			m["iceLevel"] = l.IceLevel
		}
		out = append(out, m)
	}
	return out
}
