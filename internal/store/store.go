// Package store owns the process-wide view of remote truth. The fetch
// scheduler is the only writer; everything else reads snapshots or
// subscribes to events. Entity lists are replaced wholesale, never patched.
package store

import (
	"sync"
	"time"

	"cafepos/internal/domain"
)

// Event types fanned out to subscribers (and relayed to websocket clients).
const (
	EventNewOrder   = "NEW_ORDER_NOTIFICATION"
	EventOutOfStock = "OUT_OF_STOCK"
)

type Event struct {
	Type      string           `json:"type"`
	Order     *domain.Order    `json:"order,omitempty"`
	Item      *domain.MenuItem `json:"item,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Status is the connectivity view exposed to the UI shell.
type Status struct {
	Healthy       bool      `json:"healthy"`
	Loading       bool      `json:"loading"`    // full fetch in progress
	Refreshing    bool      `json:"refreshing"` // incremental fetch in progress
	LastSync      time.Time `json:"lastSync"`
	ErrorCategory string    `json:"errorCategory,omitempty"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
}

type Store struct {
	mu sync.RWMutex

	menu         []domain.MenuItem
	orders       []domain.Order
	inventory    []domain.InventoryRecord
	transactions []domain.Transaction

	// lastSubmitted is the optimistic copy of the most recent local order,
	// kept for display continuity until the remote echoes it back.
	lastSubmitted *domain.Order

	status Status

	subs    map[int]chan Event
	nextSub int
}

func New() *Store {
	return &Store{subs: make(map[int]chan Event)}
}

// ReplaceAll installs a fetched snapshot wholesale and marks connectivity
// healthy. The optimistic order is discarded once the remote contains a
// matching id: remote wins.
func (s *Store) ReplaceAll(menu []domain.MenuItem, orders []domain.Order, inv []domain.InventoryRecord, txns []domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = menu
	s.orders = orders
	s.inventory = inv
	s.transactions = txns
	s.status.Healthy = true
	s.status.ErrorCategory = ""
	s.status.ErrorMessage = ""
	s.status.LastSync = time.Now()

	if s.lastSubmitted != nil {
		for i := range orders {
			if orders[i].OrderID == s.lastSubmitted.OrderID {
				s.lastSubmitted = nil
				break
			}
		}
	}
}

// Fail records a categorized fetch failure without touching the last-known-
// good entity lists.
func (s *Store) Fail(category, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Healthy = false
	s.status.ErrorCategory = category
	s.status.ErrorMessage = message
}

// SetIndicator flips the loading (full) or refreshing (incremental)
// indicator; exactly one is in play per fetch.
func (s *Store) SetIndicator(full, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if full {
		s.status.Loading = on
	} else {
		s.status.Refreshing = on
	}
}

func (s *Store) Menu() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

func (s *Store) Inventory() []domain.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryRecord, len(s.inventory))
	copy(out, s.inventory)
	return out
}

func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Orders returns the remote-confirmed aggregates only.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// DisplayOrders prepends the optimistic just-submitted order while the
// remote has not echoed it back yet.
func (s *Store) DisplayOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders)+1)
	if s.lastSubmitted != nil {
		out = append(out, *s.lastSubmitted)
	}
	out = append(out, s.orders...)
	return out
}

func (s *Store) OrderByID(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].OrderID == id {
			return s.orders[i], true
		}
	}
	if s.lastSubmitted != nil && s.lastSubmitted.OrderID == id {
		return *s.lastSubmitted, true
	}
	return domain.Order{}, false
}

// LastSubmitted reports the optimistic order, if one is still pending echo.
func (s *Store) LastSubmitted() (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastSubmitted == nil {
		return domain.Order{}, false
	}
	return *s.lastSubmitted, true
}

func (s *Store) SetLastSubmitted(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := o
	s.lastSubmitted = &copied
}

func (s *Store) ClearLastSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSubmitted = nil
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Subscribe registers an event channel; the returned func cancels it.
// Sends never block: a slow consumer drops events rather than stalling the
// fetch path.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Store) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
