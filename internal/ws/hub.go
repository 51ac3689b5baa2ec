// Package ws is the same-process notification relay: connected POS screens
// hear about new orders (and stock-outs) from each other. No auth, no
// delivery guarantee, no cross-client ordering guarantee.
package ws

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"cafepos/internal/domain"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
)

const (
	TypeNewOrder        = "NEW_ORDER"
	TypeNewOrderNotify  = "NEW_ORDER_NOTIFICATION"
	TypeOutOfStockAlert = "OUT_OF_STOCK"
)

// Message is the relay wire format, both directions.
type Message struct {
	ID        string           `json:"id,omitempty"`
	Type      string           `json:"type"`
	Order     *domain.Order    `json:"order,omitempty"`
	Item      *domain.MenuItem `json:"item,omitempty"`
	Timestamp time.Time        `json:"timestamp,omitzero"`
}

// conn is the slice of *websocket.Conn the hub needs; tests substitute
// their own.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

const recentCap = 50

type Hub struct {
	register   chan conn
	unregister chan conn
	broadcast  chan Message

	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	clients map[conn]bool
	recent  []Message
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan conn),
		unregister: make(chan conn),
		broadcast:  make(chan Message, 16),
		done:       make(chan struct{}),
		clients:    make(map[conn]bool),
	}
}

// Run is the hub loop; start it in its own goroutine. It exits on Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				c.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.remember(msg)
			// All connected clients hear the broadcast, sender included.
			for c := range h.clients {
				if err := c.WriteJSON(msg); err != nil {
					applog.Error(nil, "ws.write", err, nil)
					c.Close()
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop ends the hub loop. Connected clients are not closed here; their
// read loops end when the underlying connections do.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) remember(msg Message) {
	h.recent = append(h.recent, msg)
	if len(h.recent) > recentCap {
		h.recent = h.recent[len(h.recent)-recentCap:]
	}
}

// Broadcast fans a message out to every connected client.
func (h *Hub) Broadcast(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	h.broadcast <- msg
}

// Recent returns buffered notifications, skipping ids the operator already
// cleared. Used for the reconnect snapshot.
func (h *Hub) Recent(cleared map[string]bool) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, 0, len(h.recent))
	for _, m := range h.recent {
		if m.ID != "" && cleared[m.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Handle serves one websocket client. A NEW_ORDER from any client is
// rebroadcast to all clients as NEW_ORDER_NOTIFICATION.
func (h *Hub) Handle(c *websocket.Conn) {
	h.register <- c
	defer func() { h.unregister <- c }()

	for {
		var in Message
		if err := c.ReadJSON(&in); err != nil {
			return
		}
		if in.Type == TypeNewOrder && in.Order != nil {
			h.Broadcast(Message{
				ID:    in.Order.OrderID,
				Type:  TypeNewOrderNotify,
				Order: in.Order,
			})
		}
	}
}

// RelayStore forwards store events into the relay so screens hear about
// locally-placed orders and stock-outs without a round trip.
func (h *Hub) RelayStore(st *store.Store) {
	events, cancel := st.Subscribe()
	defer cancel()
	for e := range events {
		msg := Message{Type: e.Type, Order: e.Order, Item: e.Item, Timestamp: e.Timestamp}
		switch {
		case e.Order != nil:
			msg.ID = e.Order.OrderID
		case e.Item != nil:
			msg.ID = "oos-" + e.Item.ID
		}
		h.Broadcast(msg)
	}
}
