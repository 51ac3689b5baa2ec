package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cafepos/internal/domain"
	"cafepos/internal/gateway"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
	"cafepos/internal/validate"
)

type OrderHandler struct {
	Store   *store.Store
	Gateway *gateway.Gateway
}

// List returns the display view: remote-confirmed orders plus the
// optimistic just-submitted one while the remote hasn't echoed it yet.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Store.DisplayOrders())
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, ok := h.Store.OrderByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	return c.JSON(o)
}

type placeOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	PhoneNumber   string             `json:"phoneNumber"`
	TableNumber   string             `json:"tableNumber"`
	Notes         string             `json:"notes"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []domain.OrderLine `json:"items"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	name, ok := validate.Name(req.CustomerName)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer name must be 1-40 characters"})
	}
	phone, ok := validate.Phone(req.PhoneNumber)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}
	table, ok := validate.Table(req.TableNumber)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid table number"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order has no items"})
	}
	for i := range req.Items {
		req.Items[i].Quantity = validate.Qty(req.Items[i].Quantity)
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method != domain.PaymentCash && method != domain.PaymentTransfer {
		method = domain.PaymentCash
	}

	order, err := h.Gateway.PlaceOrder(c.Context(), gateway.OrderDraft{
		CustomerName:  name,
		PhoneNumber:   phone,
		TableNumber:   table,
		Notes:         req.Notes,
		PaymentMethod: method,
		Items:         req.Items,
	})
	if err != nil {
		applog.Error(c, "order.place.fail", err, nil)
		return writeMutationError(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": order.OrderID, "total": order.Total})
	return c.Status(fiber.StatusCreated).JSON(order)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	next := domain.OrderStatus(req.Status)
	switch next {
	case domain.StatusAccepted, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}

	if err := h.Gateway.UpdateOrderStatus(c.Context(), id, next); err != nil {
		applog.Error(c, "order.status.fail", err, map[string]any{"order_id": id, "next": req.Status})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "next": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

// Edit cancels the order and hands back its lines as a new cart seed;
// there is no in-place amendment.
func (h *OrderHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	seed, err := h.Gateway.EditOrder(c.Context(), id)
	if err != nil {
		applog.Error(c, "order.edit.fail", err, map[string]any{"order_id": id})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "order.edit", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"cart": seed})
}
