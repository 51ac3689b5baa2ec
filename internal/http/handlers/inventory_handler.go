package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cafepos/internal/gateway"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
	"cafepos/internal/validate"
)

type InventoryHandler struct {
	Store   *store.Store
	Gateway *gateway.Gateway
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Store.Inventory())
}

type adjustRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid material id"})
	}
	if err := h.Gateway.AdjustInventory(c.Context(), id, req.Quantity); err != nil {
		applog.Error(c, "inventory.adjust.fail", err, map[string]any{"id": id})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "inventory.adjust", map[string]any{"id": id, "quantity": req.Quantity})
	return c.JSON(fiber.Map{"ok": true})
}

type receiptRequest struct {
	Items []gateway.StockReceiptLine `json:"items"`
	Note  string                     `json:"note"`
}

// Receipt records a stock-in slip (nhập kho) against the remote.
func (h *InventoryHandler) Receipt(c *fiber.Ctx) error {
	var req receiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "receipt has no lines"})
	}
	if err := h.Gateway.CreateStockReceipt(c.Context(), req.Items, req.Note); err != nil {
		applog.Error(c, "inventory.receipt.fail", err, nil)
		return writeMutationError(c, err)
	}
	applog.Audit(c, "inventory.receipt", map[string]any{"lines": len(req.Items)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}
