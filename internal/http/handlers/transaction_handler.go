package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cafepos/internal/domain"
	"cafepos/internal/gateway"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
	"cafepos/internal/validate"
)

type TransactionHandler struct {
	Store   *store.Store
	Gateway *gateway.Gateway
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Store.Transactions())
}

type transactionRequest struct {
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Kind != "thu" && req.Kind != "chi" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be thu or chi"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
	}
	t := domain.Transaction{
		ID:        "GD-" + uuid.NewString()[:8],
		Kind:      req.Kind,
		Amount:    req.Amount,
		Note:      req.Note,
		Timestamp: time.Now(),
	}
	if err := h.Gateway.CreateTransaction(c.Context(), t); err != nil {
		applog.Error(c, "finance.create.fail", err, nil)
		return writeMutationError(c, err)
	}
	applog.Audit(c, "finance.create", map[string]any{"id": t.ID, "kind": t.Kind, "amount": t.Amount})
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Gateway.DeleteTransaction(c.Context(), id); err != nil {
		applog.Error(c, "finance.delete.fail", err, map[string]any{"id": id})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "finance.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}
