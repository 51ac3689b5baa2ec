package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cafepos/internal/domain"
	"cafepos/internal/gateway"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
	"cafepos/internal/validate"
)

type MenuHandler struct {
	Store   *store.Store
	Gateway *gateway.Gateway
}

func (h *MenuHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Store.Menu())
}

type menuItemRequest struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Price             int64  `json:"price"`
	Category          string `json:"category"`
	IsOutOfStock      bool   `json:"isOutOfStock"`
	HasCustomizations bool   `json:"hasCustomizations"`
}

func (h *MenuHandler) parse(c *fiber.Ctx) (domain.MenuItem, bool) {
	var req menuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.MenuItem{}, false
	}
	if req.Name == "" || req.Price < 0 {
		return domain.MenuItem{}, false
	}
	return domain.MenuItem{
		ID:                req.ID,
		Name:              req.Name,
		Price:             req.Price,
		Category:          req.Category,
		IsOutOfStock:      req.IsOutOfStock,
		HasCustomizations: req.HasCustomizations,
	}, true
}

func (h *MenuHandler) Create(c *fiber.Ctx) error {
	item, ok := h.parse(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid menu item"})
	}
	if err := h.Gateway.AddMenuItem(c.Context(), item); err != nil {
		applog.Error(c, "menu.add.fail", err, nil)
		return writeMutationError(c, err)
	}
	applog.Audit(c, "menu.add", map[string]any{"name": item.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	item, ok := h.parse(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid menu item"})
	}
	item.ID = id
	if err := h.Gateway.EditMenuItem(c.Context(), item); err != nil {
		applog.Error(c, "menu.edit.fail", err, map[string]any{"id": id})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "menu.edit", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Gateway.DeleteMenuItem(c.Context(), id); err != nil {
		applog.Error(c, "menu.delete.fail", err, map[string]any{"id": id})
		return writeMutationError(c, err)
	}
	applog.Audit(c, "menu.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}
