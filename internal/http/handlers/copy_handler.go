package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "cafepos/internal/log"
	"cafepos/internal/repos"
	"cafepos/internal/validate"
)

// CopyHandler fronts the generated-copy cache. The UI shell generates the
// strings; this layer only remembers them across reloads.
type CopyHandler struct {
	Cache *repos.CopyRepo
}

func (h *CopyHandler) Get(c *fiber.Ctx) error {
	key, ok := validate.ID(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid key"})
	}
	body, found, err := h.Cache.Get(key)
	if err != nil {
		applog.Error(c, "copy.get", err, map[string]any{"key": key})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not read copy cache"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cached copy"})
	}
	return c.JSON(fiber.Map{"key": key, "body": body})
}

type copyRequest struct {
	Body string `json:"body"`
}

func (h *CopyHandler) Put(c *fiber.Ctx) error {
	key, ok := validate.ID(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid key"})
	}
	var req copyRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body is required"})
	}
	if err := h.Cache.Put(key, req.Body); err != nil {
		applog.Error(c, "copy.put", err, map[string]any{"key": key})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store copy"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
