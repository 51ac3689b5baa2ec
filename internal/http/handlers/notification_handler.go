package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "cafepos/internal/log"
	"cafepos/internal/repos"
	"cafepos/internal/validate"
	"cafepos/internal/ws"
)

type NotificationHandler struct {
	Hub   *ws.Hub
	Notes *repos.NotificationRepo
}

// List returns recent relay notifications minus the ones the operator has
// dismissed; clients call it on reconnect before joining the websocket.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	cleared, err := h.Notes.ClearedIDs()
	if err != nil {
		applog.Error(c, "notifications.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load notifications"})
	}
	return c.JSON(h.Hub.Recent(cleared))
}

func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Notes.MarkCleared(id); err != nil {
		applog.Error(c, "notifications.clear", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not clear notification"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
