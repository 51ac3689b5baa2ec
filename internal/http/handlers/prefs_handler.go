package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "cafepos/internal/log"
	"cafepos/internal/repos"
	syncer "cafepos/internal/sync"
)

type PrefsHandler struct {
	Prefs *repos.PrefsRepo
	Sched *syncer.Scheduler
}

func (h *PrefsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"refreshInterval": h.Sched.Interval().Seconds(),
		"autoSync":        h.Sched.Active(),
	})
}

type prefsRequest struct {
	RefreshInterval *int  `json:"refreshInterval"` // seconds
	AutoSync        *bool `json:"autoSync"`
}

// Update persists preferences and applies them to the live scheduler.
func (h *PrefsHandler) Update(c *fiber.Ctx) error {
	var req prefsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.RefreshInterval != nil {
		if *req.RefreshInterval <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "refreshInterval must be positive"})
		}
		d := time.Duration(*req.RefreshInterval) * time.Second
		if err := h.Prefs.SetRefreshInterval(d); err != nil {
			applog.Error(c, "prefs.save", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save preferences"})
		}
		h.Sched.SetInterval(d)
	}
	if req.AutoSync != nil {
		if err := h.Prefs.SetAutoSync(*req.AutoSync); err != nil {
			applog.Error(c, "prefs.save", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save preferences"})
		}
		h.Sched.SetActive(*req.AutoSync)
	}
	applog.Audit(c, "prefs.update", map[string]any{
		"interval_s": h.Sched.Interval().Seconds(), "auto_sync": h.Sched.Active(),
	})
	return h.Get(c)
}
