package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cafepos/internal/gateway"
	applog "cafepos/internal/log"
	"cafepos/internal/store"
	syncer "cafepos/internal/sync"
)

type StatusHandler struct {
	Store   *store.Store
	Sched   *syncer.Scheduler
	Gateway *gateway.Gateway
}

func (h *StatusHandler) Status(c *fiber.Ctx) error {
	st := h.Store.Status()
	return c.JSON(fiber.Map{
		"healthy":       st.Healthy,
		"loading":       st.Loading,
		"refreshing":    st.Refreshing,
		"lastSync":      st.LastSync,
		"errorCategory": st.ErrorCategory,
		"errorMessage":  st.ErrorMessage,
		"pollInterval":  h.Sched.Interval().Seconds(),
		"autoSync":      h.Sched.Active(),
	})
}

// Sync is the manual retry path: an explicit user action always runs the
// full fetch, regardless of the incremental rate floor.
func (h *StatusHandler) Sync(c *fiber.Ctx) error {
	if err := h.Sched.Refresh(c.Context(), syncer.Full); err != nil {
		applog.Error(c, "sync.manual.fail", err, nil)
		return writeFetchError(c, err)
	}
	applog.Info(c, "sync.manual", nil)
	return c.JSON(h.Store.Status())
}

// SyncDatabase asks the remote to rebuild its denormalized sheets, then
// refetches like any other mutation.
func (h *StatusHandler) SyncDatabase(c *fiber.Ctx) error {
	if err := h.Gateway.SyncDatabase(c.Context()); err != nil {
		applog.Error(c, "sync.database.fail", err, nil)
		return writeMutationError(c, err)
	}
	applog.Audit(c, "sync.database", nil)
	return c.JSON(fiber.Map{"ok": true})
}
