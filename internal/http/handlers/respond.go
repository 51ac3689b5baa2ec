package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cafepos/internal/domain"
	"cafepos/internal/gateway"
	"cafepos/internal/remote"
	syncer "cafepos/internal/sync"
)

// writeMutationError maps gateway/remote failures onto JSON responses. The
// server's own message is surfaced verbatim for rejections so the operator
// sees what the backend said ("Hết hàng", not a generic 4xx).
func writeMutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gateway.ErrUnknownOrder):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrTerminalOrder):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gateway.ErrEmptyCancelPayload), errors.Is(err, gateway.ErrEmptyOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	switch remote.CategoryOf(err) {
	case remote.CategoryRejected:
		msg := remote.MessageOf(err)
		if msg == "" {
			msg = "mutation rejected"
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": msg})
	case remote.CategoryBusy:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "system busy, retry shortly"})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not reach the order service"})
	}
}

func writeFetchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, syncer.ErrFetchInFlight) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a refresh is already running"})
	}
	if remote.CategoryOf(err) == remote.CategoryBusy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "system busy, retry shortly"})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "refresh failed"})
}
