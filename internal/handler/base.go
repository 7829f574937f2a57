// Package handler defines HTTP request handlers and related utilities.
package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *slog.Logger
}

// badInput logs a binding failure at debug level and returns the client
// facing error in its place.
func (h *BaseHandler) badInput(what string, err error, public *fiber.Error) error {
	h.logger.Debug("failed to bind "+what, "err", err)
	return public
}
