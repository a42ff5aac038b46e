package api

import (
	"errors"
	"log"

	"hello-ai-ui/internal/domain/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler is the last stop for errors a handler did not map itself.
// Only fiber errors keep their message; anything else may carry the backend
// address and is reduced to a generic one after logging.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := utils.StatusMessage(code)

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, entity.ErrBackendUnreachable):
		msg = entity.ErrBackendUnreachable.Error()
	}

	log.Printf("[HTTP] %d %s %s: %v", code, c.Method(), c.Path(), err)
	return c.Status(code).JSON(entity.ErrorBody{Error: msg})
}
