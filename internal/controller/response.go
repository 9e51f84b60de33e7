package controller

import (
	"errors"

	"rbac-chatbot-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// errorJSON maps the domain error taxonomy onto HTTP statuses. Internal
// detail stays server-side; the client only ever sees the typed message.
func errorJSON(ctx *fiber.Ctx, err error) error {
	var forbidden *apperrors.ForbiddenError
	var notFound *apperrors.PartitionNotFoundError
	var internal *apperrors.InternalError

	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.As(err, &forbidden):
		status = fiber.StatusForbidden
		message = forbidden.Error()
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
		message = notFound.Error()
	case errors.As(err, &internal):
		// opaque by contract
	}

	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    status,
		"message": message,
	})
}

func okJSON(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	})
}
