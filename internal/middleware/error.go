package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nexus-dashboard/internal/service/analytics"
	"nexus-dashboard/internal/service/auth"
	"nexus-dashboard/internal/service/media"
	"nexus-dashboard/internal/service/persistence"
	"nexus-dashboard/internal/service/reconcile"
	"nexus-dashboard/internal/service/workspace"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var errorStatus = []struct {
	err  error
	code int
}{
	{workspace.ErrUserNotFound, fiber.StatusNotFound},
	{workspace.ErrProjectNotFound, fiber.StatusNotFound},
	{workspace.ErrClientNotFound, fiber.StatusNotFound},
	{reconcile.ErrItemNotFound, fiber.StatusNotFound},
	{workspace.ErrDuplicateUsername, fiber.StatusConflict},
	{workspace.ErrNotAssigned, fiber.StatusForbidden},
	{workspace.ErrNotRecipient, fiber.StatusForbidden},
	{workspace.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized},
	{media.ErrStorageUnavailable, fiber.StatusServiceUnavailable},
	{media.ErrKeyNotAllowed, fiber.StatusForbidden},
	{workspace.ErrEmptyProjectName, fiber.StatusBadRequest},
	{workspace.ErrEmptyClientName, fiber.StatusBadRequest},
	{workspace.ErrEmptyUsername, fiber.StatusBadRequest},
	{workspace.ErrEmptyMessage, fiber.StatusBadRequest},
	{workspace.ErrNegativeCost, fiber.StatusBadRequest},
	{workspace.ErrNegativePrice, fiber.StatusBadRequest},
	{workspace.ErrInvalidQuantity, fiber.StatusBadRequest},
	{workspace.ErrInvalidRole, fiber.StatusBadRequest},
	{workspace.ErrInvalidSaleStatus, fiber.StatusBadRequest},
	{workspace.ErrInvalidWorkerStatus, fiber.StatusBadRequest},
	{workspace.ErrInvalidGoal, fiber.StatusBadRequest},
	{workspace.ErrInvalidRecipient, fiber.StatusBadRequest},
	{workspace.ErrInvalidLanguage, fiber.StatusBadRequest},
	{reconcile.ErrInvalidStatus, fiber.StatusBadRequest},
	{analytics.ErrUnknownRange, fiber.StatusBadRequest},
	{persistence.ErrInvalidImport, fiber.StatusBadRequest},
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else if mapped, ok := statusFor(err); ok {
		code = mapped
		message = err.Error()
	}

	switch code {
	case fiber.StatusBadRequest:
		errorCode = "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		errorCode = "UNAUTHORIZED"
	case fiber.StatusForbidden:
		errorCode = "FORBIDDEN"
	case fiber.StatusNotFound:
		errorCode = "NOT_FOUND"
	case fiber.StatusConflict:
		errorCode = "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		errorCode = "VALIDATION_ERROR"
	case fiber.StatusServiceUnavailable:
		errorCode = "UNAVAILABLE"
	}

	traceID := uuid.New().String()[:8]
	if code == fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed (trace %s): %v", c.Method(), c.Path(), traceID, err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func statusFor(err error) (int, bool) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.code, true
		}
	}
	return 0, false
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
