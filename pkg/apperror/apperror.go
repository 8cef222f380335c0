package apperror

import (
	"fmt"

	"ligo-assistent/config"
	"ligo-assistent/pkg/apperror/status"
	"ligo-assistent/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

type SuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code status.ErrorCode, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: fmt.Sprintf("LA-%d", code),
	})
}

// Shorthands for common error responses
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, code, message)
}

func Unauthorized(module config.Module, c fiber.Ctx, message string) error {
	return WriteError(module, c, fiber.StatusUnauthorized, status.UnauthorizedAdminAccess, message)
}

func Unavailable(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusServiceUnavailable, code, message)
}

func InternalError(module config.Module, c fiber.Ctx, code status.ErrorCode, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, code, err.Error())
}

// Success writes a standardized JSON success response
func Success(c fiber.Ctx, response SuccessMessage) error {
	return c.Status(fiber.StatusOK).JSON(response)
}
