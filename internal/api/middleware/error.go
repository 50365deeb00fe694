package middleware

import (
	"errors"

	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

// ErrorMiddleware is the outermost handler: it recovers panics and turns
// every error into the response envelope. Internal causes never reach the
// client body.
type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
					Errorf("panic recovered: %v", r)
				err = response.Error(c, fiber.StatusInternalServerError,
					response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, message := normalizeError(err)
		if status >= 500 {
			metrics.ErrorsCounter.WithLabelValues(logger.ErrorTypeHttp).Inc()
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
				Errorf("%v %v failed: %v", c.Method(), c.Path(), err)
		}
		return response.Error(c, status, message, nil)
	}
}

func normalizeError(err error) (int, string) {

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		// 502 stays visible so clients can tell engine outages from our own faults
		if status <= 0 || (status >= 500 && status != fiber.StatusBadGateway) {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		message := appErr.Message
		if message == "" {
			message = response.MessageBadRequest
		}
		return status, message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		return status, fiberErr.Message
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError
}
