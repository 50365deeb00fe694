package handler

import (
	"errors"

	"github.com/careerdock/jobportal/internal/api/middleware"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/gofiber/fiber/v3"
)

// mapServiceError translates the service error taxonomy to transport
// statuses. Anything outside the taxonomy is an internal fault.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", err)
	case errors.Is(err, models.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, models.ErrInvalidPolicy):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown matching policy", err)
	case errors.Is(err, models.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", err)
	case errors.Is(err, models.ErrInvalidState):
		return middleware.NewAppError(fiber.StatusConflict, "Posting already moderated", err)
	case errors.Is(err, models.ErrNoResumeOnFile):
		return middleware.NewAppError(fiber.StatusConflict, "No resume on file for session", err)
	case errors.Is(err, models.ErrNoReconcilableMatches):
		return middleware.NewAppError(fiber.StatusNotFound, "No matches available", err)
	case errors.Is(err, models.ErrUnsupportedMediaType):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported resume file type", err)
	case errors.Is(err, models.ErrPayloadTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file too large", err)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return middleware.NewAppError(fiber.StatusBadGateway, "Scoring engine unavailable", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
}

func requireActor(c fiber.Ctx) (models.Actor, error) {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return models.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return actor, nil
}
