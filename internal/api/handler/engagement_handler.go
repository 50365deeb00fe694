package handler

import (
	"context"

	"github.com/careerdock/jobportal/internal/api/dto"
	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/gofiber/fiber/v3"
)

type engagementService interface {
	SaveJob(ctx context.Context, actor models.Actor, postingID uint) error
	UnsaveJob(ctx context.Context, actor models.Actor, postingID uint) error
	GetSavedJobs(ctx context.Context, actor models.Actor) ([]models.SavedJob, error)
	Apply(ctx context.Context, actor models.Actor, postingID uint) error
	GetApplications(ctx context.Context, actor models.Actor) ([]models.Application, error)
}

type EngagementHandler struct {
	engagements engagementService
}

func NewEngagementHandler(engagements engagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

func (h *EngagementHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/jobs/:id/save", h.SaveJob)
	r.Delete("/jobs/:id/save", h.UnsaveJob)
	r.Get("/saved-jobs", h.GetSavedJobs)
	r.Post("/jobs/:id/apply", h.Apply)
	r.Get("/applications", h.GetApplications)
}

func (h *EngagementHandler) SaveJob(c fiber.Ctx) error {
	return h.togglePosting(c, h.engagements.SaveJob)
}

func (h *EngagementHandler) UnsaveJob(c fiber.Ctx) error {
	return h.togglePosting(c, h.engagements.UnsaveJob)
}

func (h *EngagementHandler) Apply(c fiber.Ctx) error {
	return h.togglePosting(c, h.engagements.Apply)
}

func (h *EngagementHandler) GetSavedJobs(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	saved, err := h.engagements.GetSavedJobs(c.Context(), actor)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobResponses(saved))
}

func (h *EngagementHandler) GetApplications(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	applications, err := h.engagements.GetApplications(c.Context(), actor)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(applications))
}

func (h *EngagementHandler) togglePosting(c fiber.Ctx,
	action func(ctx context.Context, actor models.Actor, postingID uint) error) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	if err = action(c.Context(), actor, postingID); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
