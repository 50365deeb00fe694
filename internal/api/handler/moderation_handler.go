package handler

import (
	"context"

	"github.com/careerdock/jobportal/internal/api/dto"
	"github.com/careerdock/jobportal/internal/api/middleware"
	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/gofiber/fiber/v3"
)

type moderationLifecycle interface {
	Decide(ctx context.Context, actor models.Actor, postingID uint,
		outcome models.DecisionOutcome, reason string) error
	ListPending(ctx context.Context, actor models.Actor) ([]models.JobPosting, error)
	DecisionHistory(ctx context.Context, actor models.Actor, postingID uint) ([]models.ModerationDecision, error)
}

type ModerationHandler struct {
	lifecycle moderationLifecycle
}

func NewModerationHandler(lifecycle moderationLifecycle) *ModerationHandler {
	return &ModerationHandler{lifecycle: lifecycle}
}

func (h *ModerationHandler) RegisterRoutes(r fiber.Router) {
	grp := r.Group("/moderation")
	grp.Get("/pending", h.ListPending)
	grp.Post("/postings/:id/decision", h.Decide)
	grp.Get("/postings/:id/decisions", h.DecisionHistory)
}

func (h *ModerationHandler) ListPending(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postings, err := h.lifecycle.ListPending(c.Context(), actor)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(postings))
}

func (h *ModerationHandler) Decide(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	var req dto.DecisionRequest
	if err = c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	var outcome models.DecisionOutcome
	switch req.Outcome {
	case string(models.OutcomeApprove):
		outcome = models.OutcomeApprove
	case string(models.OutcomeReject):
		outcome = models.OutcomeReject
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid decision outcome", nil)
	}

	if err = h.lifecycle.Decide(c.Context(), actor, postingID, outcome, req.Reason); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ModerationHandler) DecisionHistory(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	decisions, err := h.lifecycle.DecisionHistory(c.Context(), actor, postingID)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDecisionResponses(decisions))
}
