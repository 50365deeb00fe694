package handler

import (
	"context"
	"strconv"

	"github.com/careerdock/jobportal/internal/api/dto"
	"github.com/careerdock/jobportal/internal/api/middleware"
	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/gofiber/fiber/v3"
)

type jobLifecycle interface {
	Submit(ctx context.Context, actor models.Actor, posting *models.JobPosting) error
	Edit(ctx context.Context, actor models.Actor, postingID uint, edit models.PostingEdit) error
	Delete(ctx context.Context, actor models.Actor, postingID uint) error
	ListMine(ctx context.Context, actor models.Actor) ([]models.JobPosting, error)
	LatestDecision(ctx context.Context, actor models.Actor, postingID uint) (*models.ModerationDecision, error)
}

type approvedBrowser interface {
	GetApproved(ctx context.Context, keyword, location string, limit, offset int) ([]models.JobPosting, error)
}

type JobsHandler struct {
	lifecycle jobLifecycle
	browser   approvedBrowser
}

func NewJobsHandler(lifecycle jobLifecycle, browser approvedBrowser) *JobsHandler {
	return &JobsHandler{lifecycle: lifecycle, browser: browser}
}

func (h *JobsHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/jobs", h.Browse)
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/jobs", h.Submit)
	r.Get("/jobs/mine", h.ListMine)
	r.Patch("/jobs/:id", h.Edit)
	r.Delete("/jobs/:id", h.Delete)
	r.Get("/jobs/:id/decision", h.LatestDecision)
}

// Browse lists approved postings; it is the only posting read that needs no
// authentication.
func (h *JobsHandler) Browse(c fiber.Ctx) error {

	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	postings, err := h.browser.GetApproved(c.Context(), c.Query("keyword"), c.Query("location"), limit, offset)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(postings))
}

func (h *JobsHandler) Submit(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.SubmitJobRequest
	if err = c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	jobType, err := models.ToJobType(req.JobType)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job type", err)
	}

	posting := models.NewJobPosting(actor.ID, req.Title, req.Company, req.Location,
		req.Description, jobType)
	posting.Requirements = req.Requirements
	posting.RequiredSkills = dto.JoinSkills(req.RequiredSkills)
	posting.Salary = req.Salary
	posting.SeniorityLevel = req.SeniorityLevel
	posting.ExperienceYears = req.ExperienceYears

	if err = h.lifecycle.Submit(c.Context(), actor, posting); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(*posting))
}

func (h *JobsHandler) ListMine(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postings, err := h.lifecycle.ListMine(c.Context(), actor)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(postings))
}

func (h *JobsHandler) Edit(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateJobRequest
	if err = c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	edit := models.PostingEdit{
		Title:           req.Title,
		Company:         req.Company,
		Location:        req.Location,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		SeniorityLevel:  req.SeniorityLevel,
		ExperienceYears: req.ExperienceYears,
	}
	if req.RequiredSkills != nil {
		skills := dto.JoinSkills(*req.RequiredSkills)
		edit.RequiredSkills = &skills
	}
	if req.JobType != nil {
		jobType, err := models.ToJobType(*req.JobType)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job type", err)
		}
		edit.JobType = &jobType
	}

	if err = h.lifecycle.Edit(c.Context(), actor, postingID, edit); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	if err = h.lifecycle.Delete(c.Context(), actor, postingID); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// LatestDecision lets an employer see the most recent moderation outcome
// for their posting, rejection reason included.
func (h *JobsHandler) LatestDecision(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	postingID, err := parsePostingID(c)
	if err != nil {
		return err
	}

	decision, err := h.lifecycle.LatestDecision(c.Context(), actor, postingID)
	if err != nil {
		return mapServiceError(err)
	}
	if decision == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDecisionResponse(*decision))
}

func parsePostingID(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid posting id", err)
	}
	return uint(id), nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
