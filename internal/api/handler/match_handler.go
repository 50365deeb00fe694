package handler

import (
	"context"
	"io"

	"github.com/careerdock/jobportal/internal/api/dto"
	"github.com/careerdock/jobportal/internal/api/middleware"
	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type matchOrchestrator interface {
	IngestResume(ctx context.Context, actor models.Actor, sessionID string,
		fileName string, fileBytes []byte, mimeType string,
		disposition models.Disposition) (*models.ResumeArtifact, error)
	Match(ctx context.Context, actor models.Actor, req models.MatchRequest) ([]models.MatchResult, error)
	Clear(ctx context.Context, sessionID string) error
}

type MatchHandler struct {
	orchestrator matchOrchestrator
}

func NewMatchHandler(orchestrator matchOrchestrator) *MatchHandler {
	return &MatchHandler{orchestrator: orchestrator}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/resumes", h.Upload)
	r.Post("/matches", h.Match)
	r.Delete("/sessions/:session_id", h.ClearSession)
}

// Upload accepts a multipart resume and makes it the session's active
// artifact. Without a session_id field a fresh session is started.
func (h *MatchHandler) Upload(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing resume file", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume file", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume file", err)
	}

	sessionID := c.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	disposition := models.DispositionEphemeral
	if c.FormValue("disposition") == string(models.DispositionPersisted) {
		disposition = models.DispositionPersisted
	}

	artifact, err := h.orchestrator.IngestResume(c.Context(), actor, sessionID,
		fileHeader.Filename, fileBytes, fileHeader.Header.Get("Content-Type"), disposition)
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewResumeResponse(*artifact))
}

func (h *MatchHandler) Match(c fiber.Ctx) error {

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.MatchRequest
	if err = c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}
	if req.SessionID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing session id", nil)
	}

	results, err := h.orchestrator.Match(c.Context(), actor, models.MatchRequest{
		SessionID: req.SessionID,
		Policy:    models.MatchPolicy(req.Policy),
		Limit:     req.Limit,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewMatchResponse(req.Policy, results))
}

func (h *MatchHandler) ClearSession(c fiber.Ctx) error {

	if _, err := requireActor(c); err != nil {
		return err
	}

	if err := h.orchestrator.Clear(c.Context(), c.Params("session_id")); err != nil {
		return mapServiceError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
