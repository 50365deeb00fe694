package dto

import (
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/samber/lo"
)

type SavedJobResponse struct {
	PostingID uint      `json:"posting_id"`
	SavedAt   time.Time `json:"saved_at"`
}

func NewSavedJobResponses(saved []models.SavedJob) []SavedJobResponse {
	return lo.Map(saved, func(item models.SavedJob, _ int) SavedJobResponse {
		return SavedJobResponse{PostingID: item.PostingID, SavedAt: item.CreatedAt}
	})
}

type ApplicationResponse struct {
	PostingID uint      `json:"posting_id"`
	AppliedAt time.Time `json:"applied_at"`
}

func NewApplicationResponses(applications []models.Application) []ApplicationResponse {
	return lo.Map(applications, func(item models.Application, _ int) ApplicationResponse {
		return ApplicationResponse{PostingID: item.PostingID, AppliedAt: item.CreatedAt}
	})
}
