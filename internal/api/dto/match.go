package dto

import (
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/samber/lo"
)

type MatchRequest struct {
	SessionID string `json:"session_id"`
	Policy    string `json:"policy"`
	Limit     int    `json:"limit"`
}

type ResumeResponse struct {
	ArtifactID      string    `json:"artifact_id"`
	SessionID       string    `json:"session_id"`
	Skills          []string  `json:"skills"`
	ExperienceYears float64   `json:"experience_years"`
	SeniorityLevel  string    `json:"seniority_level,omitempty"`
	Title           string    `json:"title,omitempty"`
	EducationLevel  string    `json:"education_level,omitempty"`
	Disposition     string    `json:"disposition"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func NewResumeResponse(artifact models.ResumeArtifact) ResumeResponse {
	return ResumeResponse{
		ArtifactID:      artifact.ID,
		SessionID:       artifact.SessionID,
		Skills:          artifact.SkillsAsArray(),
		ExperienceYears: artifact.ExperienceYears,
		SeniorityLevel:  artifact.SeniorityLevel,
		Title:           artifact.Title,
		EducationLevel:  artifact.EducationLevel,
		Disposition:     string(artifact.Disposition),
		ExpiresAt:       artifact.ExpiresAt,
	}
}

type MatchItemResponse struct {
	PostingID       uint     `json:"posting_id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	CompositeScore  float64  `json:"composite_score"`
	Tier            string   `json:"tier"`
	SkillScore      float64  `json:"skill_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

type MatchResponse struct {
	Policy  string              `json:"policy"`
	Total   int                 `json:"total"`
	Matches []MatchItemResponse `json:"matches"`
}

func NewMatchResponse(policy string, results []models.MatchResult) MatchResponse {
	return MatchResponse{
		Policy: policy,
		Total:  len(results),
		Matches: lo.Map(results, func(result models.MatchResult, _ int) MatchItemResponse {
			return MatchItemResponse{
				PostingID:       result.PostingID,
				Title:           result.Title,
				Company:         result.Company,
				Location:        result.Location,
				CompositeScore:  result.CompositeScore,
				Tier:            string(result.Tier),
				SkillScore:      result.SkillScore,
				ExperienceScore: result.ExperienceScore,
				EducationScore:  result.EducationScore,
				MatchedSkills:   result.MatchedSkills,
				MissingSkills:   result.MissingSkills,
			}
		}),
	}
}
