package dto

import (
	"strings"
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/samber/lo"
)

type SubmitJobRequest struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements"`
	RequiredSkills  []string `json:"required_skills"`
	Salary          string   `json:"salary"`
	JobType         string   `json:"job_type"`
	SeniorityLevel  string   `json:"seniority_level"`
	ExperienceYears int      `json:"experience_years"`
}

type UpdateJobRequest struct {
	Title           *string   `json:"title"`
	Company         *string   `json:"company"`
	Location        *string   `json:"location"`
	Description     *string   `json:"description"`
	Requirements    *string   `json:"requirements"`
	RequiredSkills  *[]string `json:"required_skills"`
	Salary          *string   `json:"salary"`
	JobType         *string   `json:"job_type"`
	SeniorityLevel  *string   `json:"seniority_level"`
	ExperienceYears *int      `json:"experience_years"`
}

type DecisionRequest struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
}

type DecisionResponse struct {
	PostingID   uint      `json:"posting_id"`
	Outcome     string    `json:"outcome"`
	Reason      string    `json:"reason,omitempty"`
	ModeratorID int64     `json:"moderator_id"`
	DecidedAt   time.Time `json:"decided_at"`
}

func NewDecisionResponse(decision models.ModerationDecision) DecisionResponse {
	return DecisionResponse{
		PostingID:   decision.PostingID,
		Outcome:     string(decision.Outcome),
		Reason:      decision.Reason,
		ModeratorID: decision.ModeratorID,
		DecidedAt:   decision.CreatedAt,
	}
}

func NewDecisionResponses(decisions []models.ModerationDecision) []DecisionResponse {
	return lo.Map(decisions, func(decision models.ModerationDecision, _ int) DecisionResponse {
		return NewDecisionResponse(decision)
	})
}

type JobResponse struct {
	ID              uint       `json:"id"`
	EmployerID      int64      `json:"employer_id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	Requirements    string     `json:"requirements,omitempty"`
	RequiredSkills  []string   `json:"required_skills"`
	Salary          string     `json:"salary,omitempty"`
	JobType         string     `json:"job_type"`
	SeniorityLevel  string     `json:"seniority_level,omitempty"`
	ExperienceYears int        `json:"experience_years"`
	State           string     `json:"state"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewJobResponse(posting models.JobPosting) JobResponse {
	return JobResponse{
		ID:              posting.ID,
		EmployerID:      posting.EmployerID,
		Title:           posting.Title,
		Company:         posting.Company,
		Location:        posting.Location,
		Description:     posting.Description,
		Requirements:    posting.Requirements,
		RequiredSkills:  posting.SkillsAsArray(),
		Salary:          posting.Salary,
		JobType:         string(posting.JobType),
		SeniorityLevel:  posting.SeniorityLevel,
		ExperienceYears: posting.ExperienceYears,
		State:           string(posting.State),
		RejectionReason: posting.RejectionReason,
		ApprovedAt:      posting.ApprovedAt,
		CreatedAt:       posting.CreatedAt,
	}
}

func NewJobResponses(postings []models.JobPosting) []JobResponse {
	return lo.Map(postings, func(posting models.JobPosting, _ int) JobResponse {
		return NewJobResponse(posting)
	})
}

func JoinSkills(skills []string) string {
	trimmed := lo.Map(skills, func(skill string, _ int) string {
		return strings.TrimSpace(skill)
	})
	return strings.Join(trimmed, ",")
}
