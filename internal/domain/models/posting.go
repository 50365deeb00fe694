package models

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ModerationState string

const (
	StatePending  ModerationState = "PENDING"
	StateApproved ModerationState = "APPROVED"
	StateRejected ModerationState = "REJECTED"
)

type JobType string

const (
	FullTime   JobType = "fullTime"
	PartTime   JobType = "partTime"
	Contract   JobType = "contract"
	Internship JobType = "internship"
)

func ToJobType(s string) (JobType, error) {
	switch s {
	case string(FullTime):
		return FullTime, nil
	case string(PartTime):
		return PartTime, nil
	case string(Contract):
		return Contract, nil
	case string(Internship):
		return Internship, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type JobPosting struct {
	ID              uint `gorm:"primaryKey"`
	EmployerID      int64
	Title           string `validate:"required"`
	Company         string `validate:"required"`
	Location        string `validate:"required"`
	Description     string `validate:"required"`
	Requirements    string
	RequiredSkills  string
	Salary          string
	JobType         JobType `validate:"required"`
	SeniorityLevel  string
	ExperienceYears int
	State           ModerationState
	RejectionReason string
	// SourceURL is set only on postings imported from the scraper feed and
	// keys deduplication across fetch cycles.
	SourceURL string `gorm:"index"`
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func NewJobPosting(employerID int64, title, company, location, description string, jobType JobType) *JobPosting {
	return &JobPosting{
		EmployerID:  employerID,
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		JobType:     jobType,
		State:       StatePending,
	}
}

// Visible reports whether job seekers may see this posting.
func (p *JobPosting) Visible() bool {
	return p.State == StateApproved
}

func (p *JobPosting) SkillsAsArray() []string {
	if p.RequiredSkills == "" {
		return []string{}
	}
	return lo.Map(strings.Split(p.RequiredSkills, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

// PostingEdit carries the employer-editable content fields. Nil means
// "leave unchanged"; moderation fields are not reachable through it.
type PostingEdit struct {
	Title           *string
	Company         *string
	Location        *string
	Description     *string
	Requirements    *string
	RequiredSkills  *string
	Salary          *string
	JobType         *JobType
	SeniorityLevel  *string
	ExperienceYears *int
}

// Fields returns the set columns keyed by database name, for a single
// guarded UPDATE.
func (e PostingEdit) Fields() map[string]any {
	fields := map[string]any{}
	if e.Title != nil {
		fields["title"] = *e.Title
	}
	if e.Company != nil {
		fields["company"] = *e.Company
	}
	if e.Location != nil {
		fields["location"] = *e.Location
	}
	if e.Description != nil {
		fields["description"] = *e.Description
	}
	if e.Requirements != nil {
		fields["requirements"] = *e.Requirements
	}
	if e.RequiredSkills != nil {
		fields["required_skills"] = *e.RequiredSkills
	}
	if e.Salary != nil {
		fields["salary"] = *e.Salary
	}
	if e.JobType != nil {
		fields["job_type"] = *e.JobType
	}
	if e.SeniorityLevel != nil {
		fields["seniority_level"] = *e.SeniorityLevel
	}
	if e.ExperienceYears != nil {
		fields["experience_years"] = *e.ExperienceYears
	}
	return fields
}

func (e PostingEdit) ApplyTo(p *JobPosting) {
	if e.Title != nil {
		p.Title = *e.Title
	}
	if e.Company != nil {
		p.Company = *e.Company
	}
	if e.Location != nil {
		p.Location = *e.Location
	}
	if e.Description != nil {
		p.Description = *e.Description
	}
	if e.Requirements != nil {
		p.Requirements = *e.Requirements
	}
	if e.RequiredSkills != nil {
		p.RequiredSkills = *e.RequiredSkills
	}
	if e.Salary != nil {
		p.Salary = *e.Salary
	}
	if e.JobType != nil {
		p.JobType = *e.JobType
	}
	if e.SeniorityLevel != nil {
		p.SeniorityLevel = *e.SeniorityLevel
	}
	if e.ExperienceYears != nil {
		p.ExperienceYears = *e.ExperienceYears
	}
}
