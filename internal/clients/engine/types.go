package engine

// Attributes are the structured fields the engine extracts from a resume.
// They are passed back on rank calls so policy switches never require a
// re-upload.
type Attributes struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	SeniorityLevel  string   `json:"seniority_level"`
	Title           string   `json:"title"`
	EducationLevel  string   `json:"education_level"`
	RawText         string   `json:"raw_text"`
}

// RankItem is one scored job as returned by the engine. Job ids live in
// the engine's identifier space and are reconciled against the catalog
// before anything leaves this process.
type RankItem struct {
	JobID           string   `json:"job_id"`
	SkillScore      float64  `json:"skill_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// JobData is the catalog projection pushed to the engine on approval.
type JobData struct {
	JobID           string   `json:"job_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Company         string   `json:"company"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceYears int      `json:"experience_required"`
	Location        string   `json:"location"`
	SeniorityLevel  string   `json:"seniority_level"`
}

type rankRequest struct {
	Attributes Attributes `json:"attributes"`
	Mode       string     `json:"mode"`
	TopK       int        `json:"top_k"`
}

type rankResponse struct {
	Matches      []RankItem `json:"matches"`
	TotalMatches int        `json:"total_matches"`
}

type clearSessionRequest struct {
	SessionID string `json:"session_id"`
}
