package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type Disposition string

const (
	DispositionEphemeral Disposition = "ephemeral"
	DispositionPersisted Disposition = "persisted"
)

// ResumeArtifact holds the attributes the scoring engine extracted from an
// uploaded resume. At most one active artifact exists per session;
// a re-upload replaces it wholesale.
type ResumeArtifact struct {
	ID              string `gorm:"primaryKey"`
	SessionID       string `gorm:"index"`
	OwnerID         int64
	Skills          string
	ExperienceYears float64
	SeniorityLevel  string
	Title           string
	EducationLevel  string
	RawText         string
	Disposition     Disposition
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

func (a *ResumeArtifact) SkillsAsArray() []string {
	if a.Skills == "" {
		return []string{}
	}
	return lo.Map(strings.Split(a.Skills, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}
