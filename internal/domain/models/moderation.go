package models

import "time"

type DecisionOutcome string

const (
	OutcomeApprove DecisionOutcome = "approve"
	OutcomeReject  DecisionOutcome = "reject"
)

// ModerationDecision is immutable once recorded. A later decision on the
// same posting supersedes the state but earlier rows are kept so the last
// rejection reason stays reconstructible.
type ModerationDecision struct {
	ID          uint `gorm:"primaryKey"`
	PostingID   uint `gorm:"index"`
	Outcome     DecisionOutcome
	Reason      string
	ModeratorID int64
	CreatedAt   time.Time
}
