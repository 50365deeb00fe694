package models

import "time"

// SavedJob and Application share toggle semantics: presence of the row is
// the whole state, re-adding an existing pair is a no-op.
type SavedJob struct {
	ID        uint  `gorm:"primaryKey"`
	SeekerID  int64 `gorm:"uniqueIndex:idx_saved_seeker_posting"`
	PostingID uint  `gorm:"uniqueIndex:idx_saved_seeker_posting"`
	CreatedAt time.Time
}

type Application struct {
	ID        uint  `gorm:"primaryKey"`
	SeekerID  int64 `gorm:"uniqueIndex:idx_application_seeker_posting"`
	PostingID uint  `gorm:"uniqueIndex:idx_application_seeker_posting"`
	CreatedAt time.Time
}
