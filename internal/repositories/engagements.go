package repositories

import (
	"context"

	"github.com/careerdock/jobportal/internal/domain/models"
	"gorm.io/gorm"
)

// Engagements stores saved-job and application rows. Presence of a row is
// the whole state, so every write here is idempotent.
type Engagements struct {
	db *gorm.DB
}

func NewEngagementsRepository(db *gorm.DB) *Engagements {
	return &Engagements{db: db}
}

func (repo *Engagements) SaveJob(ctx context.Context, seekerID int64, postingID uint) error {
	return repo.db.WithContext(ctx).
		Where(models.SavedJob{SeekerID: seekerID, PostingID: postingID}).
		FirstOrCreate(&models.SavedJob{SeekerID: seekerID, PostingID: postingID}).Error
}

func (repo *Engagements) UnsaveJob(ctx context.Context, seekerID int64, postingID uint) error {
	return repo.db.WithContext(ctx).
		Delete(&models.SavedJob{}, "seeker_id = ? AND posting_id = ?", seekerID, postingID).Error
}

func (repo *Engagements) GetSavedJobs(ctx context.Context, seekerID int64) ([]models.SavedJob, error) {

	var saved []models.SavedJob
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&saved, "seeker_id = ?", seekerID).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

func (repo *Engagements) Apply(ctx context.Context, seekerID int64, postingID uint) error {
	return repo.db.WithContext(ctx).
		Where(models.Application{SeekerID: seekerID, PostingID: postingID}).
		FirstOrCreate(&models.Application{SeekerID: seekerID, PostingID: postingID}).Error
}

func (repo *Engagements) GetApplications(ctx context.Context, seekerID int64) ([]models.Application, error) {

	var applications []models.Application
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&applications, "seeker_id = ?", seekerID).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
