package repositories

import (
	"context"
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"gorm.io/gorm"
)

// Resumes persists artifacts whose disposition is persisted-to-profile.
// Ephemeral artifacts never reach this table.
type Resumes struct {
	db *gorm.DB
}

func NewResumesRepository(db *gorm.DB) *Resumes {
	return &Resumes{db: db}
}

func (repo *Resumes) Upsert(ctx context.Context, artifact *models.ResumeArtifact) error {

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ResumeArtifact{}, "owner_id = ?", artifact.OwnerID).Error; err != nil {
			return err
		}
		return tx.Create(artifact).Error
	})
}

func (repo *Resumes) GetByOwner(ctx context.Context, ownerID int64) (*models.ResumeArtifact, error) {

	var artifact models.ResumeArtifact
	err := repo.db.WithContext(ctx).First(&artifact, "owner_id = ?", ownerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &artifact, nil
}

func (repo *Resumes) RemoveBySession(ctx context.Context, sessionID string) error {
	return repo.db.WithContext(ctx).Delete(&models.ResumeArtifact{}, "session_id = ?", sessionID).Error
}

func (repo *Resumes) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&models.ResumeArtifact{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
