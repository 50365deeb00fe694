package repositories

import (
	"context"
	"errors"

	"github.com/careerdock/jobportal/internal/domain/models"
	"gorm.io/gorm"
)

type Decisions struct {
	db *gorm.DB
}

func NewDecisionsRepository(db *gorm.DB) *Decisions {
	return &Decisions{db: db}
}

// Add records a decision. Rows are never updated or deleted afterwards.
func (repo *Decisions) Add(ctx context.Context, decision *models.ModerationDecision) error {
	return repo.db.WithContext(ctx).Create(decision).Error
}

func (repo *Decisions) GetLatestByPosting(ctx context.Context, postingID uint) (*models.ModerationDecision, error) {

	var decision models.ModerationDecision
	err := repo.db.WithContext(ctx).
		Where("posting_id = ?", postingID).
		Order("created_at DESC").
		First(&decision).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &decision, nil
}

func (repo *Decisions) GetByPosting(ctx context.Context, postingID uint) ([]models.ModerationDecision, error) {

	var decisions []models.ModerationDecision
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&decisions, "posting_id = ?", postingID).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}
