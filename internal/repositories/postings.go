package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"gorm.io/gorm"
)

type Postings struct {
	db *gorm.DB
}

func NewPostingsRepository(db *gorm.DB) *Postings {
	return &Postings{db: db}
}

func (repo *Postings) Add(ctx context.Context, posting *models.JobPosting) error {
	return repo.db.WithContext(ctx).Create(posting).Error
}

func (repo *Postings) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {

	var posting models.JobPosting
	err := repo.db.WithContext(ctx).First(&posting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &posting, nil
}

// GetApprovedByID only surfaces postings in the approved state; everything
// else looks like "not found" to callers outside moderation.
func (repo *Postings) GetApprovedByID(ctx context.Context, id uint) (*models.JobPosting, error) {

	var posting models.JobPosting
	err := repo.db.WithContext(ctx).
		First(&posting, "id = ? AND state = ?", id, models.StateApproved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &posting, nil
}

// GetBySourceURL looks up an imported posting by the page it was scraped
// from. Soft-deleted rows still count, so a removed import is not re-created
// on the next fetch cycle.
func (repo *Postings) GetBySourceURL(ctx context.Context, sourceURL string) (*models.JobPosting, error) {

	var posting models.JobPosting
	err := repo.db.WithContext(ctx).Unscoped().
		First(&posting, "source_url = ?", sourceURL).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &posting, nil
}

func (repo *Postings) GetByEmployer(ctx context.Context, employerID int64) ([]models.JobPosting, error) {

	var postings []models.JobPosting
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&postings, "employer_id = ?", employerID).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Postings) GetAll(ctx context.Context) ([]models.JobPosting, error) {

	var postings []models.JobPosting
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Postings) GetByState(ctx context.Context, state models.ModerationState) ([]models.JobPosting, error) {

	var postings []models.JobPosting
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&postings, "state = ?", state).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Postings) GetApproved(ctx context.Context, keyword, location string, limit, offset int) ([]models.JobPosting, error) {

	query := repo.db.WithContext(ctx).Where("state = ?", models.StateApproved)

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR required_skills LIKE ?", pattern, pattern, pattern)
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	var postings []models.JobPosting
	if err := query.Order("approved_at DESC").Limit(limit).Offset(offset).Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// TransitionState is the compare-and-swap guarding every moderation
// transition: the update only lands if the posting is still in `from`.
// Returns false when another writer got there first.
func (repo *Postings) TransitionState(ctx context.Context, id uint, from models.ModerationState,
	updates map[string]any) (bool, error) {

	res := repo.db.WithContext(ctx).Model(&models.JobPosting{}).
		Where("id = ? AND state = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateContent applies an edit and forces the posting back to pending in
// the same statement, so published content can never drift past moderation.
func (repo *Postings) UpdateContent(ctx context.Context, id uint, fields map[string]any) error {

	fields["state"] = models.StatePending
	fields["approved_at"] = nil
	fields["rejection_reason"] = ""
	fields["updated_at"] = time.Now()

	return repo.db.WithContext(ctx).Model(&models.JobPosting{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (repo *Postings) Remove(ctx context.Context, id uint) error {
	return repo.db.WithContext(ctx).Delete(&models.JobPosting{}, "id = ?", id).Error
}
