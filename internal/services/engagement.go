package services

import (
	"context"

	"github.com/careerdock/jobportal/internal/auth"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	log "github.com/sirupsen/logrus"
)

type engagementsRepository interface {
	SaveJob(ctx context.Context, seekerID int64, postingID uint) error
	UnsaveJob(ctx context.Context, seekerID int64, postingID uint) error
	GetSavedJobs(ctx context.Context, seekerID int64) ([]models.SavedJob, error)
	Apply(ctx context.Context, seekerID int64, postingID uint) error
	GetApplications(ctx context.Context, seekerID int64) ([]models.Application, error)
}

// EngagementService records job seeker interest in approved postings.
// Saves and applications only ever target visible postings.
type EngagementService struct {
	engagements engagementsRepository
	postings    approvedPostingLookup
}

func NewEngagementService(engagements engagementsRepository,
	postings approvedPostingLookup) *EngagementService {
	return &EngagementService{engagements: engagements, postings: postings}
}

func (s *EngagementService) SaveJob(ctx context.Context, actor models.Actor, postingID uint) error {

	if !auth.Allowed(actor, actor.ID, auth.OpSaveJob) {
		return models.ErrUnauthorized
	}

	if err := s.requireVisible(ctx, postingID); err != nil {
		return err
	}
	return s.engagements.SaveJob(ctx, actor.ID, postingID)
}

func (s *EngagementService) UnsaveJob(ctx context.Context, actor models.Actor, postingID uint) error {

	if !auth.Allowed(actor, actor.ID, auth.OpSaveJob) {
		return models.ErrUnauthorized
	}
	return s.engagements.UnsaveJob(ctx, actor.ID, postingID)
}

func (s *EngagementService) GetSavedJobs(ctx context.Context, actor models.Actor) ([]models.SavedJob, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpSaveJob) {
		return nil, models.ErrUnauthorized
	}
	return s.engagements.GetSavedJobs(ctx, actor.ID)
}

func (s *EngagementService) Apply(ctx context.Context, actor models.Actor, postingID uint) error {

	if !auth.Allowed(actor, actor.ID, auth.OpApply) {
		return models.ErrUnauthorized
	}

	if err := s.requireVisible(ctx, postingID); err != nil {
		return err
	}

	if err := s.engagements.Apply(ctx, actor.ID, postingID); err != nil {
		return err
	}

	log.Infof("seeker %v applied to posting %v", actor.ID, postingID)
	return nil
}

func (s *EngagementService) GetApplications(ctx context.Context, actor models.Actor) ([]models.Application, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpApply) {
		return nil, models.ErrUnauthorized
	}
	return s.engagements.GetApplications(ctx, actor.ID)
}

func (s *EngagementService) requireVisible(ctx context.Context, postingID uint) error {

	posting, err := s.postings.GetApprovedByID(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting %v: %v", postingID, err)
		return err
	}
	if posting == nil {
		return models.ErrNotFound
	}
	return nil
}
