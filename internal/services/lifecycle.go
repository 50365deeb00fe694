package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/auth"
	"github.com/careerdock/jobportal/internal/domain/events"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type postingsRepository interface {
	Add(ctx context.Context, posting *models.JobPosting) error
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
	GetByEmployer(ctx context.Context, employerID int64) ([]models.JobPosting, error)
	GetAll(ctx context.Context) ([]models.JobPosting, error)
	GetByState(ctx context.Context, state models.ModerationState) ([]models.JobPosting, error)
	TransitionState(ctx context.Context, id uint, from models.ModerationState, updates map[string]any) (bool, error)
	UpdateContent(ctx context.Context, id uint, fields map[string]any) error
	Remove(ctx context.Context, id uint) error
}

type decisionsRepository interface {
	Add(ctx context.Context, decision *models.ModerationDecision) error
	GetLatestByPosting(ctx context.Context, postingID uint) (*models.ModerationDecision, error)
	GetByPosting(ctx context.Context, postingID uint) ([]models.ModerationDecision, error)
}

// JobLifecycleManager owns the posting moderation state machine. All writes
// go through guarded updates in the repository, so two concurrent decisions
// on the same posting can never both land.
type JobLifecycleManager struct {
	postings  postingsRepository
	decisions decisionsRepository
	bus       EventBus.Bus
	validate  *validator.Validate
}

func NewJobLifecycleManager(postings postingsRepository, decisions decisionsRepository,
	bus EventBus.Bus) *JobLifecycleManager {
	return &JobLifecycleManager{
		postings:  postings,
		decisions: decisions,
		bus:       bus,
		validate:  validator.New(),
	}
}

// Submit creates a new posting in the pending state on behalf of the actor.
func (s *JobLifecycleManager) Submit(ctx context.Context, actor models.Actor,
	posting *models.JobPosting) error {

	if !auth.Allowed(actor, actor.ID, auth.OpSubmit) {
		return models.ErrUnauthorized
	}

	posting.EmployerID = actor.ID
	posting.State = models.StatePending
	posting.RejectionReason = ""
	posting.ApprovedAt = nil

	if err := s.validate.Struct(posting); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, validationDetails(err))
	}

	if err := s.postings.Add(ctx, posting); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create posting: %v", err)
		return err
	}

	log.Infof("posting %v submitted by employer %v", posting.ID, actor.ID)
	return nil
}

// Decide applies a moderation outcome to a pending posting. Rejections
// require a reason; approvals stamp the approval time and announce the
// posting on the bus for catalog sync.
func (s *JobLifecycleManager) Decide(ctx context.Context, actor models.Actor, postingID uint,
	outcome models.DecisionOutcome, reason string) error {

	if !auth.Allowed(actor, actor.ID, auth.OpDecide) {
		return models.ErrUnauthorized
	}

	if outcome == models.OutcomeReject && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: rejection requires a reason", models.ErrValidation)
	}

	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting %v: %v", postingID, err)
		return err
	}
	if posting == nil {
		return models.ErrNotFound
	}

	updates := map[string]any{}
	switch outcome {
	case models.OutcomeApprove:
		updates["state"] = models.StateApproved
		updates["approved_at"] = time.Now()
		updates["rejection_reason"] = ""
	case models.OutcomeReject:
		updates["state"] = models.StateRejected
		updates["rejection_reason"] = reason
	default:
		return fmt.Errorf("%w: unknown outcome %q", models.ErrValidation, outcome)
	}

	ok, err := s.postings.TransitionState(ctx, postingID, models.StatePending, updates)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to transition posting %v: %v", postingID, err)
		return err
	}
	if !ok {
		return models.ErrInvalidState
	}

	decision := &models.ModerationDecision{
		PostingID:   postingID,
		Outcome:     outcome,
		Reason:      reason,
		ModeratorID: actor.ID,
	}
	if err = s.decisions.Add(ctx, decision); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record decision for posting %v: %v", postingID, err)
		return err
	}

	metrics.DecisionsCounter.WithLabelValues(string(outcome)).Inc()
	log.Infof("decision %v recorded for posting %v by moderator %v", outcome, postingID, actor.ID)

	if outcome == models.OutcomeApprove {
		s.bus.Publish(events.PostingApprovedTopic, events.PostingApproved{PostingID: postingID})
	}
	return nil
}

// Edit applies content changes and resets the posting to pending, whatever
// state it was in. Moderation fields are not editable through here.
func (s *JobLifecycleManager) Edit(ctx context.Context, actor models.Actor, postingID uint,
	edit models.PostingEdit) error {

	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting %v: %v", postingID, err)
		return err
	}
	if posting == nil {
		return models.ErrNotFound
	}

	if !auth.Allowed(actor, posting.EmployerID, auth.OpEdit) {
		return models.ErrUnauthorized
	}

	edited := *posting
	edit.ApplyTo(&edited)
	if err = s.validate.Struct(&edited); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, validationDetails(err))
	}

	if err = s.postings.UpdateContent(ctx, postingID, edit.Fields()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to update posting %v: %v", postingID, err)
		return err
	}

	log.Infof("posting %v edited, returned to moderation queue", postingID)
	s.bus.Publish(events.PostingEditedTopic, events.PostingEdited{PostingID: postingID})
	return nil
}

// Delete removes a posting. Deleting an already absent posting succeeds.
func (s *JobLifecycleManager) Delete(ctx context.Context, actor models.Actor, postingID uint) error {

	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting %v: %v", postingID, err)
		return err
	}
	if posting == nil {
		return nil
	}

	if !auth.Allowed(actor, posting.EmployerID, auth.OpDelete) {
		return models.ErrUnauthorized
	}

	if err = s.postings.Remove(ctx, postingID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove posting %v: %v", postingID, err)
		return err
	}

	log.Infof("posting %v deleted by actor %v", postingID, actor.ID)
	s.bus.Publish(events.PostingDeletedTopic, events.PostingDeleted{PostingID: postingID})
	return nil
}

// LatestDecision returns the most recent moderation decision for a posting,
// so an employer can see why their posting was rejected. Nil when the
// posting has never been moderated.
func (s *JobLifecycleManager) LatestDecision(ctx context.Context, actor models.Actor,
	postingID uint) (*models.ModerationDecision, error) {

	if err := s.authorizeDecisionView(ctx, actor, postingID); err != nil {
		return nil, err
	}

	decision, err := s.decisions.GetLatestByPosting(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get latest decision for posting %v: %v", postingID, err)
		return nil, err
	}
	return decision, nil
}

// DecisionHistory returns every decision recorded for a posting, oldest
// first.
func (s *JobLifecycleManager) DecisionHistory(ctx context.Context, actor models.Actor,
	postingID uint) ([]models.ModerationDecision, error) {

	if err := s.authorizeDecisionView(ctx, actor, postingID); err != nil {
		return nil, err
	}

	decisions, err := s.decisions.GetByPosting(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get decisions for posting %v: %v", postingID, err)
		return nil, err
	}
	return decisions, nil
}

func (s *JobLifecycleManager) authorizeDecisionView(ctx context.Context, actor models.Actor,
	postingID uint) error {

	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting %v: %v", postingID, err)
		return err
	}
	if posting == nil {
		return models.ErrNotFound
	}

	if !auth.Allowed(actor, posting.EmployerID, auth.OpViewDecisions) {
		return models.ErrUnauthorized
	}
	return nil
}

// ListMine returns the actor's own postings in every state. A moderator
// sees all postings.
func (s *JobLifecycleManager) ListMine(ctx context.Context, actor models.Actor) ([]models.JobPosting, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpListMine) {
		return nil, models.ErrUnauthorized
	}

	if actor.Role == models.RoleAdmin {
		return s.postings.GetAll(ctx)
	}
	return s.postings.GetByEmployer(ctx, actor.ID)
}

// ListPending returns the moderation queue, oldest first.
func (s *JobLifecycleManager) ListPending(ctx context.Context, actor models.Actor) ([]models.JobPosting, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpListPending) {
		return nil, models.ErrUnauthorized
	}
	return s.postings.GetByState(ctx, models.StatePending)
}

func validationDetails(err error) string {

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Field())
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
