package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/careerdock/jobportal/internal/auth"
	"github.com/careerdock/jobportal/internal/clients/engine"
	"github.com/careerdock/jobportal/internal/config"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type scoringEngine interface {
	Extract(ctx context.Context, fileName string, fileBytes []byte, mimeType string) (*engine.Attributes, error)
	Rank(ctx context.Context, attributes engine.Attributes, policy string, limit int) ([]engine.RankItem, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type artifactStore interface {
	Put(artifact models.ResumeArtifact)
	Get(sessionID string) (models.ResumeArtifact, bool)
	Delete(sessionID string)
}

type resumesRepository interface {
	Upsert(ctx context.Context, artifact *models.ResumeArtifact) error
	GetByOwner(ctx context.Context, ownerID int64) (*models.ResumeArtifact, error)
	RemoveBySession(ctx context.Context, sessionID string) error
}

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// MatchOrchestrator drives the resume matching pipeline: extraction, session
// storage, ranking, reconciliation and scoring. It holds no ranking logic of
// its own; the engine decides order, the catalog decides visibility.
type MatchOrchestrator struct {
	store        artifactStore
	engine       scoringEngine
	aggregator   *ScoreAggregator
	reconciler   *ResultReconciler
	resumes      resumesRepository
	sessionTTL   time.Duration
	maxSizeBytes int64
	defaultLimit int
	maxLimit     int
}

func NewMatchOrchestrator(store artifactStore, scoring scoringEngine, aggregator *ScoreAggregator,
	reconciler *ResultReconciler, resumes resumesRepository,
	engineCfg config.EngineConfig, matchingCfg config.MatchingConfig) *MatchOrchestrator {
	return &MatchOrchestrator{
		store:        store,
		engine:       scoring,
		aggregator:   aggregator,
		reconciler:   reconciler,
		resumes:      resumes,
		sessionTTL:   engineCfg.SessionTTL,
		maxSizeBytes: engineCfg.MaxResumeSizeBytes,
		defaultLimit: matchingCfg.DefaultLimit,
		maxLimit:     matchingCfg.MaxLimit,
	}
}

// IngestResume sends the file for attribute extraction and installs the
// resulting artifact as the session's active resume, replacing any previous
// one. Nothing is stored when extraction fails.
func (s *MatchOrchestrator) IngestResume(ctx context.Context, actor models.Actor, sessionID string,
	fileName string, fileBytes []byte, mimeType string,
	disposition models.Disposition) (*models.ResumeArtifact, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpIngest) {
		return nil, models.ErrUnauthorized
	}

	if int64(len(fileBytes)) > s.maxSizeBytes {
		return nil, fmt.Errorf("%w: %v bytes, limit %v", models.ErrPayloadTooLarge,
			len(fileBytes), s.maxSizeBytes)
	}

	if !allowedMimeTypes[mimeType] && !allowedExtensions[extensionOf(fileName)] {
		return nil, fmt.Errorf("%w: %v", models.ErrUnsupportedMediaType, mimeType)
	}

	start := time.Now()
	attributes, err := s.engine.Extract(ctx, fileName, fileBytes, mimeType)
	metrics.EngineStepDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsCounter.WithLabelValues("parse_cv").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngineApi).
			Errorf("resume extraction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	now := time.Now()
	artifact := models.ResumeArtifact{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		OwnerID:         actor.ID,
		Skills:          strings.Join(attributes.Skills, ","),
		ExperienceYears: attributes.ExperienceYears,
		SeniorityLevel:  attributes.SeniorityLevel,
		Title:           attributes.Title,
		EducationLevel:  attributes.EducationLevel,
		RawText:         attributes.RawText,
		Disposition:     disposition,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.sessionTTL),
	}

	if disposition == models.DispositionPersisted {
		if err = s.resumes.Upsert(ctx, &artifact); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to persist resume artifact: %v", err)
			return nil, err
		}
	}

	s.store.Put(artifact)
	log.Infof("resume artifact %v ingested for session %v", artifact.ID, sessionID)
	return &artifact, nil
}

// Match ranks the catalog against the session's active resume under the
// requested policy. Results are recomputed on every call.
func (s *MatchOrchestrator) Match(ctx context.Context, actor models.Actor,
	req models.MatchRequest) ([]models.MatchResult, error) {

	if !auth.Allowed(actor, actor.ID, auth.OpMatch) {
		return nil, models.ErrUnauthorized
	}

	if _, err := models.ToMatchPolicy(string(req.Policy)); err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPolicy, req.Policy)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	artifact, found := s.store.Get(req.SessionID)
	if !found {
		restored, err := s.restorePersisted(ctx, actor.ID, req.SessionID)
		if err != nil {
			return nil, err
		}
		artifact = *restored
	}

	pipelineStart := time.Now()

	attributes := engine.Attributes{
		Skills:          artifact.SkillsAsArray(),
		ExperienceYears: artifact.ExperienceYears,
		SeniorityLevel:  artifact.SeniorityLevel,
		Title:           artifact.Title,
		EducationLevel:  artifact.EducationLevel,
	}

	start := time.Now()
	items, err := s.engine.Rank(ctx, attributes, string(req.Policy), limit)
	metrics.EngineStepDuration.WithLabelValues("rank").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsCounter.WithLabelValues("match_jobs").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngineApi).
			Errorf("ranking failed for session %v: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	reconciled, err := s.reconciler.Reconcile(ctx, items)
	if err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(reconciled))
	for _, match := range reconciled {
		composite, tier := s.aggregator.Aggregate(match.Raw.SkillScore,
			match.Raw.ExperienceScore, match.Raw.EducationScore)
		results = append(results, models.MatchResult{
			PostingID:       match.Posting.ID,
			Title:           match.Posting.Title,
			Company:         match.Posting.Company,
			Location:        match.Posting.Location,
			CompositeScore:  composite,
			Tier:            tier,
			SkillScore:      match.Raw.SkillScore,
			ExperienceScore: match.Raw.ExperienceScore,
			EducationScore:  match.Raw.EducationScore,
			MatchedSkills:   match.Raw.MatchedSkills,
			MissingSkills:   match.Raw.MissingSkills,
		})
	}

	// ties break on posting id so repeated calls return the same order
	sort.Slice(results, func(i, j int) bool {
		if results[i].CompositeScore != results[j].CompositeScore {
			return results[i].CompositeScore > results[j].CompositeScore
		}
		return results[i].PostingID < results[j].PostingID
	})
	if len(results) > limit {
		results = results[:limit]
	}

	metrics.MatchRequestsCounter.WithLabelValues(string(req.Policy)).Inc()
	metrics.MatchDuration.Observe(time.Since(pipelineStart).Seconds())

	log.Infof("match for session %v under policy %v returned %v results",
		req.SessionID, req.Policy, len(results))
	return results, nil
}

// Clear drops the session's resume state everywhere it may live. Clearing a
// session without state is a no-op; the engine call is best effort.
func (s *MatchOrchestrator) Clear(ctx context.Context, sessionID string) error {

	s.store.Delete(sessionID)

	if err := s.resumes.RemoveBySession(ctx, sessionID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove persisted resume for session %v: %v", sessionID, err)
		return err
	}

	if err := s.engine.ClearSession(ctx, sessionID); err != nil {
		metrics.UpstreamErrorsCounter.WithLabelValues("clear_session").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngineApi).
			Warnf("failed to clear engine session %v: %v", sessionID, err)
	}

	log.Infof("session %v cleared", sessionID)
	return nil
}

// restorePersisted reinstalls the actor's persisted-to-profile artifact
// into the session store after a restart or store eviction. The artifact is
// rebound to the requesting session so later calls hit the store directly.
func (s *MatchOrchestrator) restorePersisted(ctx context.Context, ownerID int64,
	sessionID string) (*models.ResumeArtifact, error) {

	persisted, err := s.resumes.GetByOwner(ctx, ownerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to load persisted resume for owner %v: %v", ownerID, err)
		return nil, err
	}
	if persisted == nil {
		return nil, models.ErrNoResumeOnFile
	}

	persisted.SessionID = sessionID
	s.store.Put(*persisted)
	log.Infof("persisted resume %v restored into session %v", persisted.ID, sessionID)
	return persisted, nil
}

func extensionOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx:])
}
