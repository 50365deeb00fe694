package services

import (
	"context"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/clients/engine"
	"github.com/careerdock/jobportal/internal/domain/events"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type jobSink interface {
	AddJob(ctx context.Context, job engine.JobData) error
}

type postingLookup interface {
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
}

// CatalogSync mirrors approved postings into the engine's ranking universe.
// Sync is one way and best effort: a failed push is logged and counted, the
// approval itself already happened and is never rolled back.
type CatalogSync struct {
	postings postingLookup
	engine   jobSink
	timeout  time.Duration
}

func NewCatalogSync(postings postingLookup, sink jobSink, timeout time.Duration) *CatalogSync {
	return &CatalogSync{postings: postings, engine: sink, timeout: timeout}
}

func (s *CatalogSync) Register(bus EventBus.Bus) error {
	return bus.SubscribeAsync(events.PostingApprovedTopic, s.onPostingApproved, false)
}

func (s *CatalogSync) onPostingApproved(event events.PostingApproved) {

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	posting, err := s.postings.GetByID(ctx, event.PostingID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to load posting %v for engine sync: %v", event.PostingID, err)
		return
	}
	if posting == nil || !posting.Visible() {
		log.Warnf("posting %v no longer approved, skipping engine sync", event.PostingID)
		return
	}

	start := time.Now()
	err = s.engine.AddJob(ctx, engine.JobData{
		JobID:           strconv.FormatUint(uint64(posting.ID), 10),
		Title:           posting.Title,
		Description:     posting.Description,
		Company:         posting.Company,
		RequiredSkills:  posting.SkillsAsArray(),
		ExperienceYears: posting.ExperienceYears,
		Location:        posting.Location,
		SeniorityLevel:  posting.SeniorityLevel,
	})
	metrics.EngineStepDuration.WithLabelValues("add_job").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsCounter.WithLabelValues("add_job").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngineApi).
			Errorf("failed to push posting %v to engine: %v", posting.ID, err)
		return
	}

	log.Infof("posting %v synced to scoring engine", posting.ID)
}
