package services

import (
	"context"
	"strings"

	"github.com/careerdock/jobportal/internal/clients/scraper"
	"github.com/careerdock/jobportal/internal/config"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type scrapedJobsSource interface {
	Scrape(ctx context.Context, query, location string) ([]scraper.ScrapedJob, error)
}

type importedPostingsRepository interface {
	Add(ctx context.Context, posting *models.JobPosting) error
	GetBySourceURL(ctx context.Context, sourceURL string) (*models.JobPosting, error)
}

// ScraperIngest pulls listings from the scraper service on a fixed interval
// and feeds new ones into the moderation queue. Imported postings enter
// pending like any employer submission; nothing scraped bypasses review.
// The source URL keys deduplication, so a listing seen in an earlier cycle
// is never imported twice.
type ScraperIngest struct {
	source   scrapedJobsSource
	postings importedPostingsRepository
	cfg      config.ScraperConfig
	cron     *cron.Cron
}

func NewScraperIngest(source scrapedJobsSource, postings importedPostingsRepository,
	cfg config.ScraperConfig) *ScraperIngest {
	return &ScraperIngest{source: source, postings: postings, cfg: cfg, cron: cron.New()}
}

func (s *ScraperIngest) Start() error {

	_, err := s.cron.AddFunc("@every "+s.cfg.FetchInterval.String(), func() {
		s.runCycle(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *ScraperIngest) Stop() {
	s.cron.Stop()
}

func (s *ScraperIngest) runCycle(ctx context.Context) {

	imported := 0
	for _, search := range s.cfg.Searches {
		jobs, err := s.source.Scrape(ctx, search.Query, search.Location)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
				Errorf("scrape failed for query %q: %v", search.Query, err)
			continue
		}

		for _, job := range jobs {
			ok, err := s.importJob(ctx, job)
			if err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
					Errorf("failed to import scraped job %q: %v", job.JobURL, err)
				continue
			}
			if ok {
				imported++
			}
		}
	}

	if imported > 0 {
		log.Infof("imported %v scraped postings into moderation queue", imported)
	}
}

// importJob returns true when the job produced a new pending posting.
func (s *ScraperIngest) importJob(ctx context.Context, job scraper.ScrapedJob) (bool, error) {

	if job.JobURL == "" || job.Title == "" || job.Company == "" ||
		job.Location == "" || job.Description == "" {
		log.Warnf("skipping incomplete scraped job %q from %v", job.Title, job.JobURL)
		return false, nil
	}

	existing, err := s.postings.GetBySourceURL(ctx, job.JobURL)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	jobType, err := models.ToJobType(job.JobType)
	if err != nil {
		jobType = models.FullTime
	}

	posting := models.NewJobPosting(s.cfg.ImporterID, strings.TrimSpace(job.Title),
		strings.TrimSpace(job.Company), strings.TrimSpace(job.Location),
		job.Description, jobType)
	posting.Requirements = job.Requirements
	posting.Salary = job.Salary
	posting.SourceURL = job.JobURL

	if err = s.postings.Add(ctx, posting); err != nil {
		return false, err
	}

	log.Infof("scraped posting %v imported from %v", posting.ID, job.JobURL)
	return true, nil
}
