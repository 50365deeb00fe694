package services

import (
	"context"
	"time"

	"github.com/careerdock/jobportal/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredResumesRemover interface {
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// ResumesCleaner removes persisted resume artifacts past their retention
// window. Session-scoped artifacts expire on their own in the store.
type ResumesCleaner struct {
	resumes   expiredResumesRemover
	retention time.Duration
	cron      *cron.Cron
}

func NewResumesCleaner(resumes expiredResumesRemover, retention time.Duration) *ResumesCleaner {
	return &ResumesCleaner{resumes: resumes, retention: retention, cron: cron.New()}
}

func (c *ResumesCleaner) Start() error {

	_, err := c.cron.AddFunc("0 * * * *", func() {
		c.clean(context.Background())
	})
	if err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

func (c *ResumesCleaner) Stop() {
	c.cron.Stop()
}

func (c *ResumesCleaner) clean(ctx context.Context) {

	removed, err := c.resumes.RemoveExpired(ctx, time.Now().Add(-c.retention))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to clean up expired resumes: %v", err)
		return
	}

	if removed > 0 {
		log.Infof("removed %v expired resume artifacts", removed)
	}
}
