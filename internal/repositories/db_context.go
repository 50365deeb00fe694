package repositories

import (
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.JobPosting{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate JobPosting entity")
	}

	err = c.DB.AutoMigrate(models.ModerationDecision{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate ModerationDecision entity")
	}

	err = c.DB.AutoMigrate(models.ResumeArtifact{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate ResumeArtifact entity")
	}

	err = c.DB.AutoMigrate(models.SavedJob{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate SavedJob entity")
	}

	err = c.DB.AutoMigrate(models.Application{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate Application entity")
	}

	if err = c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_postings_state ON job_postings (state); " +
		"CREATE INDEX IF NOT EXISTS idx_postings_employer ON job_postings (employer_id);").
		Error; err != nil {
		return errors.Wrap(err, "failed to create posting indexes")
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
