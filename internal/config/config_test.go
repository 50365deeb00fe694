package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")
	os.Setenv("DB_CONNECTION_STRING", "overrideConnectionString")
	os.Setenv("JWT_SECRET", "overrideSecret")
	os.Setenv("SERVER_PORT", "9999")
	os.Setenv("ENGINE_BASE_URL", "http://engine.test:8000")
	os.Setenv("ENGINE_REQUEST_TIMEOUT", "3s")
	os.Setenv("SESSION_TTL", "15m")

	cfg := Get()

	assert.Equal(t, "overrideConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, "overrideSecret", cfg.Server.JWTSecret)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "http://engine.test:8000", cfg.Engine.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Engine.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Engine.SessionTTL)
}

func Test_Config_DisabledScraperSkipsValidation(t *testing.T) {

	cfg := ScraperConfig{Enabled: false}
	assert.NoError(t, cfg.validate())

	cfg.Enabled = true
	assert.Error(t, cfg.validate())

	cfg.BaseURL = "http://scraper.test"
	cfg.RequestTimeout = 15 * time.Second
	cfg.FetchInterval = 30 * time.Minute
	cfg.Searches = []ScraperSearch{{Query: "backend"}}
	assert.NoError(t, cfg.validate())
}

func Test_Config_WeightsMustSumToOne(t *testing.T) {

	cfg := MatchingConfig{
		SkillWeight:      0.5,
		ExperienceWeight: 0.3,
		EducationWeight:  0.1,
		DefaultLimit:     10,
		MaxLimit:         50,
	}
	assert.Error(t, cfg.validate())

	cfg.EducationWeight = 0.2
	assert.NoError(t, cfg.validate())
}
