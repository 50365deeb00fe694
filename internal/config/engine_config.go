package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type EngineConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	MaxResumeSizeBytes   int64         `mapstructure:"max_resume_size_bytes"`
	SessionTTL           time.Duration `mapstructure:"session_ttl"`
	ResumeRetention      time.Duration `mapstructure:"resume_retention"`
}

func (config EngineConfig) validate() error {

	var missingFields []string

	if config.BaseURL == "" {
		missingFields = append(missingFields, "base_url")
	}

	if config.RequestTimeout <= 0 {
		missingFields = append(missingFields, "request_timeout")
	}

	if config.SessionTTL <= 0 {
		missingFields = append(missingFields, "session_ttl")
	}

	if config.MaxResumeSizeBytes <= 0 {
		missingFields = append(missingFields, "max_resume_size_bytes")
	}

	if config.ResumeRetention <= 0 {
		missingFields = append(missingFields, "resume_retention")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config EngineConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("engine.base_url", "ENGINE_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("engine.request_timeout", "ENGINE_REQUEST_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("engine.max_requests_per_second", "ENGINE_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("engine.max_resume_size_bytes", "MAX_RESUME_SIZE_BYTES"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("engine.session_ttl", "SESSION_TTL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("engine.resume_retention", "RESUME_RETENTION"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
