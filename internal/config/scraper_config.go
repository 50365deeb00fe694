package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ScraperSearch is one query the ingest service runs against the scraper
// feed every cycle.
type ScraperSearch struct {
	Query    string `mapstructure:"query"`
	Location string `mapstructure:"location"`
}

type ScraperConfig struct {
	Enabled        bool            `mapstructure:"enabled"`
	BaseURL        string          `mapstructure:"base_url"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	FetchInterval  time.Duration   `mapstructure:"fetch_interval"`
	ImporterID     int64           `mapstructure:"importer_id"`
	Searches       []ScraperSearch `mapstructure:"searches"`
}

func (config ScraperConfig) validate() error {

	if !config.Enabled {
		return nil
	}

	var missingFields []string

	if config.BaseURL == "" {
		missingFields = append(missingFields, "base_url")
	}

	if config.RequestTimeout <= 0 {
		missingFields = append(missingFields, "request_timeout")
	}

	if config.FetchInterval <= 0 {
		missingFields = append(missingFields, "fetch_interval")
	}

	if len(config.Searches) == 0 {
		missingFields = append(missingFields, "searches")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("scraper.enabled", "SCRAPER_ENABLED"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.base_url", "SCRAPER_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.request_timeout", "SCRAPER_REQUEST_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.fetch_interval", "SCRAPER_FETCH_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
