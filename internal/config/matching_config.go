package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// MatchingConfig fixes the score weights per deployment. They are not
// tunable at call time and must sum to 1.
type MatchingConfig struct {
	SkillWeight      float64 `mapstructure:"skill_weight"`
	ExperienceWeight float64 `mapstructure:"experience_weight"`
	EducationWeight  float64 `mapstructure:"education_weight"`
	DefaultLimit     int     `mapstructure:"default_limit"`
	MaxLimit         int     `mapstructure:"max_limit"`
}

func (config MatchingConfig) validate() error {

	sum := config.SkillWeight + config.ExperienceWeight + config.EducationWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("matching weights must sum to 1, got %v", sum)
	}

	if config.SkillWeight < 0 || config.ExperienceWeight < 0 || config.EducationWeight < 0 {
		return fmt.Errorf("matching weights must be non-negative")
	}

	if config.DefaultLimit <= 0 || config.MaxLimit <= 0 || config.DefaultLimit > config.MaxLimit {
		return fmt.Errorf("invalid match limits: default %d, max %d", config.DefaultLimit, config.MaxLimit)
	}

	return nil
}

func (config MatchingConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("matching.skill_weight", "MATCHING_SKILL_WEIGHT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.experience_weight", "MATCHING_EXPERIENCE_WEIGHT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.education_weight", "MATCHING_EDUCATION_WEIGHT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.default_limit", "MATCHING_DEFAULT_LIMIT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.max_limit", "MATCHING_MAX_LIMIT"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
