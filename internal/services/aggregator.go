package services

import (
	"github.com/careerdock/jobportal/internal/config"
	"github.com/careerdock/jobportal/internal/domain/models"
)

// ScoreAggregator folds the engine's sub-scores into a composite score and
// tier. Weights are fixed at construction; the aggregator is total over its
// input domain, out-of-range sub-scores are clamped rather than rejected so
// one malformed entry cannot fail a whole result set.
type ScoreAggregator struct {
	skillWeight      float64
	experienceWeight float64
	educationWeight  float64
}

func NewScoreAggregator(cfg config.MatchingConfig) *ScoreAggregator {
	return &ScoreAggregator{
		skillWeight:      cfg.SkillWeight,
		experienceWeight: cfg.ExperienceWeight,
		educationWeight:  cfg.EducationWeight,
	}
}

// Aggregate returns the composite score in [0,1] and its tier. Sub-scores
// arrive on the engine's [0,100] scale.
func (a *ScoreAggregator) Aggregate(skillScore, experienceScore, educationScore float64) (float64, models.MatchTier) {

	composite := (clamp(skillScore)*a.skillWeight +
		clamp(experienceScore)*a.experienceWeight +
		clamp(educationScore)*a.educationWeight) / 100

	return composite, TierOf(composite)
}

func TierOf(composite float64) models.MatchTier {
	switch {
	case composite >= 0.8:
		return models.TierExcellent
	case composite >= 0.6:
		return models.TierGood
	case composite >= 0.4:
		return models.TierFair
	default:
		return models.TierLow
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
