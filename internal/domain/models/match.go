package models

import "errors"

// MatchPolicy names a ranking strategy interpreted by the scoring engine.
// The orchestrator only validates the name; it never reimplements ranking.
type MatchPolicy string

const (
	PolicyStrict           MatchPolicy = "strict"
	PolicyFlexible         MatchPolicy = "flexible"
	PolicyGraduateFriendly MatchPolicy = "graduate_friendly"
	PolicyExperienceBased  MatchPolicy = "experience_based"
)

func ToMatchPolicy(s string) (MatchPolicy, error) {
	switch s {
	case string(PolicyStrict):
		return PolicyStrict, nil
	case string(PolicyFlexible):
		return PolicyFlexible, nil
	case string(PolicyGraduateFriendly):
		return PolicyGraduateFriendly, nil
	case string(PolicyExperienceBased):
		return PolicyExperienceBased, nil
	default:
		return "", errors.New("invalid matching policy")
	}
}

type MatchTier string

const (
	TierExcellent MatchTier = "EXCELLENT"
	TierGood      MatchTier = "GOOD"
	TierFair      MatchTier = "FAIR"
	TierLow       MatchTier = "LOW"
)

// MatchRequest is built per call and never persisted.
type MatchRequest struct {
	SessionID string
	Policy    MatchPolicy
	Limit     int
}

// MatchResult is rebuilt on every match call and never cached across
// policy switches.
type MatchResult struct {
	PostingID       uint
	Title           string
	Company         string
	Location        string
	CompositeScore  float64
	Tier            MatchTier
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64
	MatchedSkills   []string
	MissingSkills   []string
}
