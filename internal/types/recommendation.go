//nolint:revive // types is a standard Go package name pattern
package types

import "math"

// Source tells how a recommendation entered the result list.
type Source string

const (
	SourceRuleBased  Source = "RULE_BASED"
	SourceMLFallback Source = "ML_FALLBACK"
)

// RiskLevel is a coarse feasibility bucket.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ScoreBreakdown holds the per-component values of a match score, each in [0,1].
type ScoreBreakdown struct {
	Interest float64 `json:"interest"`
	Skill    float64 `json:"skill"`
	Course   float64 `json:"course"`

	InterestLevel    InterestLevel `json:"-"`
	PreferredDomain  bool          `json:"preferred_domain"`
	SkillsExceeded   []string      `json:"skills_exceeded,omitempty"`
	SkillsMet        []string      `json:"skills_met,omitempty"`
	SkillsShort      []string      `json:"skills_short,omitempty"`
	RelatedCompleted []string      `json:"related_completed,omitempty"`
}

// Recommendation is one ranked, explained topic for a student.
type Recommendation struct {
	Rank             int            `json:"rank"`
	Topic            Topic          `json:"topic"`
	MatchScore       float64        `json:"match_score"`
	FeasibilityScore float64        `json:"feasibility_score"`
	RiskLevel        RiskLevel      `json:"risk_level"`
	MatchReasons     []string       `json:"match_reasons"`
	RiskReasons      []string       `json:"risk_reasons"`
	Explanation      string         `json:"explanation"`
	Source           Source         `json:"source"`
	Similarity       float64        `json:"similarity,omitempty"`
	Breakdown        ScoreBreakdown `json:"breakdown"`
}

// MatchPercent returns the match score on the 0-100 external scale.
func (r *Recommendation) MatchPercent() float64 {
	return math.Round(Clamp01(r.MatchScore)*10000) / 100
}

// FeasibilityPercent returns the feasibility on the 0-100 external scale.
func (r *Recommendation) FeasibilityPercent() int {
	return int(Clamp01(r.FeasibilityScore) * 100)
}

// RecommendationSet is the result of a recommendation request. A Shortfall
// greater than zero means the catalog could not fill the request; it is a
// degraded result, not an error.
type RecommendationSet struct {
	StudentID       string           `json:"student_id"`
	Requested       int              `json:"requested"`
	Qualified       int              `json:"qualified"`
	FallbackUsed    bool             `json:"fallback_used"`
	Shortfall       int              `json:"shortfall"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Clamp01 bounds v to [0,1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
