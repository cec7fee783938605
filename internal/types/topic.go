//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Difficulty tiers used by generated topics.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Topic is an immutable catalog entry.
type Topic struct {
	ID                   string                 `json:"id" validate:"required"`
	Title                string                 `json:"title" validate:"required"`
	Description          string                 `json:"description"`
	Domain               string                 `json:"domain" validate:"required"`
	Technique            string                 `json:"technique,omitempty"`
	Context              string                 `json:"context,omitempty"`
	Difficulty           string                 `json:"difficulty"`
	MinCGPA              float64                `json:"min_cgpa" validate:"gte=0,lte=4"`
	RequiredSkills       map[string]Proficiency `json:"required_skills"`
	RequiredCourses      []string               `json:"required_courses"`
	EstimatedWeeklyHours int                    `json:"estimated_weekly_hours" validate:"gte=0"`
	TeamSizeMin          int                    `json:"team_size_min" validate:"gte=0"`
	TeamSizeMax          int                    `json:"team_size_max" validate:"gtefield=TeamSizeMin"`
	RiskFactors          []string               `json:"risk_factors,omitempty"`
	Keywords             []string               `json:"keywords,omitempty"`
}

// RequiredSkillNames returns the required skill names sorted for deterministic iteration.
func (t *Topic) RequiredSkillNames() []string {
	names := make([]string, 0, len(t.RequiredSkills))
	for name := range t.RequiredSkills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiresCourse reports whether the course is one of the topic's required courses.
func (t *Topic) RequiresCourse(course string) bool {
	key := NormalizeName(course)
	for _, c := range t.RequiredCourses {
		if NormalizeName(c) == key {
			return true
		}
	}
	return false
}

// TeamSizeFits reports whether size lies in the topic's team size range.
// A zero size means no preference and always fits.
func (t *Topic) TeamSizeFits(size int) bool {
	if size <= 0 {
		return true
	}
	if t.TeamSizeMin > 0 && size < t.TeamSizeMin {
		return false
	}
	if t.TeamSizeMax > 0 && size > t.TeamSizeMax {
		return false
	}
	return true
}
