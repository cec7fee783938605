// Package explain turns score breakdowns and feasibility assessments into
// human-readable reasons. Output depends only on its inputs.
package explain

import (
	"fmt"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/analysis"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/eligibility"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// DefaultMateriality is the component value a score part must exceed to be mentioned.
const DefaultMateriality = 0.1

// highSimilarity separates "high" from "moderate" content similarity.
const highSimilarity = 0.3

// maxListed caps how many skills a single reason lists.
const maxListed = 3

// Explanation is the text attached to one recommendation.
type Explanation struct {
	Summary      string
	MatchReasons []string
	RiskReasons  []string
}

// Generator renders explanations.
type Generator struct {
	materiality float64
}

// New creates a generator. A negative materiality is treated as zero.
func New(materiality float64) *Generator {
	if materiality < 0 {
		materiality = 0
	}
	return &Generator{materiality: materiality}
}

// Explain describes a rule-based recommendation.
func (g *Generator) Explain(student *types.StudentProfile, topic *types.Topic, score float64, b types.ScoreBreakdown, as analysis.Assessment) Explanation {
	reasons := make([]string, 0)

	if b.Interest > g.materiality {
		if b.InterestLevel.Valid() {
			reasons = append(reasons, fmt.Sprintf("Matches your interest in %s at %s level", topic.Domain, b.InterestLevel.Label()))
		} else if b.PreferredDomain {
			reasons = append(reasons, fmt.Sprintf("Aligns with your preferred domain %s", topic.Domain))
		}
	}

	if b.Skill > g.materiality {
		if len(topic.RequiredSkills) == 0 {
			reasons = append(reasons, "No specific skills are required")
		}
		for _, skill := range b.SkillsExceeded {
			reasons = append(reasons, fmt.Sprintf("You exceed the skill requirement for %s", skill))
		}
		for _, skill := range b.SkillsMet {
			reasons = append(reasons, fmt.Sprintf("You meet the skill requirement for %s", skill))
		}
	}

	if b.Course > g.materiality && len(b.RelatedCompleted) > 0 {
		reasons = append(reasons, fmt.Sprintf("Your completed coursework supports this topic: %s", strings.Join(b.RelatedCompleted, ", ")))
	}

	if len(as.Inferred) > 0 {
		reasons = append(reasons, fmt.Sprintf("Your courses cover %s", strings.Join(as.Inferred, ", ")))
	}

	summary := fmt.Sprintf("%s is a %s match with %d%% feasibility and %s risk.",
		topic.Title, percent(score), int(types.Clamp01(as.Feasibility)*100), strings.ToLower(string(as.Risk)))
	if len(as.Reasons) > 0 {
		summary += " Main concern: " + as.Reasons[0] + "."
	}

	return Explanation{
		Summary:      summary,
		MatchReasons: reasons,
		RiskReasons:  append([]string{}, as.Reasons...),
	}
}

// ExplainFallback describes a topic added by similarity matching. It always
// discloses that strict requirements were not the basis of the suggestion.
// strict is the topic's strict hard-gate result.
func (g *Generator) ExplainFallback(student *types.StudentProfile, topic *types.Topic, similarity float64, relaxedPass bool, strict eligibility.Result, as analysis.Assessment) Explanation {
	reasons := make([]string, 0)

	if similarity > highSimilarity {
		reasons = append(reasons, fmt.Sprintf("High content similarity (%s) with your profile", percent(similarity)))
	} else {
		reasons = append(reasons, fmt.Sprintf("Moderate content similarity (%s) with your profile", percent(similarity)))
	}

	if level := student.InterestIn(topic.Domain); level.Valid() {
		reasons = append(reasons, fmt.Sprintf("Matches your interest in %s at %s level", topic.Domain, level.Label()))
	} else if student.PrefersDomain(topic.Domain) {
		reasons = append(reasons, fmt.Sprintf("Aligns with your preferred domain %s", topic.Domain))
	}

	var relevant []string
	for _, skill := range topic.RequiredSkillNames() {
		if student.SkillLevel(skill).Valid() {
			relevant = append(relevant, skill)
		}
	}
	if len(relevant) > maxListed {
		relevant = relevant[:maxListed]
	}
	if len(relevant) > 0 {
		reasons = append(reasons, fmt.Sprintf("You have some relevant skills: %s", strings.Join(relevant, ", ")))
	}

	// skill gaps are already part of the assessment reasons
	risks := make([]string, 0, len(strict.MissingCourses)+1+len(as.Reasons))
	for _, course := range strict.MissingCourses {
		risks = append(risks, fmt.Sprintf("Missing required course %s", course))
	}
	if strict.CGPAShortBy > 0 {
		risks = append(risks, fmt.Sprintf("CGPA is %.2f below the minimum of %.2f", strict.CGPAShortBy, topic.MinCGPA))
	}
	risks = append(risks, as.Reasons...)

	var summary string
	if relaxedPass {
		summary = fmt.Sprintf("%s was suggested by relaxed ML matching (%s similar to your profile): it meets loosened requirements but not every strict one.",
			topic.Title, percent(similarity))
	} else {
		summary = fmt.Sprintf("%s was suggested by ML similarity matching (%s similar to your profile) because too few topics met every requirement; expect to close gaps before starting.",
			topic.Title, percent(similarity))
	}

	return Explanation{
		Summary:      summary,
		MatchReasons: reasons,
		RiskReasons:  risks,
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", types.Clamp01(v)*100)
}
