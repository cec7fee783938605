// Package analysis estimates how feasible a topic is for a student and assigns
// a risk tier with reasons.
package analysis

import (
	"fmt"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// Feasibility cut-offs for the risk tiers.
const (
	LowRiskFeasibility    = 0.8
	MediumRiskFeasibility = 0.5
)

// DefaultAdvancedCGPA is the CGPA under which an Advanced topic is flagged.
const DefaultAdvancedCGPA = 3.0

// Gap is a required skill the student's effective skill set does not meet.
type Gap struct {
	Skill string            `json:"skill"`
	Have  types.Proficiency `json:"have,omitempty"`
	Need  types.Proficiency `json:"need"`
}

// Assessment is the feasibility verdict for one student and topic.
type Assessment struct {
	Feasibility float64         `json:"feasibility"`
	Risk        types.RiskLevel `json:"risk"`
	Gaps        []Gap           `json:"gaps,omitempty"`
	// Inferred lists requirements met only thanks to completed courses.
	Inferred        []string `json:"inferred,omitempty"`
	HoursOver       int      `json:"hours_over,omitempty"`
	TeamMismatch    bool     `json:"team_mismatch,omitempty"`
	NoInterest      bool     `json:"no_interest,omitempty"`
	AdvancedLowCGPA bool     `json:"advanced_low_cgpa,omitempty"`
	Reasons         []string `json:"reasons"`
}

// Analyzer computes assessments. It is read-only after construction.
type Analyzer struct {
	courseSkills catalog.CourseSkillTable
	advancedCGPA float64
}

// NewAnalyzer creates an analyzer that infers skills from the given course table.
func NewAnalyzer(courseSkills catalog.CourseSkillTable) *Analyzer {
	return &Analyzer{courseSkills: courseSkills, advancedCGPA: DefaultAdvancedCGPA}
}

// EffectiveSkills merges the student's declared skills with the skills inferred
// from completed courses, keeping the higher level of each.
func (a *Analyzer) EffectiveSkills(student *types.StudentProfile) map[string]types.Proficiency {
	effective := student.SkillMap()
	for skill, level := range a.courseSkills.InferSkills(student.CompletedCourses) {
		if level > effective[skill] {
			effective[skill] = level
		}
	}
	return effective
}

// RiskFor maps a feasibility ratio to a risk tier.
func RiskFor(feasibility float64) types.RiskLevel {
	switch {
	case feasibility >= LowRiskFeasibility:
		return types.RiskLow
	case feasibility >= MediumRiskFeasibility:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

// Analyze computes the feasibility ratio against the effective skill set, the
// risk tier, and the secondary risk signals. Secondary signals add reasons but
// never change the tier.
func (a *Analyzer) Analyze(student *types.StudentProfile, topic *types.Topic) Assessment {
	var as Assessment

	declared := student.SkillMap()
	effective := a.EffectiveSkills(student)

	names := topic.RequiredSkillNames()
	met := 0
	for _, name := range names {
		need := topic.RequiredSkills[name]
		have := effective[name]
		if have.Valid() && have >= need {
			met++
			if declared[name] < need {
				as.Inferred = append(as.Inferred, name)
			}
			continue
		}
		as.Gaps = append(as.Gaps, Gap{Skill: name, Have: have, Need: need})
	}

	as.Feasibility = 1
	if len(names) > 0 {
		as.Feasibility = float64(met) / float64(len(names))
	}
	as.Feasibility = types.Clamp01(as.Feasibility)
	as.Risk = RiskFor(as.Feasibility)

	if student.MaxWeeklyHours > 0 && topic.EstimatedWeeklyHours > student.MaxWeeklyHours {
		as.HoursOver = topic.EstimatedWeeklyHours - student.MaxWeeklyHours
	}
	as.TeamMismatch = !topic.TeamSizeFits(student.PreferredTeamSize)
	as.NoInterest = !student.InterestIn(topic.Domain).Valid() && !student.PrefersDomain(topic.Domain)
	as.AdvancedLowCGPA = topic.Difficulty == types.DifficultyAdvanced && student.CGPA < a.advancedCGPA

	as.Reasons = a.reasons(student, topic, &as)
	return as
}

func (a *Analyzer) reasons(student *types.StudentProfile, topic *types.Topic, as *Assessment) []string {
	reasons := make([]string, 0)

	if as.HoursOver > 0 {
		reasons = append(reasons, fmt.Sprintf("Requires about %d hours/week, %d more than your limit of %d",
			topic.EstimatedWeeklyHours, as.HoursOver, student.MaxWeeklyHours))
	}
	if as.TeamMismatch {
		reasons = append(reasons, fmt.Sprintf("Team size %d-%d does not fit your preferred size of %d",
			topic.TeamSizeMin, topic.TeamSizeMax, student.PreferredTeamSize))
	}
	for _, g := range as.Gaps {
		if g.Have.Valid() {
			reasons = append(reasons, fmt.Sprintf("Skill gap in %s: you are %s, %s is expected",
				g.Skill, strings.ToLower(g.Have.String()), strings.ToLower(g.Need.String())))
		} else {
			reasons = append(reasons, fmt.Sprintf("Missing skill %s (%s level expected)",
				g.Skill, strings.ToLower(g.Need.String())))
		}
	}
	if as.NoInterest {
		reasons = append(reasons, fmt.Sprintf("No declared interest in %s", topic.Domain))
	}
	if as.AdvancedLowCGPA {
		reasons = append(reasons, fmt.Sprintf("Advanced topic with a CGPA of %.2f (below %.2f)", student.CGPA, a.advancedCGPA))
	}
	if as.Risk == types.RiskHigh && len(topic.RiskFactors) > 0 {
		reasons = append(reasons, "Known risks: "+strings.Join(topic.RiskFactors, ", "))
	}
	return reasons
}
