// Package eligibility applies the hard constraints that decide whether a student
// may take a topic at all.
package eligibility

import (
	"fmt"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// cgpaEpsilon absorbs float error in derived thresholds such as 3.84 - 0.5.
const cgpaEpsilon = 1e-9

// Relaxation says how far relaxed mode loosens each threshold.
type Relaxation struct {
	ProficiencyTiers int     `json:"proficiency_tiers"`
	CGPADelta        float64 `json:"cgpa_delta"`
}

// DefaultRelaxation lowers skill requirements by one tier and CGPA by 0.5.
func DefaultRelaxation() Relaxation {
	return Relaxation{ProficiencyTiers: 1, CGPADelta: 0.5}
}

// SkillGap is a required skill the student does not meet.
type SkillGap struct {
	Skill string            `json:"skill"`
	Have  types.Proficiency `json:"have,omitempty"`
	Need  types.Proficiency `json:"need"`
}

// Result is the outcome of checking one topic.
type Result struct {
	TopicID        string     `json:"topic_id"`
	Passed         bool       `json:"passed"`
	Relaxed        bool       `json:"relaxed"`
	MissingCourses []string   `json:"missing_courses,omitempty"`
	SkillGaps      []SkillGap `json:"skill_gaps,omitempty"`
	CGPAShortBy    float64    `json:"cgpa_short_by,omitempty"`
}

// Failures renders the reasons a topic failed, in check order.
func (r *Result) Failures() []string {
	var out []string
	for _, c := range r.MissingCourses {
		out = append(out, fmt.Sprintf("missing required course %s", c))
	}
	for _, g := range r.SkillGaps {
		if g.Have.Valid() {
			out = append(out, fmt.Sprintf("%s is %s, needs %s", g.Skill, g.Have, g.Need))
		} else {
			out = append(out, fmt.Sprintf("missing skill %s (needs %s)", g.Skill, g.Need))
		}
	}
	if r.CGPAShortBy > 0 {
		out = append(out, fmt.Sprintf("CGPA short by %.2f", r.CGPAShortBy))
	}
	return out
}

// Filter is the hard gate. It is stateless and safe for concurrent use.
type Filter struct {
	relax Relaxation
}

// New creates a filter. Negative relaxation values are treated as zero.
func New(relax Relaxation) *Filter {
	if relax.ProficiencyTiers < 0 {
		relax.ProficiencyTiers = 0
	}
	if relax.CGPADelta < 0 {
		relax.CGPADelta = 0
	}
	return &Filter{relax: relax}
}

// Relaxation returns the filter's relaxed-mode settings.
func (f *Filter) Relaxation() Relaxation {
	return f.relax
}

// Check runs the course, skill and CGPA checks for one topic. Every check runs
// so the result lists all failures, not just the first.
func (f *Filter) Check(student *types.StudentProfile, topic *types.Topic, relaxed bool) Result {
	res := Result{TopicID: topic.ID, Relaxed: relaxed}

	// (a) every required course completed
	completed := student.CompletedSet()
	for _, course := range topic.RequiredCourses {
		if !completed[types.NormalizeName(course)] {
			res.MissingCourses = append(res.MissingCourses, course)
		}
	}

	// (b) every required skill possessed at the (possibly lowered) level
	for _, name := range topic.RequiredSkillNames() {
		need := topic.RequiredSkills[name]
		if relaxed {
			need = need.Lower(f.relax.ProficiencyTiers)
		}
		have := student.SkillLevel(name)
		if !have.Valid() || have < need {
			res.SkillGaps = append(res.SkillGaps, SkillGap{Skill: name, Have: have, Need: need})
		}
	}

	// (c) CGPA at or above the (possibly lowered) minimum
	minCGPA := f.MinCGPA(topic, relaxed)
	if student.CGPA+cgpaEpsilon < minCGPA {
		res.CGPAShortBy = minCGPA - student.CGPA
	}

	res.Passed = len(res.MissingCourses) == 0 && len(res.SkillGaps) == 0 && res.CGPAShortBy == 0
	return res
}

// MinCGPA returns the CGPA a topic demands in the given mode, floored at zero.
func (f *Filter) MinCGPA(topic *types.Topic, relaxed bool) float64 {
	minCGPA := topic.MinCGPA
	if relaxed {
		minCGPA -= f.relax.CGPADelta
	}
	if minCGPA < 0 {
		return 0
	}
	return minCGPA
}

// Passes reports whether the topic clears the gate.
func (f *Filter) Passes(student *types.StudentProfile, topic *types.Topic, relaxed bool) bool {
	res := f.Check(student, topic, relaxed)
	return res.Passed
}

// Eligible returns the topics that pass, preserving input order.
func (f *Filter) Eligible(student *types.StudentProfile, topics []types.Topic, relaxed bool) []types.Topic {
	out := make([]types.Topic, 0, len(topics))
	for i := range topics {
		if f.Passes(student, &topics[i], relaxed) {
			out = append(out, topics[i])
		}
	}
	return out
}
