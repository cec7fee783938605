package explain

import (
	"strings"
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/analysis"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/eligibility"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() (*types.StudentProfile, types.Topic) {
	s := types.NewStudentProfile("S1", "Bilal", 3.4, "Computer Science", 4)
	s.AddSkill("python", types.Advanced)
	s.AddSkill("sql", types.Intermediate)
	s.AddInterest("Data Science", types.InterestHigh)
	topic := types.Topic{
		ID:             "T1",
		Title:          "Sales Forecasting",
		Domain:         "Data Science",
		MinCGPA:        3.0,
		RequiredSkills: map[string]types.Proficiency{"python": types.Intermediate, "sql": types.Intermediate},
	}
	return s, topic
}

func TestExplain_MatchReasons(t *testing.T) {
	s, topic := fixture()
	g := New(DefaultMateriality)
	b := types.ScoreBreakdown{
		Interest:         0.75,
		Skill:            0.625,
		Course:           0.5,
		InterestLevel:    types.InterestHigh,
		PreferredDomain:  true,
		SkillsExceeded:   []string{"python"},
		SkillsMet:        []string{"sql"},
		RelatedCompleted: []string{"statistics"},
	}
	as := analysis.Assessment{Feasibility: 1, Risk: types.RiskLow, Reasons: []string{}}

	e := g.Explain(s, &topic, 0.69, b, as)
	assert.Equal(t, []string{
		"Matches your interest in Data Science at high level",
		"You exceed the skill requirement for python",
		"You meet the skill requirement for sql",
		"Your completed coursework supports this topic: statistics",
	}, e.MatchReasons)
	assert.Empty(t, e.RiskReasons)
	assert.Equal(t, "Sales Forecasting is a 69% match with 100% feasibility and low risk.", e.Summary)
}

func TestExplain_MaterialityThreshold(t *testing.T) {
	s, topic := fixture()
	g := New(0.5)
	b := types.ScoreBreakdown{Interest: 0.25, InterestLevel: types.InterestLow, Skill: 0.4, SkillsMet: []string{"sql"}, Course: 0.1}
	as := analysis.Assessment{Feasibility: 0.5, Risk: types.RiskMedium, Reasons: []string{"Skill gap in python: you are novice, intermediate is expected"}}

	e := g.Explain(s, &topic, 0.3, b, as)
	assert.Empty(t, e.MatchReasons)
	assert.Equal(t, as.Reasons, e.RiskReasons)
	assert.True(t, strings.HasSuffix(e.Summary, "Main concern: Skill gap in python: you are novice, intermediate is expected."))
}

func TestExplain_PreferredDomainWithoutInterest(t *testing.T) {
	s, topic := fixture()
	g := New(DefaultMateriality)
	b := types.ScoreBreakdown{Interest: 0.5, PreferredDomain: true}
	e := g.Explain(s, &topic, 0.2, b, analysis.Assessment{Risk: types.RiskHigh})
	require.NotEmpty(t, e.MatchReasons)
	assert.Equal(t, "Aligns with your preferred domain Data Science", e.MatchReasons[0])
}

func TestExplain_Deterministic(t *testing.T) {
	s, topic := fixture()
	g := New(DefaultMateriality)
	b := types.ScoreBreakdown{Interest: 1, Skill: 1, InterestLevel: types.InterestVeryHigh, SkillsExceeded: []string{"python", "sql"}}
	as := analysis.Assessment{Feasibility: 1, Risk: types.RiskLow, Inferred: []string{"sql"}}

	assert.Equal(t, g.Explain(s, &topic, 0.9, b, as), g.Explain(s, &topic, 0.9, b, as))
}

func TestExplainFallback_DisclosesMLMatching(t *testing.T) {
	s, topic := fixture()
	topic.RequiredCourses = []string{"Statistics"}
	topic.MinCGPA = 3.8
	g := New(DefaultMateriality)

	strict := eligibility.Result{TopicID: "T1", MissingCourses: []string{"Statistics"}, CGPAShortBy: 0.4}
	as := analysis.Assessment{Feasibility: 1, Risk: types.RiskLow, Reasons: []string{}}

	e := g.ExplainFallback(s, &topic, 0.42, false, strict, as)
	assert.Contains(t, e.Summary, "ML similarity matching")
	assert.Contains(t, e.Summary, "42%")
	assert.Equal(t, []string{
		"High content similarity (42%) with your profile",
		"Matches your interest in Data Science at high level",
		"You have some relevant skills: python, sql",
	}, e.MatchReasons)
	assert.Equal(t, []string{
		"Missing required course Statistics",
		"CGPA is 0.40 below the minimum of 3.80",
	}, e.RiskReasons)

	relaxed := g.ExplainFallback(s, &topic, 0.1, true, strict, as)
	assert.Contains(t, relaxed.Summary, "relaxed ML matching")
	assert.Equal(t, "Moderate content similarity (10%) with your profile", relaxed.MatchReasons[0])
}
