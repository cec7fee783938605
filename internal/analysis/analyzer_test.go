package analysis

import (
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskFor(t *testing.T) {
	tests := []struct {
		feasibility float64
		want        types.RiskLevel
	}{
		{1.0, types.RiskLow},
		{0.8, types.RiskLow},
		{0.79, types.RiskMedium},
		{0.5, types.RiskMedium},
		{0.49, types.RiskHigh},
		{0, types.RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskFor(tt.feasibility), "feasibility %v", tt.feasibility)
	}
}

func TestEffectiveSkills_MergesCourses(t *testing.T) {
	a := NewAnalyzer(catalog.DefaultCourseSkills())
	s := types.NewStudentProfile("S", "N", 3, "CS", 3)
	s.AddSkill("Python", types.Expert)
	s.AddSkill("Mathematics", types.Novice)
	s.CompletedCourses = []string{"Artificial Intelligence"}

	eff := a.EffectiveSkills(s)
	assert.Equal(t, types.Expert, eff["python"], "declared level wins when higher")
	assert.Equal(t, types.Intermediate, eff["mathematics"], "inferred level wins when higher")
	assert.Equal(t, types.Intermediate, eff["machine learning"])
}

func TestAnalyze_CourseInferenceRaisesFeasibility(t *testing.T) {
	a := NewAnalyzer(catalog.DefaultCourseSkills())
	s := types.NewStudentProfile("S", "N", 3.2, "CS", 4)
	s.AddInterest("Web Development", types.InterestHigh)
	topic := types.Topic{
		ID:             "W",
		Domain:         "Web Development",
		RequiredSkills: map[string]types.Proficiency{"html": types.Intermediate, "css": types.Intermediate},
		TeamSizeMin:    1,
		TeamSizeMax:    3,
	}

	before := a.Analyze(s, &topic)
	assert.Equal(t, 0.0, before.Feasibility)
	assert.Equal(t, types.RiskHigh, before.Risk)
	assert.Len(t, before.Gaps, 2)

	s.CompletedCourses = []string{"Web Engineering"}
	after := a.Analyze(s, &topic)
	assert.Equal(t, 1.0, after.Feasibility)
	assert.Equal(t, types.RiskLow, after.Risk)
	assert.Equal(t, []string{"css", "html"}, after.Inferred)
	assert.Empty(t, after.Reasons)
}

func TestAnalyze_NoRequiredSkills(t *testing.T) {
	a := NewAnalyzer(catalog.DefaultCourseSkills())
	s := types.NewStudentProfile("S", "N", 3.2, "CS", 4)
	as := a.Analyze(s, &types.Topic{ID: "T", Domain: "IoT"})
	assert.Equal(t, 1.0, as.Feasibility)
	assert.Equal(t, types.RiskLow, as.Risk)
	assert.True(t, as.NoInterest)
}

func TestAnalyze_SecondaryReasons(t *testing.T) {
	a := NewAnalyzer(catalog.DefaultCourseSkills())
	s := types.NewStudentProfile("S", "N", 2.6, "CS", 4)
	s.MaxWeeklyHours = 10
	s.PreferredTeamSize = 5
	s.AddSkill("python", types.Novice)

	topic := types.Topic{
		ID:                   "DL",
		Domain:               "Artificial Intelligence",
		Difficulty:           types.DifficultyAdvanced,
		EstimatedWeeklyHours: 22,
		TeamSizeMin:          1,
		TeamSizeMax:          3,
		RequiredSkills:       map[string]types.Proficiency{"python": types.Advanced, "pytorch": types.Intermediate},
		RiskFactors:          []string{"High computational requirements"},
	}

	as := a.Analyze(s, &topic)
	require.Equal(t, types.RiskHigh, as.Risk)
	assert.Equal(t, 12, as.HoursOver)
	assert.True(t, as.TeamMismatch)
	assert.True(t, as.NoInterest)
	assert.True(t, as.AdvancedLowCGPA)
	assert.Equal(t, []string{
		"Requires about 22 hours/week, 12 more than your limit of 10",
		"Team size 1-3 does not fit your preferred size of 5",
		"Skill gap in python: you are novice, advanced is expected",
		"Missing skill pytorch (intermediate level expected)",
		"No declared interest in Artificial Intelligence",
		"Advanced topic with a CGPA of 2.60 (below 3.00)",
		"Known risks: High computational requirements",
	}, as.Reasons)
}

func TestAnalyze_SecondarySignalsDoNotChangeTier(t *testing.T) {
	a := NewAnalyzer(catalog.DefaultCourseSkills())
	s := types.NewStudentProfile("S", "N", 2.0, "CS", 4)
	s.MaxWeeklyHours = 1
	s.AddSkill("go", types.Expert)

	topic := types.Topic{
		ID:                   "T",
		Difficulty:           types.DifficultyAdvanced,
		EstimatedWeeklyHours: 40,
		RequiredSkills:       map[string]types.Proficiency{"go": types.Advanced},
		RiskFactors:          []string{"never listed for low risk"},
	}
	as := a.Analyze(s, &topic)
	assert.Equal(t, types.RiskLow, as.Risk)
	assert.NotEmpty(t, as.Reasons)
	for _, r := range as.Reasons {
		assert.NotContains(t, r, "never listed")
	}
}
