package eligibility

import (
	"math/rand"
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student() *types.StudentProfile {
	s := types.NewStudentProfile("S1", "Ayesha", 3.0, "Computer Science", 4)
	s.AddSkill("Python", types.Intermediate)
	s.AddSkill("SQL", types.Novice)
	s.CompletedCourses = []string{"Data Structures", "Database Systems"}
	return s
}

func TestCheck(t *testing.T) {
	f := New(DefaultRelaxation())

	tests := []struct {
		name          string
		topic         types.Topic
		strictPasses  bool
		relaxedPasses bool
	}{
		{
			name:          "all requirements met",
			topic:         types.Topic{ID: "A", MinCGPA: 2.5, RequiredSkills: map[string]types.Proficiency{"python": types.Intermediate}, RequiredCourses: []string{"data structures"}},
			strictPasses:  true,
			relaxedPasses: true,
		},
		{
			name:          "skill one tier short passes relaxed",
			topic:         types.Topic{ID: "B", RequiredSkills: map[string]types.Proficiency{"python": types.Advanced}},
			strictPasses:  false,
			relaxedPasses: true,
		},
		{
			name:          "missing skill fails even relaxed",
			topic:         types.Topic{ID: "C", RequiredSkills: map[string]types.Proficiency{"rust": types.Novice}},
			strictPasses:  false,
			relaxedPasses: false,
		},
		{
			name:          "cgpa within half a point passes relaxed",
			topic:         types.Topic{ID: "D", MinCGPA: 3.5},
			strictPasses:  false,
			relaxedPasses: true,
		},
		{
			name:          "cgpa too far below fails relaxed",
			topic:         types.Topic{ID: "E", MinCGPA: 3.6},
			strictPasses:  false,
			relaxedPasses: false,
		},
		{
			name:          "missing course is never relaxed",
			topic:         types.Topic{ID: "F", RequiredCourses: []string{"Compilers"}},
			strictPasses:  false,
			relaxedPasses: false,
		},
		{
			name:          "no requirements",
			topic:         types.Topic{ID: "G"},
			strictPasses:  true,
			relaxedPasses: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := student()
			assert.Equal(t, tt.strictPasses, f.Check(s, &tt.topic, false).Passed)
			assert.Equal(t, tt.relaxedPasses, f.Check(s, &tt.topic, true).Passed)
		})
	}
}

func TestCheck_ReportsEveryFailure(t *testing.T) {
	f := New(DefaultRelaxation())
	topic := types.Topic{
		ID:              "X",
		MinCGPA:         3.8,
		RequiredSkills:  map[string]types.Proficiency{"python": types.Expert, "go": types.Novice},
		RequiredCourses: []string{"Compilers"},
	}

	res := f.Check(student(), &topic, false)
	require.False(t, res.Passed)
	assert.Equal(t, []string{"Compilers"}, res.MissingCourses)
	require.Len(t, res.SkillGaps, 2)
	assert.Equal(t, "go", res.SkillGaps[0].Skill)
	assert.Equal(t, "python", res.SkillGaps[1].Skill)
	assert.InDelta(t, 0.8, res.CGPAShortBy, 1e-9)

	assert.Equal(t, []string{
		"missing required course Compilers",
		"missing skill go (needs NOVICE)",
		"python is INTERMEDIATE, needs EXPERT",
		"CGPA short by 0.80",
	}, res.Failures())
}

func TestMinCGPA_FlooredAtZero(t *testing.T) {
	f := New(DefaultRelaxation())
	topic := types.Topic{MinCGPA: 0.3}
	assert.Equal(t, 0.0, f.MinCGPA(&topic, true))
	assert.Equal(t, 0.3, f.MinCGPA(&topic, false))
}

func TestNew_ClampsNegativeRelaxation(t *testing.T) {
	f := New(Relaxation{ProficiencyTiers: -2, CGPADelta: -1})
	assert.Equal(t, Relaxation{}, f.Relaxation())
}

func TestEligible_PreservesOrder(t *testing.T) {
	f := New(DefaultRelaxation())
	topics := []types.Topic{{ID: "Z"}, {ID: "Q", MinCGPA: 4.0}, {ID: "A"}}
	got := f.Eligible(student(), topics, false)
	require.Len(t, got, 2)
	assert.Equal(t, "Z", got[0].ID)
	assert.Equal(t, "A", got[1].ID)
}

var skillPool = []string{"python", "sql", "java", "docker", "nlp", "html"}
var coursePool = []string{"Data Structures", "Statistics", "Web Engineering", "Database Systems"}

func randomStudent(r *rand.Rand) *types.StudentProfile {
	s := types.NewStudentProfile("S", "Random", float64(r.Intn(41))/10, "CS", 1+r.Intn(5))
	for _, sk := range skillPool {
		if r.Intn(2) == 0 {
			s.AddSkill(sk, types.Proficiency(1+r.Intn(4)))
		}
	}
	for _, c := range coursePool {
		if r.Intn(2) == 0 {
			s.CompletedCourses = append(s.CompletedCourses, c)
		}
	}
	return s
}

func randomTopic(r *rand.Rand, id string) types.Topic {
	t := types.Topic{ID: id, MinCGPA: float64(r.Intn(41)) / 10, RequiredSkills: map[string]types.Proficiency{}}
	for _, sk := range skillPool {
		if r.Intn(3) == 0 {
			t.RequiredSkills[sk] = types.Proficiency(1 + r.Intn(4))
		}
	}
	for _, c := range coursePool {
		if r.Intn(4) == 0 {
			t.RequiredCourses = append(t.RequiredCourses, c)
		}
	}
	return t
}

func TestEligible_RelaxedIsSuperset(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	f := New(DefaultRelaxation())

	for i := 0; i < 200; i++ {
		s := randomStudent(r)
		topics := make([]types.Topic, 25)
		for j := range topics {
			topics[j] = randomTopic(r, string(rune('A'+j)))
		}

		relaxed := make(map[string]bool)
		for _, tp := range f.Eligible(s, topics, true) {
			relaxed[tp.ID] = true
		}
		for _, tp := range f.Eligible(s, topics, false) {
			assert.True(t, relaxed[tp.ID], "topic %s passes strict but not relaxed", tp.ID)
		}
	}
}
