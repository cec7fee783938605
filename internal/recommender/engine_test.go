package recommender

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/logging"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/ranking"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopics() []types.Topic {
	return []types.Topic{
		{ID: "AI1", Title: "Intelligent Tutor", Description: "Machine learning tutor that adapts to students", Domain: "AI",
			Difficulty: types.DifficultyIntermediate, MinCGPA: 3.0, EstimatedWeeklyHours: 15, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"python": types.Intermediate}},
		{ID: "DS1", Title: "Churn Analytics", Description: "Machine learning analytics for customer churn", Domain: "Data Science",
			Difficulty: types.DifficultyIntermediate, MinCGPA: 3.0, EstimatedWeeklyHours: 15, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"python": types.Advanced}},
		{ID: "GAME1", Title: "Physics Puzzle Game", Description: "Puzzle game with a physics engine", Domain: "Game Development",
			Difficulty: types.DifficultyAdvanced, MinCGPA: 3.8, EstimatedWeeklyHours: 20, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"unity": types.Advanced}},
		{ID: "IOT1", Title: "Smart Irrigation", Description: "Sensor network that waters crops", Domain: "IoT",
			Difficulty: types.DifficultyBeginner, MinCGPA: 2.5, EstimatedWeeklyHours: 12, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"arduino": types.Intermediate, "sensors": types.Novice}},
		{ID: "SEC1", Title: "Intrusion Detection", Description: "Network intrusion detection with packet analysis", Domain: "Cybersecurity",
			Difficulty: types.DifficultyAdvanced, MinCGPA: 3.2, EstimatedWeeklyHours: 18, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills:  map[string]types.Proficiency{"cryptography": types.Advanced, "networking": types.Intermediate},
			RequiredCourses: []string{"Information Security"}},
		{ID: "WEB1", Title: "Campus Marketplace", Description: "Web marketplace for students", Domain: "Web Development",
			Difficulty: types.DifficultyBeginner, MinCGPA: 2.0, EstimatedWeeklyHours: 10, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"python": types.Novice}},
	}
}

func newEngine(t *testing.T, topics []types.Topic) *Engine {
	t.Helper()
	cat, err := catalog.New(topics)
	require.NoError(t, err)
	tracker := availability.NewTracker(nil, availability.DefaultOptions(), logging.Nop())
	e, err := New(cat, tracker, DefaultConfig(), logging.Nop())
	require.NoError(t, err)
	return e
}

func aiStudent(id string) *types.StudentProfile {
	s := types.NewStudentProfile(id, "Hamza", 3.5, "Computer Science", 4)
	s.AddSkill("Python", types.Advanced)
	s.AddSkill("Machine Learning", types.Intermediate)
	s.CompletedCourses = []string{"Artificial Intelligence"}
	s.AddInterest("AI", types.InterestVeryHigh)
	return s
}

func iotStudent() *types.StudentProfile {
	s := types.NewStudentProfile("S-IOT", "Zara", 2.5, "Computer Engineering", 3)
	s.AddSkill("Arduino", types.Intermediate)
	s.AddSkill("Sensors", types.Novice)
	s.AddInterest("IoT", types.InterestHigh)
	return s
}

func coldStudent() *types.StudentProfile {
	s := types.NewStudentProfile("S-COLD", "Omar", 1.0, "Information Technology", 1)
	s.AddInterest("Game Development", types.InterestLow)
	return s
}

func assertSorted(t *testing.T, recs []types.Recommendation) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		ok := prev.MatchScore > cur.MatchScore ||
			(prev.MatchScore == cur.MatchScore && prev.Topic.ID < cur.Topic.ID)
		assert.True(t, ok, "rank %d (%s %.4f) before rank %d (%s %.4f)",
			prev.Rank, prev.Topic.ID, prev.MatchScore, cur.Rank, cur.Topic.ID, cur.MatchScore)
		assert.Equal(t, i+1, cur.Rank)
	}
}

func TestRecommend_AIStudentGetsAITopicFirst(t *testing.T) {
	e := newEngine(t, testTopics())

	set, err := e.Recommend(context.Background(), aiStudent("S1"), nil, 5)
	require.NoError(t, err)
	require.NotEmpty(t, set.Recommendations)

	first := set.Recommendations[0]
	assert.Equal(t, "AI1", first.Topic.ID)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, types.SourceRuleBased, first.Source)
	assert.Equal(t, types.RiskLow, first.RiskLevel)
	assert.Equal(t, 1.0, first.Breakdown.Interest)
	assert.Equal(t, []string{"python"}, first.Breakdown.SkillsExceeded)
	assert.InDelta(t, 0.5+0.35*0.75+0.15*0.5, first.MatchScore, 1e-9)
	assert.Contains(t, first.MatchReasons, "Matches your interest in AI at very high level")
	assert.Contains(t, first.MatchReasons, "You exceed the skill requirement for python")

	assert.Equal(t, 3, set.Qualified)
	assert.False(t, set.FallbackUsed)
	assert.Len(t, set.Recommendations, 3)
	assert.Equal(t, 2, set.Shortfall)
	assertSorted(t, set.Recommendations)
}

func TestRecommend_OneQualifiedTopsUpToMinimum(t *testing.T) {
	e := newEngine(t, testTopics())

	set, err := e.Recommend(context.Background(), iotStudent(), nil, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, set.Qualified)
	assert.True(t, set.FallbackUsed)
	require.Len(t, set.Recommendations, 3)

	var rule, ml int
	for _, r := range set.Recommendations {
		switch r.Source {
		case types.SourceRuleBased:
			rule++
			assert.Equal(t, "IOT1", r.Topic.ID)
		case types.SourceMLFallback:
			ml++
			assert.Contains(t, r.Explanation, "ML")
			assert.Equal(t, r.Similarity, r.MatchScore)
		}
	}
	assert.Equal(t, 1, rule)
	assert.Equal(t, 2, ml)
	assert.Equal(t, 2, set.Shortfall)
	assertSorted(t, set.Recommendations)
}

func TestRecommend_NoQualifiedTopicsReturnsFallbackOnly(t *testing.T) {
	e := newEngine(t, testTopics())

	set, err := e.Recommend(context.Background(), coldStudent(), nil, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, set.Qualified)
	require.Len(t, set.Recommendations, DefaultMinRecommendations)
	for _, r := range set.Recommendations {
		assert.Equal(t, types.SourceMLFallback, r.Source)
		assert.NotEmpty(t, r.RiskReasons)
	}
	assertSorted(t, set.Recommendations)

	short, err := e.Recommend(context.Background(), coldStudent(), nil, 2)
	require.NoError(t, err)
	assert.Len(t, short.Recommendations, 2)
	assert.Equal(t, 0, short.Shortfall)
}

func TestRecommend_FallbackNeverDisplacesQualifiedTopics(t *testing.T) {
	topics := []types.Topic{
		{ID: "Q1", Title: "Inventory Reports", Description: "Reporting over a stock database", Domain: "Databases",
			MinCGPA: 2.0, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"sql": types.Novice}},
		{ID: "Q2", Title: "Library Catalogue", Description: "Search over a book database", Domain: "Databases",
			MinCGPA: 2.0, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"sql": types.Novice}},
		{ID: "R1", Title: "Warehouse Robot", Description: "Robotics robot arm for warehouse robotics picking", Domain: "Robotics",
			MinCGPA: 3.9, TeamSizeMin: 1, TeamSizeMax: 3,
			RequiredSkills: map[string]types.Proficiency{"ros": types.Expert}},
	}
	e := newEngine(t, topics)

	s := types.NewStudentProfile("S-ROBO", "Ali", 2.4, "Computer Science", 4)
	s.AddSkill("SQL", types.Novice)
	s.AddInterest("Robotics", types.InterestVeryHigh)

	set, err := e.Recommend(context.Background(), s, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Qualified)
	assert.False(t, set.FallbackUsed)
	require.Len(t, set.Recommendations, 2)
	ids := []string{set.Recommendations[0].Topic.ID, set.Recommendations[1].Topic.ID}
	assert.ElementsMatch(t, []string{"Q1", "Q2"}, ids)
	for _, r := range set.Recommendations {
		assert.Equal(t, types.SourceRuleBased, r.Source)
	}

	// Asking for more than the qualified set lets the fallback fill the floor.
	set, err = e.Recommend(context.Background(), s, nil, 5)
	require.NoError(t, err)
	require.Len(t, set.Recommendations, DefaultMinRecommendations)
	assert.True(t, set.FallbackUsed)
}

func TestRecommend_EmptyCatalogIsNotAnError(t *testing.T) {
	e := newEngine(t, nil)
	set, err := e.Recommend(context.Background(), aiStudent("S1"), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, set.Recommendations)
	assert.Equal(t, 3, set.Shortfall)
}

func TestRecommend_TruncatesToCount(t *testing.T) {
	e := newEngine(t, testTopics())
	set, err := e.Recommend(context.Background(), aiStudent("S1"), nil, 1)
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "AI1", set.Recommendations[0].Topic.ID)
}

func TestRecommend_HonoursExcludedIDs(t *testing.T) {
	e := newEngine(t, testTopics())
	set, err := e.Recommend(context.Background(), aiStudent("S1"), map[string]bool{"AI1": true}, 5)
	require.NoError(t, err)
	for _, r := range set.Recommendations {
		assert.NotEqual(t, "AI1", r.Topic.ID)
	}
	assert.Equal(t, 2, set.Qualified)
}

func TestRecommend_InputErrors(t *testing.T) {
	e := newEngine(t, testTopics())
	ctx := context.Background()

	_, err := e.Recommend(ctx, aiStudent("S1"), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	bad := aiStudent("S1")
	bad.CGPA = 4.5
	_, err = e.Recommend(ctx, bad, nil, 3)
	var invalid *types.InvalidProfileError
	assert.ErrorAs(t, err, &invalid)

	_, err = e.Recommend(ctx, nil, nil, 3)
	assert.Error(t, err)
}

func TestRecommend_Deterministic(t *testing.T) {
	e := newEngine(t, testTopics())
	a, err := e.Recommend(context.Background(), iotStudent(), nil, 5)
	require.NoError(t, err)
	b, err := e.Recommend(context.Background(), iotStudent(), nil, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRecommend_ScoresInUnitRangeOnGeneratedCatalog(t *testing.T) {
	tracker := availability.NewTracker(nil, availability.DefaultOptions(), logging.Nop())
	e, err := New(catalog.Default(), tracker, DefaultConfig(), logging.Nop())
	require.NoError(t, err)

	opts := e.ListOptions()
	r := rand.New(rand.NewSource(2024))
	for i := 0; i < 15; i++ {
		s := types.NewStudentProfile(fmt.Sprintf("R%d", i), "Random", float64(r.Intn(41))/10, "Computer Science", 1+r.Intn(5))
		for j := 0; j < 6; j++ {
			s.AddSkill(opts.Skills[r.Intn(len(opts.Skills))], types.Proficiency(1+r.Intn(4)))
		}
		s.AddInterest(opts.Domains[r.Intn(len(opts.Domains))], types.InterestLevel(1+r.Intn(4)))
		s.CompletedCourses = append(s.CompletedCourses, opts.Courses[r.Intn(len(opts.Courses))])

		set, err := e.Recommend(context.Background(), s, nil, 10)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(set.Recommendations), 10)
		for _, rec := range set.Recommendations {
			assert.GreaterOrEqual(t, rec.MatchScore, 0.0)
			assert.LessOrEqual(t, rec.MatchScore, 1.0)
			assert.GreaterOrEqual(t, rec.FeasibilityScore, 0.0)
			assert.LessOrEqual(t, rec.FeasibilityScore, 1.0)
			assert.LessOrEqual(t, rec.MatchPercent(), 100.0)
		}
		assertSorted(t, set.Recommendations)
	}
}

func TestSelect_ExcludesTopicForEveryone(t *testing.T) {
	e := newEngine(t, testTopics())
	ctx := context.Background()

	claim, err := e.Select(ctx, "S1", "AI1", 0.84)
	require.NoError(t, err)
	assert.Equal(t, "Intelligent Tutor", claim.TopicTitle)

	set, err := e.Recommend(ctx, aiStudent("S2"), nil, 5)
	require.NoError(t, err)
	for _, r := range set.Recommendations {
		assert.NotEqual(t, "AI1", r.Topic.ID)
	}

	_, err = e.Select(ctx, "S2", "AI1", 0.9)
	var claimed *availability.AlreadyClaimedError
	assert.ErrorAs(t, err, &claimed)
}

func TestSelect_UnknownTopic(t *testing.T) {
	e := newEngine(t, testTopics())
	_, err := e.Select(context.Background(), "S1", "NOPE", 0.5)
	var unknown *UnknownTopicError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "NOPE", unknown.TopicID)
	assert.Equal(t, 0, e.Tracker().Len())
}

func TestSelect_ConcurrentExactlyOneWins(t *testing.T) {
	e := newEngine(t, testTopics())
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Select(context.Background(), fmt.Sprintf("S%d", i), "WEB1", 0.5)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		var claimed *availability.AlreadyClaimedError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &claimed):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

type fakeProfiles map[string]*types.StudentProfile

func (f fakeProfiles) GetStudent(_ context.Context, id string) (*types.StudentProfile, error) {
	return f[id], nil
}

func TestRecommendForStudent(t *testing.T) {
	e := newEngine(t, testTopics())
	profiles := fakeProfiles{"S1": aiStudent("S1")}

	set, err := e.RecommendForStudent(context.Background(), profiles, "S1", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, "S1", set.StudentID)

	_, err = e.RecommendForStudent(context.Background(), profiles, "ghost", nil, 3)
	var unknown *UnknownStudentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.StudentID)
}

func TestRecommendBatch_PreservesOrder(t *testing.T) {
	e := newEngine(t, testTopics())
	bad := aiStudent("BAD")
	bad.Year = 0
	students := []*types.StudentProfile{aiStudent("S1"), iotStudent(), bad, coldStudent()}

	results, err := e.RecommendBatch(context.Background(), students, 3)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "S1", results[0].StudentID)
	assert.Equal(t, "S-IOT", results[1].StudentID)
	assert.Equal(t, "AI1", results[0].Set.Recommendations[0].Topic.ID)
	assert.Error(t, results[2].Err)
	assert.Nil(t, results[2].Set)
	assert.NoError(t, results[3].Err)
}

func TestRecommendBatch_Cancelled(t *testing.T) {
	e := newEngine(t, testTopics())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.RecommendBatch(ctx, []*types.StudentProfile{aiStudent("S1")}, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cat, err := catalog.New(testTopics())
	require.NoError(t, err)
	tracker := availability.NewTracker(nil, availability.DefaultOptions(), logging.Nop())

	cfg := DefaultConfig()
	cfg.Weights = ranking.Weights{}
	_, err = New(cat, tracker, cfg, logging.Nop())
	assert.ErrorIs(t, err, ranking.ErrZeroWeights)

	_, err = New(nil, tracker, DefaultConfig(), logging.Nop())
	assert.Error(t, err)
}

func TestListOptions(t *testing.T) {
	e := newEngine(t, testTopics())
	opts := e.ListOptions()
	assert.Contains(t, opts.Domains, "AI")
	assert.Contains(t, opts.Skills, "python")
	assert.Equal(t, types.ProficiencyLevels(), opts.ProficiencyLevels)
}
