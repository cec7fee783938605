package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTopics() []types.Topic {
	return []types.Topic{
		{ID: "T2", Title: "Chatbot", Domain: "Artificial Intelligence", Technique: "NLP", Context: "Education",
			RequiredSkills: map[string]types.Proficiency{"Python": types.Intermediate}, RequiredCourses: []string{"Artificial Intelligence"}},
		{ID: "T1", Title: "Shop", Domain: "Web Development", Technique: "Microservices", Context: "E-Commerce",
			RequiredSkills: map[string]types.Proficiency{"javascript": types.Novice}, RequiredCourses: []string{"Web Engineering"}},
	}
}

func TestNew_SortsAndNormalizes(t *testing.T) {
	c, err := New(sampleTopics())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	topics := c.Topics()
	assert.Equal(t, "T1", topics[0].ID)
	assert.Equal(t, "T2", topics[1].ID)

	topic, ok := c.Topic("T2")
	require.True(t, ok)
	assert.Equal(t, types.Intermediate, topic.RequiredSkills["python"])
	_, hasRaw := topic.RequiredSkills["Python"]
	assert.False(t, hasRaw)

	_, ok = c.Topic("missing")
	assert.False(t, ok)
}

func TestNew_RejectsDuplicateAndEmptyIDs(t *testing.T) {
	_, err := New([]types.Topic{{ID: "A"}, {ID: "A"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate topic id A")

	_, err = New([]types.Topic{{Title: "no id"}})
	require.Error(t, err)
}

func TestAvailable_ExcludesClaimed(t *testing.T) {
	c, err := New(sampleTopics())
	require.NoError(t, err)

	avail := c.Available(map[string]bool{"T1": true})
	require.Len(t, avail, 1)
	assert.Equal(t, "T2", avail[0].ID)
	assert.Len(t, c.Available(nil), 2)
}

func TestTaxonomyQueries(t *testing.T) {
	c, err := New(sampleTopics())
	require.NoError(t, err)

	assert.Len(t, c.ByDomain("artificial intelligence"), 1)
	assert.Len(t, c.ByTechnique("Microservices"), 1)
	assert.Len(t, c.ByContext("Nowhere"), 0)
	assert.Equal(t, []string{"Artificial Intelligence", "Web Development"}, c.Domains())
	assert.Equal(t, []string{"Microservices", "NLP"}, c.Techniques())
}

func TestOptions(t *testing.T) {
	c, err := New(sampleTopics(), WithMajors([]string{"Software Engineering", "Computer Science"}))
	require.NoError(t, err)

	opts := c.Options()
	assert.Equal(t, []string{"Computer Science", "Software Engineering"}, opts.Majors)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, opts.Years)
	assert.Equal(t, types.ProficiencyLevels(), opts.ProficiencyLevels)
	assert.Equal(t, types.InterestLevels(), opts.InterestLevels)
	assert.Contains(t, opts.Skills, "python")
	assert.Contains(t, opts.Skills, "html", "course-conferred skills are offered")
	assert.Contains(t, opts.Courses, "Web Engineering")
	assert.NotContains(t, opts.Courses, "web engineering", "topic spelling wins over table key")
}

func TestDefault_GeneratesKnowledgeBase(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 1000)

	first, ok := c.Topic("GEN0001")
	require.True(t, ok)
	assert.Equal(t, "Web Development", first.Domain)
	assert.Equal(t, "Machine Learning", first.Technique)
	assert.Equal(t, "E-Commerce Platform", first.Context)

	// incompatible combinations never appear
	for _, topic := range c.ByDomain("Game Development") {
		assert.NotEqual(t, "Blockchain", topic.Technique)
	}
	for _, topic := range c.ByTechnique("Augmented Reality") {
		assert.NotEqual(t, "Financial Services", topic.Context)
		assert.NotEqual(t, "Cybersecurity", topic.Domain)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := DefaultKnowledgeBase().Generate()
	b := DefaultKnowledgeBase().Generate()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Title, b[i].Title)
	}
}

func TestBuildTopic_MergesRequirements(t *testing.T) {
	kb := DefaultKnowledgeBase()
	topic := buildTopic(7, kb.Domains[3], kb.Techniques[1], kb.Contexts[1])

	assert.Equal(t, "GEN0007", topic.ID)
	assert.Equal(t, "Artificial Intelligence", topic.Domain)
	assert.Equal(t, types.DifficultyAdvanced, topic.Difficulty)
	// deep learning's python requirement overrides the domain's
	assert.Equal(t, types.Advanced, topic.RequiredSkills["python"])
	assert.Equal(t, types.Intermediate, topic.RequiredSkills["privacy"])
	assert.Equal(t, []string{"Artificial Intelligence", "Linear Algebra", "Ethics in Computing"}, topic.RequiredCourses)
	assert.InDelta(t, 3.84, topic.MinCGPA, 1e-9)
	assert.Equal(t, 26, topic.EstimatedWeeklyHours)
	assert.Contains(t, topic.RiskFactors, "Healthcare Application domain complexity")
	assert.True(t, strings.Contains(topic.Title, "Healthcare Application"))
}

func TestDomainComplexity(t *testing.T) {
	assert.Equal(t, "High", DomainComplexity("Cybersecurity"))
	assert.Equal(t, "Medium", DomainComplexity("Web Development"))
}

func TestCourseSkillTable(t *testing.T) {
	table := DefaultCourseSkills()

	inferred := table.InferSkills([]string{"Artificial Intelligence", "  statistics "})
	assert.Equal(t, types.Intermediate, inferred["python"])
	assert.Equal(t, types.Intermediate, inferred["data-analysis"])
	assert.Empty(t, table.InferSkills([]string{"Underwater Basket Weaving"}))

	courses := table.CoursesConferring(map[string]types.Proficiency{"python": types.Novice})
	assert.Equal(t, []string{"artificial intelligence", "data structures"}, courses)
}

func TestCourseSkillTable_NormalizeKeepsHighest(t *testing.T) {
	table := CourseSkillTable{
		"Intro":   {"Go": types.Novice},
		" intro ": {"go": types.Advanced},
	}
	n := table.Normalize()
	require.Len(t, n, 1)
	assert.Equal(t, types.Advanced, n["intro"]["go"])
}

func TestLoadCatalog_RoundTrip(t *testing.T) {
	src, err := New(sampleTopics(), WithMajors([]string{"Computer Science"}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, SaveCatalog(path, src))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, src.Topics(), loaded.Topics())
	assert.Equal(t, []string{"Computer Science"}, loaded.Options().Majors)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog("nonexistent_file.json")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "failed to read file")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{ invalid json }"), 0644))
	_, err = LoadCatalog(bad)
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "failed to unmarshal JSON")

	invalid := filepath.Join(dir, "invalid.json")
	doc := map[string]any{"topics": []map[string]any{{"id": "X", "title": "t", "domain": "d", "min_cgpa": 5.0}}}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(invalid, data, 0644))
	_, err = LoadCatalog(invalid)
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "invalid topic at index 0")
}

func TestLoadCourseSkills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Compilers": {"Parsing": "ADVANCED", "go": 2}}`), 0644))

	table, err := LoadCourseSkills(path)
	require.NoError(t, err)
	assert.Equal(t, types.Advanced, table.SkillsFor("compilers")["parsing"])
	assert.Equal(t, types.Intermediate, table.SkillsFor("Compilers")["go"])

	require.NoError(t, os.WriteFile(path, []byte(`{"Compilers": {"Parsing": "GURU"}}`), 0644))
	_, err = LoadCourseSkills(path)
	require.Error(t, err)
}
