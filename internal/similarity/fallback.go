package similarity

import (
	"sort"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// Candidate is a topic the fallback may add. RelaxedPass marks topics that clear
// the relaxed hard gate; they are preferred over topics that do not.
type Candidate struct {
	Topic       types.Topic
	RelaxedPass bool
}

// Match is a candidate picked by the fallback with its similarity to the student.
type Match struct {
	Topic       types.Topic
	Similarity  float64
	RelaxedPass bool
}

// Matcher picks fallback topics. Topic term lists are computed once; the matcher
// is read-only afterwards and safe for concurrent use.
type Matcher struct {
	opts  Options
	terms map[string][]string
}

// NewMatcher pre-tokenizes the given topics.
func NewMatcher(topics []types.Topic, opts Options) *Matcher {
	m := &Matcher{opts: opts, terms: make(map[string][]string, len(topics))}
	for i := range topics {
		m.terms[topics[i].ID] = Terms(TopicDocument(&topics[i]))
	}
	return m
}

func (m *Matcher) topicTerms(topic *types.Topic) []string {
	if terms, ok := m.terms[topic.ID]; ok {
		return terms
	}
	return Terms(TopicDocument(topic))
}

// TopicDocument is the text a topic is vectorized from.
func TopicDocument(topic *types.Topic) string {
	parts := []string{
		topic.Title,
		topic.Description,
		topic.Domain,
		topic.Technique,
		topic.Context,
		topic.Difficulty,
		strings.Join(topic.Keywords, " "),
		strings.Join(topic.RequiredSkillNames(), " "),
	}
	return strings.Join(parts, " ")
}

// StudentDocument is the synthetic query document for a student. Interests and
// skills are repeated by their rank so stronger signals weigh more.
func StudentDocument(student *types.StudentProfile) string {
	var parts []string
	for _, in := range student.Interests {
		for i := 0; i < in.Level.Rank(); i++ {
			parts = append(parts, in.Domain)
		}
	}
	parts = append(parts, student.PreferredDomains...)
	for _, sk := range student.Skills {
		for i := 0; i < sk.Proficiency.Rank(); i++ {
			parts = append(parts, sk.Name)
		}
	}
	parts = append(parts, student.CompletedCourses...)
	parts = append(parts, student.Major)
	return strings.Join(parts, " ")
}

// Similarities fits a vectorizer over the candidates and the student document and
// returns each candidate's cosine similarity to the student, keyed by topic ID.
func (m *Matcher) Similarities(student *types.StudentProfile, candidates []Candidate) map[string]float64 {
	studentTerms := Terms(StudentDocument(student))

	docs := make([][]string, 0, len(candidates)+1)
	for i := range candidates {
		docs = append(docs, m.topicTerms(&candidates[i].Topic))
	}
	docs = append(docs, studentTerms)

	vectorizer := Fit(docs, m.opts)
	query := vectorizer.Transform(studentTerms)

	sims := make(map[string]float64, len(candidates))
	for i := range candidates {
		sims[candidates[i].Topic.ID] = Cosine(query, vectorizer.Transform(docs[i]))
	}
	return sims
}

// Select returns at most deficit candidates: relaxed-gate passes first, then by
// similarity descending, ties by topic ID. Zero-similarity candidates are still
// eligible so a sparse profile can be topped up from the remaining catalog.
func (m *Matcher) Select(student *types.StudentProfile, candidates []Candidate, deficit int) []Match {
	if deficit <= 0 || len(candidates) == 0 {
		return nil
	}

	sims := m.Similarities(student, candidates)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{Topic: c.Topic, Similarity: sims[c.Topic.ID], RelaxedPass: c.RelaxedPass})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].RelaxedPass != matches[j].RelaxedPass {
			return matches[i].RelaxedPass
		}
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Topic.ID < matches[j].Topic.ID
	})

	if len(matches) > deficit {
		matches = matches[:deficit]
	}
	return matches
}
