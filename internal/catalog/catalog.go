// Package catalog holds the topic catalog, its taxonomies and the course to skill
// inference table.
package catalog

import (
	"fmt"
	"sort"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// DefaultMajors is the list of majors offered when a catalog file names none.
var DefaultMajors = []string{
	"Artificial Intelligence",
	"Computer Engineering",
	"Computer Science",
	"Cybersecurity",
	"Data Science",
	"Information Technology",
	"Software Engineering",
}

// MaxYear is the highest academic year offered as an option.
const MaxYear = 5

// Catalog is an immutable set of topics plus the taxonomies derived from them.
// It is safe for concurrent reads.
type Catalog struct {
	topics       []types.Topic
	byID         map[string]int
	courseSkills CourseSkillTable
	majors       []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCourseSkills replaces the built-in course to skill table.
func WithCourseSkills(table CourseSkillTable) Option {
	return func(c *Catalog) {
		c.courseSkills = table.Normalize()
	}
}

// WithMajors replaces the default majors.
func WithMajors(majors []string) Option {
	return func(c *Catalog) {
		if len(majors) > 0 {
			c.majors = append([]string(nil), majors...)
			sort.Strings(c.majors)
		}
	}
}

// New builds a catalog. Topic IDs must be non-empty and unique; required skill
// keys are normalized.
func New(topics []types.Topic, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		topics:       make([]types.Topic, 0, len(topics)),
		byID:         make(map[string]int, len(topics)),
		courseSkills: DefaultCourseSkills(),
		majors:       append([]string(nil), DefaultMajors...),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, t := range topics {
		if t.ID == "" {
			return nil, fmt.Errorf("topic %q has no id", t.Title)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id %s", t.ID)
		}
		skills := make(map[string]types.Proficiency, len(t.RequiredSkills))
		for name, level := range t.RequiredSkills {
			skills[types.NormalizeName(name)] = level
		}
		t.RequiredSkills = skills
		c.byID[t.ID] = -1
		c.topics = append(c.topics, t)
	}

	sort.Slice(c.topics, func(i, j int) bool { return c.topics[i].ID < c.topics[j].ID })
	for i, t := range c.topics {
		c.byID[t.ID] = i
	}
	return c, nil
}

// Default returns the catalog generated from the built-in knowledge base.
func Default() *Catalog {
	c, err := New(DefaultKnowledgeBase().Generate())
	if err != nil {
		// generated IDs are sequential and cannot collide
		panic(err)
	}
	return c
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// Topic looks up a topic by ID.
func (c *Catalog) Topic(id string) (types.Topic, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.Topic{}, false
	}
	return c.topics[i], true
}

// Topics returns every topic ordered by ID.
func (c *Catalog) Topics() []types.Topic {
	return append([]types.Topic(nil), c.topics...)
}

// Available returns the topics not in excluded, ordered by ID.
func (c *Catalog) Available(excluded map[string]bool) []types.Topic {
	out := make([]types.Topic, 0, len(c.topics))
	for _, t := range c.topics {
		if !excluded[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// CourseSkills returns the course to skill inference table.
func (c *Catalog) CourseSkills() CourseSkillTable {
	return c.courseSkills
}

// ByDomain returns the topics in a domain.
func (c *Catalog) ByDomain(domain string) []types.Topic {
	return c.filter(func(t *types.Topic) string { return t.Domain }, domain)
}

// ByTechnique returns the topics using a technique.
func (c *Catalog) ByTechnique(technique string) []types.Topic {
	return c.filter(func(t *types.Topic) string { return t.Technique }, technique)
}

// ByContext returns the topics set in an application context.
func (c *Catalog) ByContext(context string) []types.Topic {
	return c.filter(func(t *types.Topic) string { return t.Context }, context)
}

func (c *Catalog) filter(field func(*types.Topic) string, value string) []types.Topic {
	key := types.NormalizeName(value)
	var out []types.Topic
	for i := range c.topics {
		if types.NormalizeName(field(&c.topics[i])) == key {
			out = append(out, c.topics[i])
		}
	}
	return out
}

// Domains returns the distinct topic domains, sorted.
func (c *Catalog) Domains() []string {
	return c.distinct(func(t *types.Topic) []string { return []string{t.Domain} })
}

// Techniques returns the distinct techniques, sorted.
func (c *Catalog) Techniques() []string {
	return c.distinct(func(t *types.Topic) []string { return []string{t.Technique} })
}

// Contexts returns the distinct application contexts, sorted.
func (c *Catalog) Contexts() []string {
	return c.distinct(func(t *types.Topic) []string { return []string{t.Context} })
}

// Skills returns every skill required by a topic or conferred by a course, sorted.
func (c *Catalog) Skills() []string {
	skills := c.distinct(func(t *types.Topic) []string { return t.RequiredSkillNames() })
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		seen[s] = true
	}
	for _, conferred := range c.courseSkills {
		for s := range conferred {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}
	sort.Strings(skills)
	return skills
}

// Courses returns every course required by a topic or present in the inference
// table, sorted. Topic spelling wins over the normalized table key.
func (c *Catalog) Courses() []string {
	courses := c.distinct(func(t *types.Topic) []string { return t.RequiredCourses })
	seen := make(map[string]bool, len(courses))
	for _, course := range courses {
		seen[types.NormalizeName(course)] = true
	}
	for _, course := range c.courseSkills.Courses() {
		if !seen[course] {
			seen[course] = true
			courses = append(courses, course)
		}
	}
	sort.Strings(courses)
	return courses
}

func (c *Catalog) distinct(values func(*types.Topic) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range c.topics {
		for _, v := range values(&c.topics[i]) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Options returns the static taxonomy offered to profile editors.
func (c *Catalog) Options() types.Options {
	years := make([]int, MaxYear)
	for i := range years {
		years[i] = i + 1
	}
	return types.Options{
		Skills:            c.Skills(),
		Courses:           c.Courses(),
		Domains:           c.Domains(),
		Techniques:        c.Techniques(),
		Contexts:          c.Contexts(),
		Majors:            append([]string(nil), c.majors...),
		ProficiencyLevels: types.ProficiencyLevels(),
		InterestLevels:    types.InterestLevels(),
		Years:             years,
	}
}
