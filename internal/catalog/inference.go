package catalog

import (
	"sort"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// CourseSkillTable maps a completed course to the skills it is presumed to confer.
// Keys are normalized course names; inner keys are normalized skill names.
type CourseSkillTable map[string]map[string]types.Proficiency

// DefaultCourseSkills is the built-in course to skill inference table.
// Every inferred skill is conferred at INTERMEDIATE level.
func DefaultCourseSkills() CourseSkillTable {
	table := map[string][]string{
		"Web Engineering":                {"html", "css", "javascript", "api-design"},
		"Mobile Application Development": {"java", "kotlin"},
		"Data Structures":                {"python", "algorithms"},
		"Statistics":                     {"data-analysis", "mathematics", "time-series"},
		"Artificial Intelligence":        {"python", "machine learning", "mathematics"},
		"Linear Algebra":                 {"mathematics", "numpy"},
		"Embedded Systems":               {"arduino", "sensors", "iot"},
		"Computer Networks":              {"networking", "websockets"},
		"Information Security":           {"cryptography", "security", "privacy"},
		"Computer Graphics":              {"3d-modeling", "image-processing"},
		"Distributed Systems":            {"docker", "concurrency", "event-driven"},
		"Database Systems":               {"sql", "databases", "inventory"},
		"Ethics in Computing":            {"privacy"},
	}

	out := make(CourseSkillTable, len(table))
	for course, skills := range table {
		conferred := make(map[string]types.Proficiency, len(skills))
		for _, s := range skills {
			conferred[types.NormalizeName(s)] = types.Intermediate
		}
		out[types.NormalizeName(course)] = conferred
	}
	return out
}

// Normalize returns a copy with normalized course and skill keys. When two keys
// collapse to the same name the higher level is kept.
func (t CourseSkillTable) Normalize() CourseSkillTable {
	out := make(CourseSkillTable, len(t))
	for course, skills := range t {
		key := types.NormalizeName(course)
		if out[key] == nil {
			out[key] = make(map[string]types.Proficiency, len(skills))
		}
		for skill, level := range skills {
			sk := types.NormalizeName(skill)
			if level > out[key][sk] {
				out[key][sk] = level
			}
		}
	}
	return out
}

// SkillsFor returns the skills conferred by a course, or nil.
func (t CourseSkillTable) SkillsFor(course string) map[string]types.Proficiency {
	return t[types.NormalizeName(course)]
}

// InferSkills merges the skills conferred by every completed course, keeping the
// highest level per skill.
func (t CourseSkillTable) InferSkills(completed []string) map[string]types.Proficiency {
	inferred := make(map[string]types.Proficiency)
	for _, course := range completed {
		for skill, level := range t.SkillsFor(course) {
			if level > inferred[skill] {
				inferred[skill] = level
			}
		}
	}
	return inferred
}

// CoursesConferring returns the sorted normalized course names that confer at
// least one of the given skills.
func (t CourseSkillTable) CoursesConferring(skills map[string]types.Proficiency) []string {
	var courses []string
	for course, conferred := range t {
		for skill := range conferred {
			if _, ok := skills[skill]; ok {
				courses = append(courses, course)
				break
			}
		}
	}
	sort.Strings(courses)
	return courses
}

// Courses returns every course in the table, sorted.
func (t CourseSkillTable) Courses() []string {
	courses := make([]string, 0, len(t))
	for course := range t {
		courses = append(courses, course)
	}
	sort.Strings(courses)
	return courses
}
