// Package schemas embeds the JSON Schemas for every document the navigator
// reads or writes.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	StudentProfile  = "student_profile.schema.json"
	Catalog         = "catalog.schema.json"
	CourseSkills    = "course_skills.schema.json"
	Recommendations = "recommendations.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Names lists every embedded schema.
func Names() []string {
	return []string{StudentProfile, Catalog, CourseSkills, Recommendations}
}

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %s: %w", name, err)
	}
	return string(data), nil
}
