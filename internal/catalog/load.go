package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// File is the on-disk catalog document.
type File struct {
	Topics []types.Topic `json:"topics"`
	Majors []string      `json:"majors,omitempty"`
}

// LoadCatalog loads topics from a JSON catalog file and validates each of them.
func LoadCatalog(path string, opts ...Option) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var file File
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	for i := range file.Topics {
		if err := types.Validator().Struct(&file.Topics[i]); err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("invalid topic at index %d", i),
				Cause:   err,
			}
		}
		for name, level := range file.Topics[i].RequiredSkills {
			if !level.Valid() {
				return nil, &LoadError{
					Message: fmt.Sprintf("topic %s: invalid level for skill %q", file.Topics[i].ID, name),
				}
			}
		}
	}

	c, err := New(file.Topics, append([]Option{WithMajors(file.Majors)}, opts...)...)
	if err != nil {
		return nil, &LoadError{Message: "failed to build catalog", Cause: err}
	}
	return c, nil
}

// SaveCatalog writes the catalog's topics and majors as indented JSON.
func SaveCatalog(path string, c *Catalog) error {
	data, err := json.MarshalIndent(File{Topics: c.Topics(), Majors: c.majors}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}

// LoadCourseSkills loads a course to skill table from JSON of the form
// {"course": {"skill": "INTERMEDIATE"}}.
func LoadCourseSkills(path string) (CourseSkillTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var table CourseSkillTable
	if err := json.Unmarshal(content, &table); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}
	for course, skills := range table {
		for skill, level := range skills {
			if !level.Valid() {
				return nil, &LoadError{
					Message: fmt.Sprintf("course %q: invalid level for skill %q", course, skill),
				}
			}
		}
	}
	return table.Normalize(), nil
}
