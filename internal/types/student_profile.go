//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Skill is a named capability at a proficiency level.
type Skill struct {
	Name        string      `json:"name" validate:"required"`
	Proficiency Proficiency `json:"proficiency" validate:"proficiency"`
}

// Interest is a domain the student cares about at some level.
type Interest struct {
	Domain string        `json:"domain" validate:"required"`
	Level  InterestLevel `json:"level" validate:"interest_level"`
}

// StudentProfile is the read-only input of a recommendation request.
// Skills are keyed by normalized name; see Validate for the uniqueness rule.
type StudentProfile struct {
	ID                string     `json:"id" validate:"required"`
	Name              string     `json:"name" validate:"required"`
	CGPA              float64    `json:"cgpa" validate:"gte=0,lte=4"`
	Major             string     `json:"major" validate:"required"`
	Year              int        `json:"year" validate:"gte=1,lte=10"`
	MaxWeeklyHours    int        `json:"max_weekly_hours" validate:"gte=0,lte=168"`
	PreferredTeamSize int        `json:"preferred_team_size" validate:"gte=0,lte=20"`
	Skills            []Skill    `json:"skills" validate:"dive"`
	Interests         []Interest `json:"interests" validate:"dive"`
	CompletedCourses  []string   `json:"completed_courses"`
	PreferredDomains  []string   `json:"preferred_domains"`
}

// Default constraint values applied when a profile leaves them unset.
const (
	DefaultMaxWeeklyHours    = 20
	DefaultPreferredTeamSize = 1
)

// NewStudentProfile creates a profile with the default weekly hours and team size.
func NewStudentProfile(id, name string, cgpa float64, major string, year int) *StudentProfile {
	return &StudentProfile{
		ID:                id,
		Name:              name,
		CGPA:              cgpa,
		Major:             major,
		Year:              year,
		MaxWeeklyHours:    DefaultMaxWeeklyHours,
		PreferredTeamSize: DefaultPreferredTeamSize,
	}
}

// NormalizeName canonicalizes skill, course and domain names for comparison:
// trimmed, lower-cased, inner whitespace collapsed.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// AddSkill sets the level of a skill, replacing any existing entry with the same name.
func (s *StudentProfile) AddSkill(name string, level Proficiency) {
	key := NormalizeName(name)
	for i := range s.Skills {
		if NormalizeName(s.Skills[i].Name) == key {
			s.Skills[i].Proficiency = level
			return
		}
	}
	s.Skills = append(s.Skills, Skill{Name: name, Proficiency: level})
}

// AddInterest sets an interest. HIGH and VERY_HIGH interests also promote the
// domain into PreferredDomains.
func (s *StudentProfile) AddInterest(domain string, level InterestLevel) {
	key := NormalizeName(domain)
	found := false
	for i := range s.Interests {
		if NormalizeName(s.Interests[i].Domain) == key {
			s.Interests[i].Level = level
			found = true
			break
		}
	}
	if !found {
		s.Interests = append(s.Interests, Interest{Domain: domain, Level: level})
	}
	if level >= InterestHigh && !s.PrefersDomain(domain) {
		s.PreferredDomains = append(s.PreferredDomains, domain)
	}
}

// Normalized returns a copy with constraint defaults filled in and every
// interest re-added, so HIGH and VERY_HIGH interests promote their domain.
// Decoded documents go through this before use.
func (s *StudentProfile) Normalized() *StudentProfile {
	out := *s
	out.Skills = append([]Skill(nil), s.Skills...)
	out.CompletedCourses = append([]string(nil), s.CompletedCourses...)
	out.PreferredDomains = append([]string(nil), s.PreferredDomains...)
	out.Interests = nil
	for _, in := range s.Interests {
		out.AddInterest(in.Domain, in.Level)
	}
	if out.MaxWeeklyHours == 0 {
		out.MaxWeeklyHours = DefaultMaxWeeklyHours
	}
	if out.PreferredTeamSize == 0 {
		out.PreferredTeamSize = DefaultPreferredTeamSize
	}
	return &out
}

// SkillLevel returns the student's level for a skill, or ProficiencyUnknown when absent.
func (s *StudentProfile) SkillLevel(name string) Proficiency {
	key := NormalizeName(name)
	for _, sk := range s.Skills {
		if NormalizeName(sk.Name) == key {
			return sk.Proficiency
		}
	}
	return ProficiencyUnknown
}

// HasSkill reports whether the student has the skill at or above minLevel.
func (s *StudentProfile) HasSkill(name string, minLevel Proficiency) bool {
	level := s.SkillLevel(name)
	return level.Valid() && level >= minLevel
}

// SkillMap returns the skills keyed by normalized name.
func (s *StudentProfile) SkillMap() map[string]Proficiency {
	m := make(map[string]Proficiency, len(s.Skills))
	for _, sk := range s.Skills {
		key := NormalizeName(sk.Name)
		if sk.Proficiency > m[key] {
			m[key] = sk.Proficiency
		}
	}
	return m
}

// InterestIn returns the interest level for a domain, or InterestUnknown.
func (s *StudentProfile) InterestIn(domain string) InterestLevel {
	key := NormalizeName(domain)
	for _, in := range s.Interests {
		if NormalizeName(in.Domain) == key {
			return in.Level
		}
	}
	return InterestUnknown
}

// PrefersDomain reports whether the domain is in PreferredDomains.
func (s *StudentProfile) PrefersDomain(domain string) bool {
	key := NormalizeName(domain)
	for _, d := range s.PreferredDomains {
		if NormalizeName(d) == key {
			return true
		}
	}
	return false
}

// CompletedSet returns the completed courses keyed by normalized name.
func (s *StudentProfile) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(s.CompletedCourses))
	for _, c := range s.CompletedCourses {
		set[NormalizeName(c)] = true
	}
	return set
}

// HasCompleted reports whether the course is in CompletedCourses.
func (s *StudentProfile) HasCompleted(course string) bool {
	return s.CompletedSet()[NormalizeName(course)]
}

// FieldError is a single invalid profile field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidProfileError reports every invalid field of a profile.
type InvalidProfileError struct {
	StudentID string
	Fields    []FieldError
}

func (e *InvalidProfileError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	if e.StudentID != "" {
		return fmt.Sprintf("invalid profile %s: %s", e.StudentID, strings.Join(parts, "; "))
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the level validations registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("proficiency", func(fl validator.FieldLevel) bool {
			return Proficiency(fl.Field().Int()).Valid()
		})
		_ = validate.RegisterValidation("interest_level", func(fl validator.FieldLevel) bool {
			return InterestLevel(fl.Field().Int()).Valid()
		})
	})
	return validate
}

// Validate checks required fields, ranges and skill uniqueness.
// It returns *InvalidProfileError on failure.
func (s *StudentProfile) Validate() error {
	var fields []FieldError

	if err := Validator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate profile: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Namespace(),
				Message: describeTag(fe),
			})
		}
	}

	seen := make(map[string]bool, len(s.Skills))
	for _, sk := range s.Skills {
		key := NormalizeName(sk.Name)
		if key == "" {
			continue
		}
		if seen[key] {
			fields = append(fields, FieldError{
				Field:   "StudentProfile.Skills",
				Message: fmt.Sprintf("duplicate skill %q", sk.Name),
			})
		}
		seen[key] = true
	}

	if len(fields) == 0 {
		return nil
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &InvalidProfileError{StudentID: s.ID, Fields: fields}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "proficiency":
		return "must be one of " + strings.Join(ProficiencyLevels(), ", ")
	case "interest_level":
		return "must be one of " + strings.Join(InterestLevels(), ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// StudentExistsError is returned when creating a profile whose ID is taken.
type StudentExistsError struct {
	StudentID string
}

func (e *StudentExistsError) Error() string {
	return fmt.Sprintf("student %s already exists", e.StudentID)
}

// StudentNotFoundError is returned when updating or deleting an unknown profile.
type StudentNotFoundError struct {
	StudentID string
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student %s not found", e.StudentID)
}
