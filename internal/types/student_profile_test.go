package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *StudentProfile {
	s := NewStudentProfile("S1", "Ayesha", 3.4, "Computer Science", 4)
	s.AddSkill("Python", Advanced)
	s.AddSkill("SQL", Intermediate)
	s.CompletedCourses = []string{"Databases", "Artificial Intelligence"}
	return s
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "machine learning", NormalizeName("  Machine   Learning "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestStudentProfile_Skills(t *testing.T) {
	s := validProfile()
	s.AddSkill("python", Expert)

	require.Len(t, s.Skills, 2, "re-adding a skill replaces it")
	assert.Equal(t, Expert, s.SkillLevel("PYTHON"))
	assert.Equal(t, ProficiencyUnknown, s.SkillLevel("Rust"))
	assert.True(t, s.HasSkill("sql", Intermediate))
	assert.False(t, s.HasSkill("sql", Advanced))
	assert.False(t, s.HasSkill("Rust", Novice))
	assert.Equal(t, map[string]Proficiency{"python": Expert, "sql": Intermediate}, s.SkillMap())
}

func TestStudentProfile_AddInterestPromotesDomain(t *testing.T) {
	s := validProfile()
	s.AddInterest("Web Development", InterestMedium)
	assert.False(t, s.PrefersDomain("Web Development"))

	s.AddInterest("Artificial Intelligence", InterestHigh)
	s.AddInterest("artificial intelligence", InterestVeryHigh)
	assert.True(t, s.PrefersDomain("ARTIFICIAL INTELLIGENCE"))
	assert.Len(t, s.PreferredDomains, 1)
	assert.Len(t, s.Interests, 2)
	assert.Equal(t, InterestVeryHigh, s.InterestIn("Artificial Intelligence"))
	assert.Equal(t, InterestUnknown, s.InterestIn("Robotics"))
}

func TestStudentProfile_Completed(t *testing.T) {
	s := validProfile()
	assert.True(t, s.HasCompleted("databases"))
	assert.False(t, s.HasCompleted("Compilers"))
}

func TestStudentProfile_Normalized(t *testing.T) {
	s := &StudentProfile{
		ID:        "S2",
		Name:      "Bilal",
		Major:     "Software Engineering",
		Year:      3,
		Interests: []Interest{{Domain: "Cybersecurity", Level: InterestVeryHigh}, {Domain: "IoT", Level: InterestLow}},
	}

	n := s.Normalized()
	assert.Equal(t, DefaultMaxWeeklyHours, n.MaxWeeklyHours)
	assert.Equal(t, DefaultPreferredTeamSize, n.PreferredTeamSize)
	assert.Equal(t, []string{"Cybersecurity"}, n.PreferredDomains)
	assert.Empty(t, s.PreferredDomains, "source profile is left untouched")

	s.MaxWeeklyHours = 10
	assert.Equal(t, 10, s.Normalized().MaxWeeklyHours)
}

func TestStudentProfile_Validate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*StudentProfile)
		field  string
	}{
		{"missing id", func(s *StudentProfile) { s.ID = "" }, "StudentProfile.ID"},
		{"cgpa too high", func(s *StudentProfile) { s.CGPA = 4.5 }, "StudentProfile.CGPA"},
		{"year zero", func(s *StudentProfile) { s.Year = 0 }, "StudentProfile.Year"},
		{"bad proficiency", func(s *StudentProfile) { s.Skills[0].Proficiency = 9 }, "StudentProfile.Skills[0].Proficiency"},
		{"duplicate skill", func(s *StudentProfile) {
			s.Skills = append(s.Skills, Skill{Name: " python ", Proficiency: Novice})
		}, "StudentProfile.Skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validProfile()
			tt.mutate(s)

			err := s.Validate()
			require.Error(t, err)
			var invalid *InvalidProfileError
			require.True(t, errors.As(err, &invalid))
			fields := make([]string, 0, len(invalid.Fields))
			for _, f := range invalid.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestInvalidProfileError_Error(t *testing.T) {
	err := &InvalidProfileError{
		StudentID: "S1",
		Fields:    []FieldError{{Field: "cgpa", Message: "must be at most 4"}, {Field: "name", Message: "is required"}},
	}
	assert.Equal(t, "invalid profile S1: cgpa: must be at most 4; name: is required", err.Error())

	err.StudentID = ""
	assert.Equal(t, "invalid profile: cgpa: must be at most 4; name: is required", err.Error())
}

func TestStudentErrors(t *testing.T) {
	assert.Equal(t, "student S1 already exists", (&StudentExistsError{StudentID: "S1"}).Error())
	assert.Equal(t, "student S9 not found", (&StudentNotFoundError{StudentID: "S9"}).Error())
}
