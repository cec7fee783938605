//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Claim records that a student reserved a topic.
type Claim struct {
	TopicID     string    `json:"topic_id"`
	TopicTitle  string    `json:"topic_title,omitempty"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	Score       float64   `json:"score"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

// HistoryEntry is one saved recommendation run for a student.
type HistoryEntry struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	StudentID       string           `json:"student_id"`
	StudentName     string           `json:"student_name"`
	FallbackUsed    bool             `json:"fallback_used"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Options is the static taxonomy offered to profile editors.
type Options struct {
	Skills            []string `json:"skills"`
	Courses           []string `json:"courses"`
	Domains           []string `json:"domains"`
	Techniques        []string `json:"techniques"`
	Contexts          []string `json:"contexts"`
	Majors            []string `json:"majors"`
	ProficiencyLevels []string `json:"proficiency_levels"`
	InterestLevels    []string `json:"interest_levels"`
	Years             []int    `json:"years"`
}
