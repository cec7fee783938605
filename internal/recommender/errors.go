package recommender

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when a request asks for fewer than one topic.
var ErrInvalidCount = errors.New("recommendation count must be at least 1")

// UnknownStudentError is returned when a profile lookup finds no student.
type UnknownStudentError struct {
	StudentID string
}

func (e *UnknownStudentError) Error() string {
	return fmt.Sprintf("unknown student %s", e.StudentID)
}

// UnknownTopicError is returned when a topic ID is not in the catalog.
type UnknownTopicError struct {
	TopicID string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %s", e.TopicID)
}
