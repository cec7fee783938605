// Package ranking computes match scores for eligible topics and orders
// recommendations deterministically.
package ranking

import (
	"errors"
	"fmt"
	"math"
)

// Default weights for scoring components
const (
	defaultInterestWeight = 0.50
	defaultSkillWeight    = 0.35
	defaultCourseWeight   = 0.15
)

// ErrZeroWeights is returned when every weight is zero.
var ErrZeroWeights = errors.New("scoring weights must not all be zero")

// Weights are the relative importance of each score component.
type Weights struct {
	Interest float64 `json:"interest"`
	Skill    float64 `json:"skill"`
	Course   float64 `json:"course"`
}

// DefaultWeights returns interest-dominant weights that already sum to 1.
func DefaultWeights() Weights {
	return Weights{
		Interest: defaultInterestWeight,
		Skill:    defaultSkillWeight,
		Course:   defaultCourseWeight,
	}
}

// Validate rejects negative, non-finite and all-zero weights.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{{"interest", w.Interest}, {"skill", w.Skill}, {"course", w.Course}}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%s weight must be a non-negative number, got %v", f.name, f.value)
		}
	}
	if w.Sum() == 0 {
		return ErrZeroWeights
	}
	return nil
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Interest + w.Skill + w.Course
}

// Normalize scales the weights to sum to exactly 1.
func (w Weights) Normalize() (Weights, error) {
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	sum := w.Sum()
	return Weights{
		Interest: w.Interest / sum,
		Skill:    w.Skill / sum,
		Course:   w.Course / sum,
	}, nil
}
