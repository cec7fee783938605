// Package types provides type definitions for structured data used throughout the FYP navigator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Proficiency is an ordered skill level. The numeric value is the rank used in
// every threshold comparison; names are only used on the wire.
type Proficiency int

const (
	ProficiencyUnknown Proficiency = iota
	Novice
	Intermediate
	Advanced
	Expert
)

// MaxProficiency is the highest rank a skill can have.
const MaxProficiency = Expert

var proficiencyNames = map[Proficiency]string{
	Novice:       "NOVICE",
	Intermediate: "INTERMEDIATE",
	Advanced:     "ADVANCED",
	Expert:       "EXPERT",
}

// ProficiencyLevels returns the level names in ascending order.
func ProficiencyLevels() []string {
	return []string{"NOVICE", "INTERMEDIATE", "ADVANCED", "EXPERT"}
}

// ParseProficiency converts a level name (case-insensitive) to a Proficiency.
func ParseProficiency(s string) (Proficiency, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for p, n := range proficiencyNames {
		if n == name {
			return p, nil
		}
	}
	return ProficiencyUnknown, fmt.Errorf("unknown proficiency level %q", s)
}

// Rank returns the numeric rank (1-4, 0 for unknown).
func (p Proficiency) Rank() int {
	return int(p)
}

// Valid reports whether p is one of the four defined levels.
func (p Proficiency) Valid() bool {
	return p >= Novice && p <= Expert
}

// Lower returns the level n tiers below p, floored at Novice.
func (p Proficiency) Lower(n int) Proficiency {
	lowered := p - Proficiency(n)
	if lowered < Novice {
		return Novice
	}
	return lowered
}

func (p Proficiency) String() string {
	if name, ok := proficiencyNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalJSON encodes the level by name.
func (p Proficiency) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid proficiency %d", int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either the level name or its numeric rank.
func (p *Proficiency) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseProficiency(name)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var rank int
	if err := json.Unmarshal(data, &rank); err != nil {
		return fmt.Errorf("proficiency must be a level name or rank: %w", err)
	}
	if !Proficiency(rank).Valid() {
		return fmt.Errorf("proficiency rank %d out of range 1-4", rank)
	}
	*p = Proficiency(rank)
	return nil
}

// InterestLevel is an ordered interest strength.
type InterestLevel int

const (
	InterestUnknown InterestLevel = iota
	InterestLow
	InterestMedium
	InterestHigh
	InterestVeryHigh
)

// MaxInterest is the highest rank an interest can have.
const MaxInterest = InterestVeryHigh

var interestNames = map[InterestLevel]string{
	InterestLow:      "LOW",
	InterestMedium:   "MEDIUM",
	InterestHigh:     "HIGH",
	InterestVeryHigh: "VERY_HIGH",
}

// InterestLevels returns the level names in ascending order.
func InterestLevels() []string {
	return []string{"LOW", "MEDIUM", "HIGH", "VERY_HIGH"}
}

// ParseInterestLevel converts a level name (case-insensitive) to an InterestLevel.
func ParseInterestLevel(s string) (InterestLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, " ", "_")
	for l, n := range interestNames {
		if n == name {
			return l, nil
		}
	}
	return InterestUnknown, fmt.Errorf("unknown interest level %q", s)
}

// Rank returns the numeric rank (1-4, 0 for unknown).
func (l InterestLevel) Rank() int {
	return int(l)
}

// Valid reports whether l is one of the four defined levels.
func (l InterestLevel) Valid() bool {
	return l >= InterestLow && l <= InterestVeryHigh
}

func (l InterestLevel) String() string {
	if name, ok := interestNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label returns a lower-case, human readable form ("very high").
func (l InterestLevel) Label() string {
	return strings.ReplaceAll(strings.ToLower(l.String()), "_", " ")
}

// MarshalJSON encodes the level by name.
func (l InterestLevel) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid interest level %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts either the level name or its numeric rank.
func (l *InterestLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseInterestLevel(name)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var rank int
	if err := json.Unmarshal(data, &rank); err != nil {
		return fmt.Errorf("interest level must be a level name or rank: %w", err)
	}
	if !InterestLevel(rank).Valid() {
		return fmt.Errorf("interest rank %d out of range 1-4", rank)
	}
	*l = InterestLevel(rank)
	return nil
}
