package ranking

import (
	"sort"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// preferredOnlyInterest is the interest value of a preferred domain the student
// declared no interest level for; it equals a MEDIUM interest.
const preferredOnlyInterest = 0.5

// Scorer computes weighted match scores. It is read-only after construction.
type Scorer struct {
	weights      Weights
	courseSkills catalog.CourseSkillTable
}

// NewScorer normalizes the weights and binds the course table used to find
// related courses.
func NewScorer(w Weights, courseSkills catalog.CourseSkillTable) (*Scorer, error) {
	normalized, err := w.Normalize()
	if err != nil {
		return nil, err
	}
	return &Scorer{weights: normalized, courseSkills: courseSkills}, nil
}

// Weights returns the normalized weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the match score in [0,1] and its per-component breakdown.
func (s *Scorer) Score(student *types.StudentProfile, topic *types.Topic) (float64, types.ScoreBreakdown) {
	var b types.ScoreBreakdown

	b.Interest, b.InterestLevel, b.PreferredDomain = interestComponent(student, topic)
	b.Skill, b.SkillsExceeded, b.SkillsMet, b.SkillsShort = skillComponent(student, topic)
	b.Course, b.RelatedCompleted = s.courseComponent(student, topic)

	score := s.weights.Interest*b.Interest +
		s.weights.Skill*b.Skill +
		s.weights.Course*b.Course

	return types.Clamp01(score), b
}

// interestComponent is rank/4 for a declared interest in the topic's domain.
func interestComponent(student *types.StudentProfile, topic *types.Topic) (float64, types.InterestLevel, bool) {
	level := student.InterestIn(topic.Domain)
	preferred := student.PrefersDomain(topic.Domain)
	switch {
	case level.Valid():
		return float64(level.Rank()) / float64(types.MaxInterest.Rank()), level, preferred
	case preferred:
		return preferredOnlyInterest, level, preferred
	default:
		return 0, level, preferred
	}
}

// skillComponent averages a per-skill value over the required skills. A met
// requirement is worth 0.5 plus half the surplus headroom used; an unmet one is
// worth at most 0.5 in proportion to how close the student is.
func skillComponent(student *types.StudentProfile, topic *types.Topic) (float64, []string, []string, []string) {
	names := topic.RequiredSkillNames()
	if len(names) == 0 {
		return 1, nil, nil, nil
	}

	var exceeded, met, short []string
	total := 0.0
	for _, name := range names {
		need := topic.RequiredSkills[name]
		have := student.SkillLevel(name)
		if !need.Valid() {
			need = types.Novice
		}

		switch {
		case !have.Valid():
			short = append(short, name)
		case have < need:
			short = append(short, name)
			total += 0.5 * float64(have.Rank()) / float64(need.Rank())
		case need == types.MaxProficiency:
			met = append(met, name)
			total += 1
		default:
			if have > need {
				exceeded = append(exceeded, name)
			} else {
				met = append(met, name)
			}
			headroom := float64(types.MaxProficiency.Rank() - need.Rank())
			total += 0.5 + 0.5*float64(have.Rank()-need.Rank())/headroom
		}
	}
	return types.Clamp01(total / float64(len(names))), exceeded, met, short
}

// courseComponent is the fraction of related, non-required courses completed.
// A course is related when it confers one of the topic's required skills.
func (s *Scorer) courseComponent(student *types.StudentProfile, topic *types.Topic) (float64, []string) {
	var related []string
	for _, course := range s.courseSkills.CoursesConferring(topic.RequiredSkills) {
		if !topic.RequiresCourse(course) {
			related = append(related, course)
		}
	}
	if len(related) == 0 {
		return 0, nil
	}

	completed := student.CompletedSet()
	var done []string
	for _, course := range related {
		if completed[course] {
			done = append(done, course)
		}
	}
	return float64(len(done)) / float64(len(related)), done
}

// Sort orders recommendations by match score descending, then topic ID ascending,
// and assigns 1-based ranks.
func Sort(recs []types.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].Topic.ID < recs[j].Topic.ID
	})
	for i := range recs {
		recs[i].Rank = i + 1
	}
}
