// Package recommender wires the hard gate, scoring, feasibility analysis,
// similarity fallback and explanations into the recommend and select operations.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/analysis"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/eligibility"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/explain"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/logging"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/metrics"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/ranking"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/similarity"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/rs/zerolog"
)

// DefaultMinRecommendations is the qualified-set size below which the
// similarity fallback tops up the result.
const DefaultMinRecommendations = 3

// Config tunes the engine.
type Config struct {
	Weights            ranking.Weights
	MinRecommendations int
	Relaxation         eligibility.Relaxation
	Materiality        float64
	Similarity         similarity.Options
	BatchConcurrency   int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Weights:            ranking.DefaultWeights(),
		MinRecommendations: DefaultMinRecommendations,
		Relaxation:         eligibility.DefaultRelaxation(),
		Materiality:        explain.DefaultMateriality,
		Similarity:         similarity.DefaultOptions(),
		BatchConcurrency:   4,
	}
}

// ProfileStore loads student profiles. A missing student is (nil, nil).
type ProfileStore interface {
	GetStudent(ctx context.Context, id string) (*types.StudentProfile, error)
}

// Engine is the recommendation core. Recommend is read-only with respect to
// shared state and may run concurrently; Select serializes through the tracker.
type Engine struct {
	catalog   *catalog.Catalog
	tracker   *availability.Tracker
	filter    *eligibility.Filter
	scorer    *ranking.Scorer
	analyzer  *analysis.Analyzer
	matcher   *similarity.Matcher
	explainer *explain.Generator
	cfg       Config
	logger    zerolog.Logger
}

// New builds an engine over a catalog and a claim tracker.
func New(cat *catalog.Catalog, tracker *availability.Tracker, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if tracker == nil {
		return nil, errors.New("availability tracker is required")
	}
	if cfg.MinRecommendations < 0 {
		return nil, fmt.Errorf("min recommendations must not be negative, got %d", cfg.MinRecommendations)
	}

	scorer, err := ranking.NewScorer(cfg.Weights, cat.CourseSkills())
	if err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}

	return &Engine{
		catalog:   cat,
		tracker:   tracker,
		filter:    eligibility.New(cfg.Relaxation),
		scorer:    scorer,
		analyzer:  analysis.NewAnalyzer(cat.CourseSkills()),
		matcher:   similarity.NewMatcher(cat.Topics(), cfg.Similarity),
		explainer: explain.New(cfg.Materiality),
		cfg:       cfg,
		logger:    logging.Component(logger, "recommender"),
	}, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Tracker returns the engine's claim tracker.
func (e *Engine) Tracker() *availability.Tracker {
	return e.tracker
}

// Recommend returns at most count ranked, explained topics. Claimed topics and
// those in excluded are never returned. When fewer than MinRecommendations
// topics pass the strict gate, the similarity fallback adds only enough topics
// to reach that floor. A short result is reported through Shortfall, not an error.
func (e *Engine) Recommend(ctx context.Context, student *types.StudentProfile, excluded map[string]bool, count int) (set *types.RecommendationSet, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			metrics.RecordRecommendation(time.Since(start), 0, 0, 0, false, err)
		}
	}()

	if student == nil {
		return nil, errors.New("student profile is required")
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skip := e.tracker.Excluded()
	for id, ex := range excluded {
		if ex {
			skip[id] = true
		}
	}
	available := e.catalog.Available(skip)

	qualified := e.filter.Eligible(student, available, false)
	recs := make([]types.Recommendation, 0, len(qualified)+e.cfg.MinRecommendations)
	for i := range qualified {
		recs = append(recs, e.ruleBased(student, &qualified[i]))
	}

	// The fallback only tops up toward min(floor, count), so a similarity match
	// can never displace a topic that passed the strict gate.
	fallbackAdded := 0
	if deficit := min(e.cfg.MinRecommendations, count) - len(qualified); deficit > 0 {
		fallback := e.fallback(student, available, qualified, deficit)
		fallbackAdded = len(fallback)
		recs = append(recs, fallback...)
		e.logger.Debug().
			Str("student_id", student.ID).
			Int("qualified", len(qualified)).
			Int("deficit", deficit).
			Int("added", fallbackAdded).
			Msg("similarity fallback used")
	}

	ranking.Sort(recs)
	if len(recs) > count {
		recs = recs[:count]
	}

	set = &types.RecommendationSet{
		StudentID:       student.ID,
		Requested:       count,
		Qualified:       len(qualified),
		Recommendations: recs,
	}
	ruleBased := 0
	for _, r := range recs {
		if r.Source == types.SourceMLFallback {
			set.FallbackUsed = true
		} else {
			ruleBased++
		}
	}
	if len(recs) < count {
		set.Shortfall = count - len(recs)
	}

	e.logger.Debug().
		Str("student_id", student.ID).
		Int("available", len(available)).
		Int("qualified", len(qualified)).
		Int("returned", len(recs)).
		Msg("recommendations ready")
	metrics.RecordRecommendation(time.Since(start), len(qualified), ruleBased, len(recs)-ruleBased, set.Shortfall > 0, nil)
	return set, nil
}

func (e *Engine) ruleBased(student *types.StudentProfile, topic *types.Topic) types.Recommendation {
	score, breakdown := e.scorer.Score(student, topic)
	assessment := e.analyzer.Analyze(student, topic)
	ex := e.explainer.Explain(student, topic, score, breakdown, assessment)

	return types.Recommendation{
		Topic:            *topic,
		MatchScore:       score,
		FeasibilityScore: assessment.Feasibility,
		RiskLevel:        assessment.Risk,
		MatchReasons:     ex.MatchReasons,
		RiskReasons:      ex.RiskReasons,
		Explanation:      ex.Summary,
		Source:           types.SourceRuleBased,
		Breakdown:        breakdown,
	}
}

// fallback picks up to deficit topics from the available, non-qualified ones.
func (e *Engine) fallback(student *types.StudentProfile, available, qualified []types.Topic, deficit int) []types.Recommendation {
	taken := make(map[string]bool, len(qualified))
	for _, t := range qualified {
		taken[t.ID] = true
	}

	candidates := make([]similarity.Candidate, 0, len(available)-len(qualified))
	for i := range available {
		if taken[available[i].ID] {
			continue
		}
		candidates = append(candidates, similarity.Candidate{
			Topic:       available[i],
			RelaxedPass: e.filter.Passes(student, &available[i], true),
		})
	}

	matches := e.matcher.Select(student, candidates, deficit)
	recs := make([]types.Recommendation, 0, len(matches))
	for _, m := range matches {
		topic := m.Topic
		_, breakdown := e.scorer.Score(student, &topic)
		assessment := e.analyzer.Analyze(student, &topic)
		strict := e.filter.Check(student, &topic, false)
		ex := e.explainer.ExplainFallback(student, &topic, m.Similarity, m.RelaxedPass, strict, assessment)

		recs = append(recs, types.Recommendation{
			Topic:            topic,
			MatchScore:       types.Clamp01(m.Similarity),
			FeasibilityScore: assessment.Feasibility,
			RiskLevel:        assessment.Risk,
			MatchReasons:     ex.MatchReasons,
			RiskReasons:      ex.RiskReasons,
			Explanation:      ex.Summary,
			Source:           types.SourceMLFallback,
			Similarity:       m.Similarity,
			Breakdown:        breakdown,
		})
	}
	return recs
}

// RecommendForStudent loads a profile by ID and recommends for it.
func (e *Engine) RecommendForStudent(ctx context.Context, profiles ProfileStore, studentID string, excluded map[string]bool, count int) (*types.RecommendationSet, error) {
	student, err := profiles.GetStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student %s: %w", studentID, err)
	}
	if student == nil {
		return nil, &UnknownStudentError{StudentID: studentID}
	}
	return e.Recommend(ctx, student, excluded, count)
}

// Select claims a topic for a student. The claim is atomic: on any error the
// ledger is unchanged.
func (e *Engine) Select(ctx context.Context, studentID, topicID string, score float64) (types.Claim, error) {
	return e.SelectNamed(ctx, studentID, "", topicID, score)
}

// SelectNamed is Select with the student's display name recorded on the claim.
func (e *Engine) SelectNamed(ctx context.Context, studentID, studentName, topicID string, score float64) (types.Claim, error) {
	topic, ok := e.catalog.Topic(topicID)
	if !ok {
		metrics.RecordClaim("unknown_topic", e.tracker.Len())
		return types.Claim{}, &UnknownTopicError{TopicID: topicID}
	}

	claim, err := e.tracker.SelectClaim(ctx, types.Claim{
		TopicID:     topicID,
		TopicTitle:  topic.Title,
		StudentID:   studentID,
		StudentName: studentName,
		Score:       types.Clamp01(score),
	})
	if err != nil {
		metrics.RecordClaim(claimResult(err), e.tracker.Len())
		return types.Claim{}, err
	}
	metrics.RecordClaim("success", e.tracker.Len())
	return claim, nil
}

func claimResult(err error) string {
	var claimed *availability.AlreadyClaimedError
	var holds *availability.StudentHasClaimError
	switch {
	case errors.As(err, &claimed):
		return "already_claimed"
	case errors.As(err, &holds):
		return "student_has_claim"
	default:
		return "error"
	}
}

// ListOptions returns the static taxonomy from the catalog.
func (e *Engine) ListOptions() types.Options {
	return e.catalog.Options()
}
