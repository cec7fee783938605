// Package availability records which topics have been claimed and exposes the
// exclusion set every recommendation request honours.
package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/logging"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/rs/zerolog"
)

// Store persists claims. SaveClaim is called while the tracker holds its lock,
// before the claim becomes visible; an error aborts the claim.
type Store interface {
	LoadClaims(ctx context.Context) ([]types.Claim, error)
	SaveClaim(ctx context.Context, claim types.Claim) error
	ClearClaims(ctx context.Context) error
}

// Options configures a Tracker.
type Options struct {
	// OneClaimPerStudent rejects a second claim by the same student.
	OneClaimPerStudent bool
	// Now supplies claim timestamps; defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions enforces one claim per student.
func DefaultOptions() Options {
	return Options{OneClaimPerStudent: true}
}

// Tracker is the process-wide claim ledger. All methods are safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	claims    map[string]types.Claim
	byStudent map[string]string
	store     Store
	opts      Options
	logger    zerolog.Logger
}

// NewTracker creates an empty tracker. store may be nil for an in-memory ledger.
func NewTracker(store Store, opts Options, logger zerolog.Logger) *Tracker {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tracker{
		claims:    make(map[string]types.Claim),
		byStudent: make(map[string]string),
		store:     store,
		opts:      opts,
		logger:    logging.Component(logger, "availability"),
	}
}

// Load replaces the in-memory ledger with the store's snapshot.
// Duplicate topic rows keep the earliest claim.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	claims, err := t.store.LoadClaims(ctx)
	if err != nil {
		return &StoreError{Op: "load", Cause: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.replaceLocked(claims)
	t.logger.Info().Int("claims", len(t.claims)).Msg("loaded claims")
	return nil
}

// replaceLocked rebuilds the ledger from a snapshot. Callers hold mu.
func (t *Tracker) replaceLocked(claims []types.Claim) {
	sortClaims(claims)
	t.claims = make(map[string]types.Claim, len(claims))
	t.byStudent = make(map[string]string, len(claims))
	for _, c := range claims {
		if _, dup := t.claims[c.TopicID]; dup {
			t.logger.Warn().Str("topic_id", c.TopicID).Msg("ignoring duplicate claim in snapshot")
			continue
		}
		t.claims[c.TopicID] = c
		if _, held := t.byStudent[c.StudentID]; !held {
			t.byStudent[c.StudentID] = c.TopicID
		}
	}
}

// Select claims topicID for studentID. The check and the write happen under
// one lock, so of two concurrent claims for the same topic exactly one wins.
// Either the claim is persisted and recorded, or nothing changes.
func (t *Tracker) Select(ctx context.Context, studentID, topicID, topicTitle string, score float64) (types.Claim, error) {
	return t.SelectClaim(ctx, types.Claim{
		TopicID:    topicID,
		TopicTitle: topicTitle,
		StudentID:  studentID,
		Score:      score,
	})
}

// SelectClaim is Select for a caller-built claim. ClaimedAt is always set by
// the tracker.
func (t *Tracker) SelectClaim(ctx context.Context, claim types.Claim) (types.Claim, error) {
	if claim.StudentID == "" || claim.TopicID == "" {
		return types.Claim{}, fmt.Errorf("student id and topic id are required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.claims[claim.TopicID]; ok {
		return types.Claim{}, &AlreadyClaimedError{TopicID: claim.TopicID, ClaimedBy: existing.StudentID}
	}
	if t.opts.OneClaimPerStudent {
		if held, ok := t.byStudent[claim.StudentID]; ok {
			return types.Claim{}, &StudentHasClaimError{StudentID: claim.StudentID, TopicID: held}
		}
	}

	claim.ClaimedAt = t.opts.Now().UTC()
	if t.store != nil {
		if err := t.store.SaveClaim(ctx, claim); err != nil {
			if conflict := asConflict(err); conflict != nil {
				// Another process got there first; resync so later requests
				// exclude what the store already holds.
				t.resyncLocked(ctx)
				return types.Claim{}, conflict
			}
			return types.Claim{}, &StoreError{Op: "save", Cause: err}
		}
	}

	t.claims[claim.TopicID] = claim
	if _, held := t.byStudent[claim.StudentID]; !held {
		t.byStudent[claim.StudentID] = claim.TopicID
	}
	t.logger.Info().Str("topic_id", claim.TopicID).Str("student_id", claim.StudentID).Msg("topic claimed")
	return claim, nil
}

// asConflict returns err's AlreadyClaimedError or StudentHasClaimError, if any.
// Stores report claims they reject on their own constraints this way.
func asConflict(err error) error {
	var claimed *AlreadyClaimedError
	if errors.As(err, &claimed) {
		return claimed
	}
	var holds *StudentHasClaimError
	if errors.As(err, &holds) {
		return holds
	}
	return nil
}

// resyncLocked reloads the ledger from the store. Callers hold mu.
func (t *Tracker) resyncLocked(ctx context.Context) {
	claims, err := t.store.LoadClaims(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("failed to resync claims after conflict")
		return
	}
	t.replaceLocked(claims)
}

// IsAvailable reports whether a topic is unclaimed.
func (t *Tracker) IsAvailable(topicID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, claimed := t.claims[topicID]
	return !claimed
}

// Excluded returns a snapshot of the claimed topic IDs.
func (t *Tracker) Excluded() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]bool, len(t.claims))
	for id := range t.claims {
		out[id] = true
	}
	return out
}

// Claim returns the claim on a topic, if any.
func (t *Tracker) Claim(topicID string) (types.Claim, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.claims[topicID]
	return c, ok
}

// StudentClaim returns the topic a student holds, if any.
func (t *Tracker) StudentClaim(studentID string) (types.Claim, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	topicID, ok := t.byStudent[studentID]
	if !ok {
		return types.Claim{}, false
	}
	return t.claims[topicID], true
}

// Snapshot returns every claim ordered by claim time, then topic ID.
func (t *Tracker) Snapshot() []types.Claim {
	t.mu.RLock()
	out := make([]types.Claim, 0, len(t.claims))
	for _, c := range t.claims {
		out = append(out, c)
	}
	t.mu.RUnlock()
	sortClaims(out)
	return out
}

// Len returns the number of claimed topics.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.claims)
}

// ClearAll releases every claim. The store is cleared first; on failure the
// ledger is left as it was.
func (t *Tracker) ClearAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store != nil {
		if err := t.store.ClearClaims(ctx); err != nil {
			return &StoreError{Op: "clear", Cause: err}
		}
	}
	n := len(t.claims)
	t.claims = make(map[string]types.Claim)
	t.byStudent = make(map[string]string)
	t.logger.Info().Int("released", n).Msg("cleared all claims")
	return nil
}

func sortClaims(claims []types.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		if !claims[i].ClaimedAt.Equal(claims[j].ClaimedAt) {
			return claims[i].ClaimedAt.Before(claims[j].ClaimedAt)
		}
		return claims[i].TopicID < claims[j].TopicID
	})
}
