package recommender

import (
	"context"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one student of a batch run.
type BatchResult struct {
	StudentID string
	Set       *types.RecommendationSet
	Err       error
}

// RecommendBatch recommends for many students in parallel with bounded
// concurrency. Results are in input order. A failure for one student is recorded
// in its result; only context cancellation aborts the batch.
func (e *Engine) RecommendBatch(ctx context.Context, students []*types.StudentProfile, count int) ([]BatchResult, error) {
	results := make([]BatchResult, len(students))

	g, gCtx := errgroup.WithContext(ctx)
	limit := e.cfg.BatchConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, student := range students {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if student != nil {
				results[i].StudentID = student.ID
			}
			set, err := e.Recommend(gCtx, student, nil, count)
			results[i].Set = set
			results[i].Err = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
