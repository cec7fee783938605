package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Recommend topics for many students in parallel",
	Long: "Recommend topics for every stored student, or for the profiles in a JSON array file (--students). " +
		"A failure for one student is reported without stopping the rest.",
	RunE: runBatch,
}

var (
	batchStudentsFile string
	batchCount        int
	batchOutput       string
	batchSave         bool
)

// batchEntry is one student's line of batch output.
type batchEntry struct {
	StudentID string                   `json:"student_id"`
	Result    *types.RecommendationSet `json:"result,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

func init() {
	batchCmd.Flags().StringVar(&batchStudentsFile, "students", "", "Path to a JSON array of StudentProfile documents (default: all stored students)")
	batchCmd.Flags().IntVarP(&batchCount, "count", "n", 5, "Number of topics per student")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Write results as JSON to this file")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Append each successful result to the recommendation history")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	students, err := batchStudents(ctx, a)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No students to recommend for.")
		return nil
	}

	results, err := a.engine.RecommendBatch(ctx, students, batchCount)
	if err != nil {
		return fmt.Errorf("batch recommendation failed: %w", err)
	}

	entries := make([]batchEntry, len(results))
	failed := 0
	for i, res := range results {
		entries[i] = batchEntry{StudentID: res.StudentID, Result: res.Set}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
			failed++
			continue
		}
		if batchSave {
			if _, err := a.history.AppendHistory(ctx, students[i], res.Set); err != nil {
				return fmt.Errorf("failed to save history for %s: %w", res.StudentID, err)
			}
		}
	}

	if batchOutput != "" {
		if err := writeJSON(cmd, batchOutput, entries); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		if e.Error != "" {
			_, _ = fmt.Fprintf(out, "%-12s error: %s\n", e.StudentID, e.Error)
			continue
		}
		top := "-"
		if len(e.Result.Recommendations) > 0 {
			top = e.Result.Recommendations[0].Topic.Title
		}
		_, _ = fmt.Fprintf(out, "%-12s %d topics (fallback: %t)  top: %s\n",
			e.StudentID, len(e.Result.Recommendations), e.Result.FallbackUsed, top)
	}
	_, _ = fmt.Fprintf(out, "\n%d students, %d failed\n", len(entries), failed)
	return nil
}

// batchStudents reads --students, or lists every stored student.
func batchStudents(ctx context.Context, a *app) ([]*types.StudentProfile, error) {
	if batchStudentsFile == "" {
		students, err := a.students.ListStudents(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list students: %w", err)
		}
		return students, nil
	}

	content, err := os.ReadFile(batchStudentsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read students file %s: %w", batchStudentsFile, err)
	}
	var raw []types.StudentProfile
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal students JSON: %w", err)
	}
	students := make([]*types.StudentProfile, len(raw))
	for i := range raw {
		students[i] = raw[i].Normalized()
	}
	return students, nil
}
