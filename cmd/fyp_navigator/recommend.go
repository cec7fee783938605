package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/observability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend FYP topics for a student",
	Long: "Recommend ranked, explained FYP topics for a stored student (--student) or a profile document (--profile). " +
		"Claimed topics are never recommended.",
	RunE: runRecommend,
}

var (
	recommendStudentID   string
	recommendProfileFile string
	recommendCount       int
	recommendExclude     string
	recommendJSON        bool
	recommendOutput      string
	recommendSave        bool
	recommendVerbose     bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendStudentID, "student", "s", "", "ID of a stored student")
	recommendCmd.Flags().StringVarP(&recommendProfileFile, "profile", "p", "", "Path to a StudentProfile JSON file")
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", 5, "Number of topics to recommend")
	recommendCmd.Flags().StringVar(&recommendExclude, "exclude", "", "Comma-separated topic IDs to leave out")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the recommendation set as JSON")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Write the recommendation set JSON to this file")
	recommendCmd.Flags().BoolVar(&recommendSave, "save", false, "Append the result to the recommendation history")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Show score breakdowns and every reason")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if (recommendStudentID == "") == (recommendProfileFile == "") {
		return fmt.Errorf("exactly one of --student or --profile is required")
	}

	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	student, err := loadStudent(ctx, a)
	if err != nil {
		return err
	}

	set, err := a.engine.Recommend(ctx, student, parseIDList(recommendExclude), recommendCount)
	if err != nil {
		return fmt.Errorf("failed to recommend: %w", err)
	}

	if recommendSave {
		if _, err := a.history.AppendHistory(ctx, student, set); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
	}

	if recommendOutput != "" || recommendJSON {
		data, err := json.Marshal(set)
		if err != nil {
			return fmt.Errorf("failed to marshal recommendation set: %w", err)
		}
		if err := schemas.ValidateDocument(rootschemas.Recommendations, data); err != nil {
			return fmt.Errorf("recommendation set failed schema validation: %w", err)
		}
		return writeJSON(cmd, recommendOutput, set)
	}

	observability.NewPrinter(cmd.OutOrStdout()).WithVerbose(recommendVerbose).PrintReport(student, set)
	return nil
}

// loadStudent reads the profile named by --profile, or looks up --student.
func loadStudent(ctx context.Context, a *app) (*types.StudentProfile, error) {
	if recommendProfileFile != "" {
		return readProfileFile(recommendProfileFile)
	}
	student, err := a.students.GetStudent(ctx, recommendStudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student %s: %w", recommendStudentID, err)
	}
	if student == nil {
		return nil, &recommender.UnknownStudentError{StudentID: recommendStudentID}
	}
	return student, nil
}

// parseIDList splits a comma-separated list into a set, ignoring blanks.
func parseIDList(list string) map[string]bool {
	ids := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = true
		}
	}
	return ids
}
