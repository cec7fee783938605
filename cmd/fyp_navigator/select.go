package main

import (
	"context"
	"fmt"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/observability"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Claim a topic for a student",
	Long:  "Claim a topic for a student. A claimed topic is removed from every later recommendation.",
	RunE:  runSelect,
}

var selectionsCmd = &cobra.Command{
	Use:   "selections",
	Short: "List or clear claimed topics",
	RunE:  runSelections,
}

var (
	selectStudentID string
	selectTopicID   string
	selectScore     float64

	selectionsStudentID string
	selectionsClear     bool
	selectionsJSON      bool
)

func init() {
	selectCmd.Flags().StringVarP(&selectStudentID, "student", "s", "", "Student ID (required)")
	selectCmd.Flags().StringVarP(&selectTopicID, "topic", "t", "", "Topic ID (required)")
	selectCmd.Flags().Float64Var(&selectScore, "score", 0, "Match score in [0,1] recorded with the claim")

	if err := selectCmd.MarkFlagRequired("student"); err != nil {
		panic(fmt.Sprintf("failed to mark student flag as required: %v", err))
	}
	if err := selectCmd.MarkFlagRequired("topic"); err != nil {
		panic(fmt.Sprintf("failed to mark topic flag as required: %v", err))
	}

	selectionsCmd.Flags().StringVarP(&selectionsStudentID, "student", "s", "", "Show only this student's claim")
	selectionsCmd.Flags().BoolVar(&selectionsClear, "clear", false, "Release every claim")
	selectionsCmd.Flags().BoolVar(&selectionsJSON, "json", false, "Print claims as JSON")

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(selectionsCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// Stored students get their name on the claim; unknown IDs may still claim.
	name := ""
	student, err := a.students.GetStudent(ctx, selectStudentID)
	if err != nil {
		return fmt.Errorf("failed to load student %s: %w", selectStudentID, err)
	}
	if student != nil {
		name = student.Name
	}

	claim, err := a.engine.SelectNamed(ctx, selectStudentID, name, selectTopicID, selectScore)
	if err != nil {
		return fmt.Errorf("failed to select topic: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Topic %s (%s) claimed by %s\n", claim.TopicID, claim.TopicTitle, claim.StudentID)
	return nil
}

func runSelections(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tracker := a.engine.Tracker()
	if selectionsClear {
		if err := tracker.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear selections: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All selections cleared.")
		return nil
	}

	claims := tracker.Snapshot()
	if selectionsStudentID != "" {
		claims = claims[:0]
		if claim, ok := tracker.StudentClaim(selectionsStudentID); ok {
			claims = append(claims, claim)
		}
	}

	if selectionsJSON {
		return writeJSON(cmd, "", claims)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSelections(claims)
	return nil
}
