package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage stored student profiles",
}

var studentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a student profile from a JSON file",
	RunE:  runStudentsAdd,
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored students",
	RunE:  runStudentsList,
}

var studentsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a stored student",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentsRemove,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize stored students, history and claims",
	RunE:  runStats,
}

var (
	studentsProfileFile string
	studentsReplace     bool
)

func init() {
	studentsAddCmd.Flags().StringVarP(&studentsProfileFile, "profile", "p", "", "Path to a StudentProfile JSON file (required)")
	studentsAddCmd.Flags().BoolVar(&studentsReplace, "replace", false, "Replace an existing student with the same ID")
	if err := studentsAddCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	studentsCmd.AddCommand(studentsAddCmd, studentsListCmd, studentsRemoveCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStudentsAdd(cmd *cobra.Command, _ []string) error {
	student, err := readProfileFile(studentsProfileFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if studentsReplace {
		err = a.students.UpdateStudent(ctx, student)
	} else {
		err = a.students.CreateStudent(ctx, student)
	}
	if err != nil {
		return fmt.Errorf("failed to store student: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored student %s (%s)\n", student.ID, student.Name)
	return nil
}

func runStudentsList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	students, err := a.students.ListStudents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, s := range students {
		_, _ = fmt.Fprintf(out, "%-12s %-24s %-24s CGPA %.2f  year %d\n", s.ID, s.Name, s.Major, s.CGPA, s.Year)
	}
	_, _ = fmt.Fprintf(out, "\n%d students\n", len(students))
	return nil
}

func runStudentsRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.students.DeleteStudent(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted student %s\n", args[0])
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if a.files != nil {
		stats, err := a.files.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to collect stats: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Students:        %d\n", stats.TotalStudents)
		_, _ = fmt.Fprintf(out, "History entries: %d\n", stats.TotalRecommendations)
		_, _ = fmt.Fprintf(out, "Storage:         %.1f KB in %s\n", stats.StorageSizeKB, a.files.DataDir)
	} else {
		students, err := a.students.ListStudents(ctx)
		if err != nil {
			return fmt.Errorf("failed to list students: %w", err)
		}
		history, err := a.history.ListHistory(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Students:        %d\n", len(students))
		_, _ = fmt.Fprintf(out, "History entries: %d\n", len(history))
	}
	_, _ = fmt.Fprintf(out, "Topics:          %d\n", a.engine.Catalog().Len())
	_, _ = fmt.Fprintf(out, "Claimed topics:  %d\n", a.engine.Tracker().Len())
	return nil
}
