package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear saved recommendation runs",
	RunE:  runHistory,
}

var (
	historyStudentID string
	historyClear     bool
	historyJSON      bool
)

func init() {
	historyCmd.Flags().StringVarP(&historyStudentID, "student", "s", "", "Only this student's runs")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete every saved run")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if historyClear {
		if err := a.history.ClearHistory(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		_, _ = fmt.Fprintln(out, "History cleared.")
		return nil
	}

	entries, err := a.history.ListHistory(ctx, historyStudentID)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if historyJSON {
		return writeJSON(cmd, "", entries)
	}

	for _, e := range entries {
		_, _ = fmt.Fprintf(out, "%s  %-12s %-24s %d topics (fallback: %t)\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.StudentID, e.StudentName, len(e.Recommendations), e.FallbackUsed)
	}
	_, _ = fmt.Fprintf(out, "\n%d entries\n", len(entries))
	return nil
}
