// Package observability provides formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of reasons to display per topic
	maxItemsToShow = 3
)

// Printer handles formatted output for the CLI
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithVerbose also prints score breakdowns and every reason.
func (p *Printer) WithVerbose(verbose bool) *Printer {
	p.verbose = verbose
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintReport outputs a recommendation set for one student.
func (p *Printer) PrintReport(student *types.StudentProfile, set *types.RecommendationSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	if student != nil {
		sb.WriteString(fmt.Sprintf("Student:  %s (%s)\n", student.Name, student.ID))
		sb.WriteString(fmt.Sprintf("Major:    %s, year %d, CGPA %.2f\n", student.Major, student.Year, student.CGPA))
	}
	sb.WriteString(fmt.Sprintf("Qualified topics: %d\n", set.Qualified))
	if set.FallbackUsed {
		sb.WriteString("Note: ML similarity matching was used to fill the list.\n")
	}
	if set.Shortfall > 0 {
		sb.WriteString(fmt.Sprintf("Only %d of %d requested topics could be recommended.\n", len(set.Recommendations), set.Requested))
	}
	p.printBox("FYP RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))

	if len(set.Recommendations) == 0 {
		//nolint:errcheck // writing to stdout; errors are not recoverable
		fmt.Fprintln(p.out, "No suitable topics found.")
		return
	}
	for i := range set.Recommendations {
		p.printRecommendation(&set.Recommendations[i])
	}
}

func (p *Printer) printRecommendation(rec *types.Recommendation) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s | %s\n", rec.Topic.ID, rec.Topic.Domain))
	sb.WriteString(fmt.Sprintf("Match: %.1f%%   Feasibility: %d%%   Risk: %s\n",
		rec.MatchPercent(), rec.FeasibilityPercent(), rec.RiskLevel))
	if rec.Source == types.SourceMLFallback {
		sb.WriteString(fmt.Sprintf("Source: ML fallback (similarity %.2f)\n", rec.Similarity))
	}
	if p.verbose && rec.Source == types.SourceRuleBased {
		sb.WriteString(fmt.Sprintf("Breakdown: interest %.2f, skill %.2f, course %.2f\n",
			rec.Breakdown.Interest, rec.Breakdown.Skill, rec.Breakdown.Course))
	}
	writeList(&sb, "Why it fits:", rec.MatchReasons, p.limit())
	writeList(&sb, "Watch out for:", rec.RiskReasons, p.limit())

	title := fmt.Sprintf("#%d  %s", rec.Rank, rec.Topic.Title)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) limit() int {
	if p.verbose {
		return 0
	}
	return maxItemsToShow
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	count := len(items)
	if limit > 0 {
		count = min(count, limit)
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-count))
	}
}

// PrintSelections outputs the claimed topics.
func (p *Printer) PrintSelections(claims []types.Claim) {
	if len(claims) == 0 {
		//nolint:errcheck // writing to stdout; errors are not recoverable
		fmt.Fprintln(p.out, "No topics have been selected yet.")
		return
	}

	var sb strings.Builder
	for _, c := range claims {
		who := c.StudentID
		if c.StudentName != "" {
			who = fmt.Sprintf("%s (%s)", c.StudentName, c.StudentID)
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", c.TopicID, c.TopicTitle))
		sb.WriteString(fmt.Sprintf("    by %s, score %.2f, %s\n", who, c.Score, c.ClaimedAt.Format("2006-01-02 15:04")))
	}
	p.printBox(fmt.Sprintf("SELECTED TOPICS (%d)", len(claims)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptions outputs the profile taxonomy.
func (p *Printer) PrintOptions(opts types.Options) {
	var sb strings.Builder
	section := func(name string, values []string) {
		sb.WriteString(fmt.Sprintf("%s (%d):\n", name, len(values)))
		for _, v := range values {
			sb.WriteString(fmt.Sprintf("  • %s\n", v))
		}
	}
	section("Domains", opts.Domains)
	section("Majors", opts.Majors)
	section("Proficiency levels", opts.ProficiencyLevels)
	section("Interest levels", opts.InterestLevels)
	sb.WriteString(fmt.Sprintf("Skills: %d known, courses: %d known\n", len(opts.Skills), len(opts.Courses)))
	p.printBox("PROFILE OPTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
