package main

import (
	"context"
	"fmt"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/observability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the skills, courses, domains and levels a profile may use",
	RunE:  runOptions,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List or export catalog topics",
	Long: "List catalog topics, optionally filtered by domain, technique or application context. " +
		"With --out the whole catalog is written as a catalog JSON document.",
	RunE: runCatalog,
}

var (
	optionsJSON bool

	catalogDomain    string
	catalogTechnique string
	catalogContext   string
	catalogOutput    string
	catalogAvailable bool
)

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Print options as JSON")

	catalogCmd.Flags().StringVar(&catalogDomain, "domain", "", "Only topics in this domain")
	catalogCmd.Flags().StringVar(&catalogTechnique, "technique", "", "Only topics using this technique")
	catalogCmd.Flags().StringVar(&catalogContext, "context", "", "Only topics in this application context")
	catalogCmd.Flags().BoolVar(&catalogAvailable, "available", false, "Hide claimed topics")
	catalogCmd.Flags().StringVarP(&catalogOutput, "out", "o", "", "Export the catalog JSON to this file")

	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runOptions(cmd *cobra.Command, _ []string) error {
	a, err := newApp(context.Background(), cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := a.engine.ListOptions()
	if optionsJSON {
		return writeJSON(cmd, "", opts)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintOptions(opts)
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	a, err := newApp(context.Background(), cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cat := a.engine.Catalog()
	if catalogOutput != "" {
		if err := catalog.SaveCatalog(catalogOutput, cat); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d topics to %s\n", cat.Len(), catalogOutput)
		return nil
	}

	topics := filterTopics(cat, a.engine.Tracker().Excluded())
	out := cmd.OutOrStdout()
	for _, t := range topics {
		_, _ = fmt.Fprintf(out, "%-8s %-60s %s / %s / %s\n", t.ID, t.Title, t.Domain, t.Technique, t.Context)
	}
	_, _ = fmt.Fprintf(out, "\n%d of %d topics\n", len(topics), cat.Len())
	return nil
}

// filterTopics applies the taxonomy and availability flags.
func filterTopics(cat *catalog.Catalog, claimed map[string]bool) []types.Topic {
	topics := cat.Topics()
	if catalogDomain != "" {
		topics = cat.ByDomain(catalogDomain)
	}

	var out []types.Topic
	for _, t := range topics {
		if catalogTechnique != "" && types.NormalizeName(t.Technique) != types.NormalizeName(catalogTechnique) {
			continue
		}
		if catalogContext != "" && types.NormalizeName(t.Context) != types.NormalizeName(catalogContext) {
			continue
		}
		if catalogAvailable && claimed[t.ID] {
			continue
		}
		out = append(out, t)
	}
	return out
}
