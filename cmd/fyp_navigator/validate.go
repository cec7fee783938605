package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a schema",
	Long: "Validate a JSON document against a built-in schema (" +
		"student_profile, catalog, course_skills, recommendations) or a schema file path.",
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Built-in schema name or path to a schema file (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON document (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if name, ok := builtinSchema(validateSchema); ok {
		content, readErr := os.ReadFile(validateJSON)
		if readErr != nil {
			return fmt.Errorf("failed to read JSON file %s: %w", validateJSON, readErr)
		}
		err = schemas.ValidateDocument(name, content)
	} else {
		err = schemas.ValidateFile(validateSchema, validateJSON)
	}

	out := cmd.OutOrStdout()
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return err
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Validation passed")
	return nil
}

// builtinSchema maps "catalog" or "catalog.schema.json" to an embedded schema.
func builtinSchema(name string) (string, bool) {
	for _, candidate := range []string{name, name + ".schema.json"} {
		if slices.Contains(rootschemas.Names(), candidate) {
			return candidate, true
		}
	}
	return "", false
}
