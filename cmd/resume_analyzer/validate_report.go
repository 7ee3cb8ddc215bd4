package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

var validateReportCmd = &cobra.Command{
	Use:   "validate-report",
	Short: "Validate a JSON analysis report against the report schema",
	Long: `Validates a report written by "analyze --out" (or returned by the API) against the
built-in analysis report schema, or against --schema when given.`,
	RunE: runValidateReport,
}

var (
	validateReportJSON   string
	validateReportSchema string
)

func init() {
	validateReportCmd.Flags().StringVar(&validateReportJSON, "json", "", "Path to the report JSON file (required)")
	validateReportCmd.Flags().StringVar(&validateReportSchema, "schema", "", "Path to a JSON Schema file (defaults to the built-in report schema)")

	if err := validateReportCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateReportCmd)
}

func runValidateReport(cmd *cobra.Command, _ []string) error {
	var err error
	if validateReportSchema != "" {
		schemaPath := schemas.ResolveSchemaPath(validateReportSchema)
		if schemaPath == "" {
			schemaPath = validateReportSchema
		}
		err = schemas.ValidateJSON(schemaPath, validateReportJSON)
	} else {
		err = schemas.ValidateReportFile(validateReportJSON)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
		return fmt.Errorf("report %s does not match the schema", validateReportJSON)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return err
}
