package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate saved analysis responses",
	Long: `Validate one or more analysis responses for completeness and consistency.

Checks performed:
  - Response is a JSON object without an OCR failure
  - Required fields present (number, date; seller and buyer with --strict)
  - Amounts are numeric and not negative
  - Amount calculation (excl. tax + tax = incl. tax, within 0.01)
  - Risk tier can be determined, verification did not fail

Examples:
  reimburse-report validate response.json
  reimburse-report validate responses/ --strict -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Enable strict validation (all fields required)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, isResponseFile)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	// Output results
	if outputFormat == "json" {
		if err := writeJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(filePath string) *ValidationResult {
	result := &ValidationResult{
		File:     filePath,
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	raw, err := readResponse(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if text, logID, failed := normalizer.UpstreamFailure(raw); failed {
		result.Valid = false
		result.Errors = append(result.Errors, classifyFailure(text, logID))
		return result
	}

	v := model.Validate(normalizer.Normalize(raw), strictValidation)
	result.Valid = v.Valid
	result.Errors = append(result.Errors, v.Errors...)
	result.Warnings = append(result.Warnings, v.Warnings...)

	return result
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
