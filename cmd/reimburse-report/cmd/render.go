package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/processor"
)

var renderCmd = &cobra.Command{
	Use:   "render <response.json>",
	Short: "Render a saved analysis response",
	Long: `Render the review report for an analysis response saved with
"submit --save-raw" or fetched from the service directly.

Examples:
  reimburse-report render response.json
  reimburse-report render response.json -f html -o report.html
  reimburse-report render response.json -f pdf -o report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := readResponse(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pipeline := processor.NewPipeline(processor.WithLogger(newLogger()))
	result := pipeline.ProcessRaw(ctx, raw)
	if result.Error != nil {
		if result.Failure != nil {
			return fmt.Errorf("%s", result.Failure.UserMessage)
		}
		return result.Error
	}
	for _, w := range result.Warnings {
		printVerbose("  Warning: %s\n", w)
	}

	w, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	if err := writeDocument(ctx, w, result.Document); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
