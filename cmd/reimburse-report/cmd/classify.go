package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/ocrerror"
)

var (
	classifyLogID string
	listCodes     bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [error text]",
	Short: "Explain an upstream OCR failure",
	Long: `Classify the failure text reported by the OCR service and print an
actionable message.

Failure text is usually "<code>: <message>". Known codes:
  216201  image format error
  17      daily request limit reached
  18      QPS limit reached

Examples:
  reimburse-report classify "216201: image format error" --log-id 1234
  reimburse-report classify "Open api qps request limit reached" -f json
  reimburse-report classify --codes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyLogID, "log-id", "", "Upstream trace id to include")
	classifyCmd.Flags().BoolVar(&listCodes, "codes", false, "List known error codes and their advice")
}

func runClassify(cmd *cobra.Command, args []string) error {
	if listCodes {
		for _, code := range ocrerror.KnownCodes() {
			tip, _ := ocrerror.Tip(code)
			fmt.Printf("%-8s %s\n", code, tip)
		}
		return nil
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	}
	d := ocrerror.Classify(strings.TrimSpace(text), classifyLogID)

	if outputFormat == "json" {
		return writeJSON(os.Stdout, d)
	}
	fmt.Println(d.UserMessage)
	return nil
}

func classifyFailure(text, logID string) string {
	return ocrerror.Classify(text, logID).UserMessage
}
