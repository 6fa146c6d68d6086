package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	apiURL       string
	chromiumPath string
	timeout      time.Duration
)

const defaultTimeout = 2 * time.Minute

var rootCmd = &cobra.Command{
	Use:   "reimburse-report",
	Short: "Review AI invoice analyses for expense reimbursement",
	Long: `Reimburse Report submits invoices to an analysis service and turns the
returned analysis into a review report and spreadsheet exports.

Supports:
  - Invoices and evidence as PDF, OFD, XML or images
  - Reports as text, JSON, HTML or PDF (headless Chromium)
  - Exports as CSV (Excel compatible) and xlsx

Examples:
  # Analyze an invoice with two evidence attachments
  reimburse-report submit invoice.pdf receipt.png itinerary.pdf --api-url http://localhost:8000/analyze

  # Render a saved analysis response
  reimburse-report render response.json -f html -o report.html

  # Export a saved analysis response
  reimburse-report export response.json --kind all

  # Explain an OCR failure
  reimburse-report classify "216201: image format error"`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, html, pdf)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Analysis service endpoint (env: REPORT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&chromiumPath, "chromium-path", "", "Chromium binary for PDF reports (env: REPORT_CHROMIUM_PATH)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request and rendering timeout (env: REPORT_TIMEOUT)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if apiURL == "" {
		apiURL = os.Getenv("REPORT_API_URL")
	}
	if chromiumPath == "" {
		chromiumPath = os.Getenv("REPORT_CHROMIUM_PATH")
	}
	if timeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("REPORT_TIMEOUT")); err == nil && d > 0 {
			timeout = d
		} else {
			timeout = defaultTimeout
		}
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
