package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for reviewing analysis responses.

The API provides endpoints for:
  - POST /api/v1/classify            - Explain an OCR failure
  - POST /api/v1/normalize           - Canonical record for a response
  - POST /api/v1/validate            - Validate a response (?strict=true)
  - POST /api/v1/render              - Report (?format=json|html|pdf)
  - POST /api/v1/export/{csv,xlsx}   - Spreadsheet export (?file_name=)
  - POST /api/v1/info                - Inspect an attachment
  - GET  /health                     - Health check

Examples:
  # Start server on default port
  reimburse-report serve

  # Start in debug mode with a custom Chromium
  reimburse-report serve --debug --chromium-path /usr/bin/chromium`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      serverAddr,
		ChromiumPath: chromiumPath,
		PDFTimeout:   timeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       newLogger(),
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	if chromiumPath != "" {
		fmt.Printf("PDF reports via %s\n", chromiumPath)
	}

	return srv.Run()
}
