package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/session"
	"github.com/rezonia/reimburse-report/internal/transport"
)

var (
	submitNote   string
	saveRaw      string
	submitExport string
	exportKind   string
	exportOutDir string
)

var submitCmd = &cobra.Command{
	Use:   "submit <invoice> [evidence...]",
	Short: "Submit an invoice for analysis and print the report",
	Long: `Upload an invoice, plus optional evidence files, to the analysis service
and print the review report.

The first file is the invoice. Every further file is sent as evidence.

Examples:
  reimburse-report submit invoice.pdf
  reimburse-report submit invoice.pdf taxi.png --note "airport transfer"
  reimburse-report submit invoice.pdf --save-raw response.json --export all`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitNote, "note", "", "Free-text note sent with the submission")
	submitCmd.Flags().StringVar(&saveRaw, "save-raw", "", "Save the analysis response to this file")
	submitCmd.Flags().StringVar(&submitExport, "export", "", "Also export the result (csv, xlsx, all)")
	submitCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "Directory for exported files (default: current)")
	submitCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if apiURL == "" {
		return fmt.Errorf("no analysis endpoint configured (use --api-url or REPORT_API_URL)")
	}

	logger := newLogger()
	attachments := make([]transport.Attachment, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		att, err := transport.NewAttachment(logger, path, data)
		if err != nil {
			return err
		}
		printVerbose("Attached: %s (%s)\n", att.Name, att.Format)
		attachments = append(attachments, att)
	}

	client := transport.NewClient(apiURL,
		transport.WithTimeout(timeout),
		transport.WithLogger(logger),
	)
	sess := session.New(client,
		session.WithLogger(logger),
		session.WithReporter(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}),
	)
	sess.AddFiles(attachments...)
	sess.SetNote(submitNote)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	printVerbose("Submitting %d files to %s\n", len(attachments), apiURL)
	submitErr := sess.Submit(ctx)

	if saveRaw != "" && len(sess.LastRaw()) > 0 {
		if err := os.WriteFile(saveRaw, sess.LastRaw(), 0o644); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		printVerbose("Saved response to %s\n", saveRaw)
	}
	if submitErr != nil {
		return submitErr
	}

	result := sess.Result()
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
	if err := closeOut(); err != nil {
		return err
	}

	if submitExport == "" {
		return nil
	}
	return exportSession(ctx, sess, submitExport)
}

func exportSession(ctx context.Context, sess *session.Session, kind string) error {
	var (
		artifacts []*export.Artifact
		err       error
	)
	if kind == "all" {
		artifacts, err = sess.ExportAll(ctx)
	} else {
		format, perr := export.ParseFormat(kind)
		if perr != nil {
			return perr
		}
		var a *export.Artifact
		a, err = sess.Export(ctx, format)
		artifacts = []*export.Artifact{a}
	}
	if err != nil {
		return err
	}
	return saveArtifacts(artifacts, exportOutDir)
}

func saveArtifacts(artifacts []*export.Artifact, dir string) error {
	for _, a := range artifacts {
		path, err := writeFile(dir, a.Name, a.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %s\n", path)
	}
	return nil
}
