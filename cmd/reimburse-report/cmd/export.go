package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/normalizer"
)

var exportFileName string

var exportCmd = &cobra.Command{
	Use:   "export <response.json>",
	Short: "Export a saved analysis response as CSV or xlsx",
	Long: `Export the analysis of one invoice as a spreadsheet row.

Files are named invoice-analysis_<YYYY-MM-DD>.csv / .xlsx. The CSV starts
with a UTF-8 byte order mark so spreadsheet applications detect the encoding.

Examples:
  reimburse-report export response.json
  reimburse-report export response.json --kind xlsx --file-name invoice.pdf
  reimburse-report export response.json --kind all --out-dir exports/`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportKind, "kind", "csv", "Export format (csv, xlsx, all)")
	exportCmd.Flags().StringVar(&exportFileName, "file-name", "", "Invoice file name for the first column (default: "+export.DefaultFileName+")")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "Directory for exported files (default: current)")
}

func runExport(cmd *cobra.Command, args []string) error {
	raw, err := readResponse(args[0])
	if err != nil {
		return err
	}

	if text, _, failed := normalizer.UpstreamFailure(raw); failed {
		printVerbose("Response carries an OCR failure: %s\n", text)
	}

	fileName := exportFileName
	if fileName == "" {
		fileName = export.DefaultFileName
	}
	rows, err := export.BuildRows(nil, raw, filepath.Base(fileName))
	if err != nil {
		return err
	}

	exporter := export.New()
	var artifacts []*export.Artifact
	switch exportKind {
	case "all":
		artifacts, err = exporter.Bundle(context.Background(), rows)
	default:
		format, perr := export.ParseFormat(exportKind)
		if perr != nil {
			return perr
		}
		var a *export.Artifact
		a, err = exporter.Export(format, rows)
		artifacts = []*export.Artifact{a}
	}
	if err != nil {
		return err
	}
	return saveArtifacts(artifacts, exportOutDir)
}
