package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rezonia/reimburse-report/internal/render"
)

var outputFile string

// openOutput returns the destination for a report and a function closing it
func openOutput() (io.Writer, func() error, error) {
	if outputFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeDocument writes doc in the selected output format. PDF output falls
// back to HTML when Chromium cannot be started.
func writeDocument(ctx context.Context, w io.Writer, doc *render.Document) error {
	switch outputFormat {
	case "text", "table":
		return render.WriteText(w, doc)
	case "json":
		return writeJSON(w, doc)
	case "html":
		return writeHTML(w, doc)
	case "pdf":
		printer := render.PDFPrinter{ChromiumPath: chromiumPath, Timeout: timeout}
		data, err := printer.Print(ctx, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: PDF rendering unavailable, writing HTML instead: %v\n", err)
			return writeHTML(w, doc)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func writeHTML(w io.Writer, doc *render.Document) error {
	html, err := render.HTML(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(html)
	return err
}
