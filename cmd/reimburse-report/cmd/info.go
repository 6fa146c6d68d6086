package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/reimburse-report/internal/normalizer"
	"github.com/rezonia/reimburse-report/internal/parser/pdf"
	"github.com/rezonia/reimburse-report/internal/processor"
)

var showAliases bool

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about attachment files",
	Long: `Display information about invoice and evidence files without submitting them.

Shows:
  - Detected file format (PDF, OFD, XML, Image) and MIME type
  - Page count for PDF files
  - A preview of the text layer, if any

With --aliases, prints the historical field names accepted in analysis
responses instead.

Examples:
  reimburse-report info invoice.pdf
  reimburse-report info evidence/
  reimburse-report info --aliases`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&showAliases, "aliases", false, "List accepted field names per canonical field")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if showAliases {
		return printAliases()
	}

	if len(args) == 0 {
		return fmt.Errorf("requires at least 1 file")
	}

	files, err := collectFiles(args, isAttachmentFile)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	extractor := pdf.NewExtractor()
	for _, file := range files {
		printFileInfo(extractor, file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(extractor *pdf.Extractor, filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	format := processor.DetectFormat(data)
	fmt.Printf("  Format: %s\n", formatName(format))
	if format == processor.FormatImage {
		fmt.Printf("  MIME: %s\n", processor.ImageMimeType(data))
	} else {
		fmt.Printf("  MIME: %s\n", format.MimeType())
	}
	if !format.Supported() {
		fmt.Println("  Warning: the analysis service will reject this file")
		return
	}

	var preview string
	switch format {
	case processor.FormatPDF:
		if pages, err := extractor.PageCount(data); err == nil {
			fmt.Printf("  Pages: %d\n", pages)
		} else {
			fmt.Printf("  Warning: could not read page count: %v\n", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		text, err := extractor.ExtractText(ctx, data)
		cancel()
		if err != nil {
			printVerbose("  Text extraction failed: %v\n", err)
		}
		preview = getPreview(text, 200)
		if preview == "" {
			fmt.Println("  Text layer: none (scanned document)")
		}
	case processor.FormatXML, processor.FormatOFD:
		preview = getPreview(string(data), 200)
	}

	if preview != "" {
		fmt.Printf("  Preview: %s\n", preview)
	}
}

func formatName(f processor.Format) string {
	switch f {
	case processor.FormatPDF:
		return "PDF"
	case processor.FormatOFD:
		return "OFD (E-Invoice)"
	case processor.FormatXML:
		return "XML (E-Invoice)"
	case processor.FormatImage:
		return "Image"
	default:
		return "Unknown"
	}
}

func printAliases() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tFIELD\tALIASES")
	fmt.Fprintln(tw, "-----\t-----\t-------")

	for _, c := range normalizer.Chains() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Group, c.Field, strings.Join(c.Aliases, ", "))
	}

	return tw.Flush()
}

func getPreview(content string, maxLen int) string {
	// Remove XML declaration
	if idx := strings.Index(content, "?>"); idx >= 0 {
		content = content[idx+2:]
	}

	content = strings.Join(strings.Fields(content), " ")

	if len([]rune(content)) > maxLen {
		content = string([]rune(content)[:maxLen]) + "..."
	}

	return content
}
