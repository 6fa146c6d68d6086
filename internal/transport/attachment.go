package transport

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rezonia/reimburse-report/internal/parser/pdf"
	"github.com/rezonia/reimburse-report/internal/processor"
)

// Attachment is a document selected for submission.
// The first attachment of a submission is the invoice; the rest are evidence.
type Attachment struct {
	Name        string
	Data        []byte
	Format      processor.Format
	ContentType string
	PageCount   *int
}

var pdfExtractor = pdf.NewExtractor()

// NewAttachment detects the format of data and, for PDFs, reads the page count.
// A damaged PDF is still accepted; the page count is left unset and a warning logged.
func NewAttachment(logger *slog.Logger, name string, data []byte) (Attachment, error) {
	if len(data) == 0 {
		return Attachment{}, fmt.Errorf("attachment %s is empty", name)
	}
	format := processor.DetectFormat(data)
	if !format.Supported() {
		return Attachment{}, fmt.Errorf("attachment %s: unsupported format", name)
	}

	att := Attachment{
		Name:        filepath.Base(strings.TrimSpace(name)),
		Data:        data,
		Format:      format,
		ContentType: format.MimeType(),
	}
	if format == processor.FormatImage {
		att.ContentType = processor.ImageMimeType(data)
	}
	if format == processor.FormatPDF {
		if n, err := pdfExtractor.PageCount(data); err != nil {
			logger.Warn("failed to extract PDF page count", "file", att.Name, "error", err)
		} else {
			att.PageCount = &n
		}
	}
	return att, nil
}
