// Package pdf inspects PDF attachments before they are submitted for analysis.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Extractor reads page counts and plain text from PDF bytes
type Extractor struct {
	maxTextBytes int
}

// NewExtractor creates an extractor that keeps at most 64 KiB of text
func NewExtractor() *Extractor {
	return &Extractor{maxTextBytes: 64 << 10}
}

// PageCount returns the number of pages, failing on damaged files
func (e *Extractor) PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("read page count: %w", err)
	}
	return n, nil
}

// ExtractText returns the text layer of the document, whitespace-collapsed.
// Scanned invoices usually have none.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extract text: malformed pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(plain, int64(e.maxTextBytes))); err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return strings.Join(strings.Fields(buf.String()), " "), nil
}
