package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rezonia/reimburse-report/internal/model"
)

// Format is an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FileStem prefixes every export file name
const FileStem = "invoice-analysis"

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// Artifact is an encoded export ready to save or download
type Artifact struct {
	Format      Format
	Name        string
	ContentType string
	Data        []byte
}

// Exporter produces CSV and xlsx artifacts
type Exporter struct {
	workbook *Lazy
	now      func() time.Time
}

// Option configures an Exporter
type Option func(*Exporter)

// WithWorkbookLoader replaces the xlsx capability initializer
func WithWorkbookLoader(load Loader) Option {
	return func(e *Exporter) {
		e.workbook = NewLazy(load)
	}
}

// WithClock sets the clock used for file names
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// New creates an exporter
func New(opts ...Option) *Exporter {
	e := &Exporter{
		workbook: sharedWorkbook,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workbook returns the xlsx capability handle this exporter draws from
func (e *Exporter) Workbook() *Lazy {
	return e.workbook
}

// FileName returns the download name for format, stamped with the current date
func (e *Exporter) FileName(format Format) string {
	return FileName(format, e.now())
}

// FileName returns "invoice-analysis_YYYY-MM-DD.<format>"
func FileName(format Format, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", FileStem, at.Format("2006-01-02"), format)
}

// Export encodes rows in the given format
func (e *Exporter) Export(format Format, rows Rows) (*Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data = EncodeCSV(rows)
	case FormatXLSX:
		var enc WorkbookEncoder
		enc, err = e.workbook.Get()
		if err != nil {
			return nil, model.NewExportError(string(format), "workbook capability unavailable", err)
		}
		data, err = enc.Encode(rows)
	default:
		return nil, model.NewExportError(string(format), "unsupported format", nil)
	}
	if err != nil {
		return nil, model.NewExportError(string(format), "encoding failed", err)
	}
	return &Artifact{
		Format:      format,
		Name:        e.FileName(format),
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}

// CSV encodes rows as CSV
func (e *Exporter) CSV(rows Rows) (*Artifact, error) {
	return e.Export(FormatCSV, rows)
}

// XLSX encodes rows as an xlsx workbook
func (e *Exporter) XLSX(rows Rows) (*Artifact, error) {
	return e.Export(FormatXLSX, rows)
}

// Bundle encodes rows in both formats concurrently. Artifacts are returned CSV first.
func (e *Exporter) Bundle(ctx context.Context, rows Rows) ([]*Artifact, error) {
	formats := []Format{FormatCSV, FormatXLSX}
	artifacts := make([]*Artifact, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := e.Export(format, rows)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
