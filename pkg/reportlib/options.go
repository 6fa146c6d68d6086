package reportlib

import (
	"context"
	"io"
	"log/slog"

	"github.com/rezonia/reimburse-report/internal/model"
)

// Reviewer turns analysis responses into reports
type Reviewer interface {
	// Process reads one analysis response and builds its report
	Process(ctx context.Context, r io.Reader) (*Report, error)

	// ProcessBatch processes multiple responses
	ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*Report, error)
}

// Report is the outcome of reviewing one analysis response
type Report struct {
	Record     *model.Record
	Document   *Document
	Validation *model.ValidationResult
	Warnings   []string

	raw []byte
}

// NeedsReview reports whether a person should look at the invoice before approval
func (r *Report) NeedsReview() bool {
	if r.Validation != nil && !r.Validation.Valid {
		return true
	}
	return r.Record != nil && r.Record.Risk.Tier() != RiskLow
}

// ReportOptions configures report behavior
type ReportOptions struct {
	// StrictValidation treats missing parties and dates as errors
	StrictValidation bool

	// FileName fills the first export column (default: invoice.pdf)
	FileName string

	// Logger receives pipeline diagnostics (default: discarded)
	Logger *slog.Logger
}

// DefaultReportOptions returns default report options
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		FileName: "invoice.pdf",
	}
}
