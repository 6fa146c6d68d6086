package reportlib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/ocrerror"
	"github.com/rezonia/reimburse-report/internal/processor"
)

// Processor implements Reviewer using the internal pipeline
type Processor struct {
	pipeline *processor.Pipeline
	exporter *export.Exporter
	options  ReportOptions
}

// NewProcessor creates a new report processor with the given options
func NewProcessor(opts ReportOptions) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Processor{
		pipeline: processor.NewPipeline(processor.WithLogger(logger)),
		exporter: export.New(),
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultReportOptions())
}

// Process reads one analysis response and builds its report. An upstream
// OCR failure is returned as *UpstreamError.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewFormatError("failed to read input", err)
	}

	result := p.pipeline.Process(ctx, data)
	if result.Error != nil {
		return nil, result.Error
	}

	return &Report{
		Record:     result.Record,
		Document:   result.Document,
		Validation: model.Validate(result.Record, p.options.StrictValidation),
		Warnings:   result.Warnings,
		raw:        result.Raw,
	}, nil
}

// ProcessBatch processes multiple inputs concurrently
func (p *Processor) ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*Report, error) {
	results := make([]*Report, len(inputs))
	errCh := make(chan error, len(inputs))

	for i, input := range inputs {
		go func(idx int, r io.Reader) {
			result, err := p.Process(ctx, r)
			if err != nil {
				errCh <- fmt.Errorf("input %d: %w", idx, err)
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, input)
	}

	// Wait for all goroutines
	var firstErr error
	for range inputs {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// Export encodes a report as CSV or xlsx
func (p *Processor) Export(report *Report, format Format) (*Artifact, error) {
	if report == nil {
		return nil, model.NewExportError(string(format), "no report", nil)
	}
	rows, err := export.BuildRows(report.Record, report.raw, p.options.FileName)
	if err != nil {
		return nil, err
	}
	return p.exporter.Export(format, rows)
}

// Classify explains an upstream OCR failure
func Classify(text, logID string) ErrorDescriptor {
	return ocrerror.Classify(text, logID)
}

// Process builds the report for one analysis response with default options
func Process(body []byte) (*Report, error) {
	return NewDefaultProcessor().Process(context.Background(), bytes.NewReader(body))
}
