// Package processor runs an analysis response through classification,
// normalization and rendering.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
	"github.com/rezonia/reimburse-report/internal/ocrerror"
	"github.com/rezonia/reimburse-report/internal/render"
)

// RenderFunc builds the document from a record
type RenderFunc func(*model.Record) (*render.Document, error)

// Result holds the outcome of processing one analysis response
type Result struct {
	Raw      normalizer.RawResponse
	Record   *model.Record
	Document *render.Document
	Failure  *model.ErrorDescriptor
	Warnings []string
	Error    error
}

// Pipeline sequences parse, upstream failure check, normalize and render
type Pipeline struct {
	normalizer *normalizer.Normalizer
	render     RenderFunc
	logger     *slog.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithNormalizer sets custom alias tables
func WithNormalizer(n *normalizer.Normalizer) Option {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// WithRenderer replaces the document builder
func WithRenderer(fn RenderFunc) Option {
	return func(p *Pipeline) {
		p.render = fn
	}
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: normalizer.New(),
		render:     render.Render,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process handles a response body. Result.Error is a FormatError, an
// UpstreamError (with Failure set) or a RenderError.
func (p *Pipeline) Process(ctx context.Context, body []byte) *Result {
	result := &Result{}

	raw, err := normalizer.Parse(body)
	if err != nil {
		result.Error = err
		return result
	}
	return p.ProcessRaw(ctx, raw)
}

// ProcessRaw handles an already validated response
func (p *Pipeline) ProcessRaw(ctx context.Context, raw normalizer.RawResponse) *Result {
	result := &Result{Raw: raw}

	if text, logID, ok := p.normalizer.UpstreamFailure(raw); ok {
		d := ocrerror.Classify(text, logID)
		result.Failure = &d
		result.Error = model.NewUpstreamError(d)
		p.logger.WarnContext(ctx, "upstream OCR failure", "user_message", d.UserMessage)
		return result
	}

	result.Record = p.normalizer.Normalize(raw)
	result.Warnings = model.Validate(result.Record, false).Warnings

	doc, err := p.renderRecord(result.Record)
	if err != nil {
		result.Error = err
		p.logger.ErrorContext(ctx, "render failed", "error", err)
		return result
	}
	result.Document = doc
	return result
}

func (p *Pipeline) renderRecord(rec *model.Record) (doc *render.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, model.NewRenderError("document", "renderer panicked", fmt.Errorf("%v", r))
		}
	}()
	doc, err = p.render(rec)
	var renderErr *model.RenderError
	if err != nil && !errors.As(err, &renderErr) {
		err = model.NewRenderError("document", "render failed", err)
	}
	return doc, err
}
