// Package session drives one user's submit, render and export cycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
	"github.com/rezonia/reimburse-report/internal/processor"
	"github.com/rezonia/reimburse-report/internal/transport"
)

// Transport sends a submission to the analysis service
type Transport interface {
	Submit(ctx context.Context, sub *transport.Submission) (*transport.Response, error)
}

// Reporter shows a failure message to the user
type Reporter func(message string)

const (
	genericFailure = "Upload or analysis failed: %v"
	renderFailure  = "Parse failed: response format abnormal (inspect the last raw response)"
)

// Session holds the selected files, the presentation state and the last result.
// Only one submission runs at a time.
type Session struct {
	id        uuid.UUID
	transport Transport
	pipeline  *processor.Pipeline
	exporter  *export.Exporter
	report    Reporter
	logger    *slog.Logger

	busy atomic.Bool

	mu       sync.RWMutex
	state    State
	loading  bool
	files    []transport.Attachment
	note     string
	result   *processor.Result
	fileName string
	lastRaw  normalizer.RawResponse
}

// Option configures a session
type Option func(*Session)

// WithPipeline sets the processing pipeline
func WithPipeline(p *processor.Pipeline) Option {
	return func(s *Session) {
		s.pipeline = p
	}
}

// WithExporter sets the export encoder
func WithExporter(e *export.Exporter) Option {
	return func(s *Session) {
		s.exporter = e
	}
}

// WithReporter sets the callback that surfaces failures to the user
func WithReporter(r Reporter) Option {
	return func(s *Session) {
		s.report = r
	}
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session in the initial state
func New(t Transport, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New(),
		transport: t,
		pipeline:  processor.NewPipeline(),
		exporter:  export.New(),
		report:    func(string) {},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.id.String())
	return s
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the presentation state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the loading indicator is shown
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Busy reports whether a submission is in flight
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Result returns the last successful analysis, or nil
func (s *Session) Result() *processor.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// LastRaw returns the most recent parsed response, kept for debugging
func (s *Session) LastRaw() normalizer.RawResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRaw
}

// Submit sends the selected files and processes the reply. A call made while
// another submission is in flight returns ErrBusy without contacting the service.
// The session never stays in the loading state after Submit returns.
func (s *Session) Submit(ctx context.Context) (err error) {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	files, note := s.snapshot()
	if len(files) == 0 {
		return ErrNoFiles
	}

	s.startLoading()
	defer s.finishLoading()
	defer func() {
		if r := recover(); r != nil {
			err = model.NewRenderError("session", "unexpected failure", fmt.Errorf("%v", r))
			s.fail(ctx, err)
		}
	}()

	s.logger.InfoContext(ctx, "submitting", "files", len(files))

	resp, err := s.transport.Submit(ctx, &transport.Submission{Files: files, Note: note})
	if err != nil {
		s.fail(ctx, err)
		return err
	}
	if err := resp.Check(); err != nil {
		s.fail(ctx, err)
		return err
	}

	result := s.pipeline.Process(ctx, resp.Body)
	if result.Raw != nil {
		s.mu.Lock()
		s.lastRaw = result.Raw
		s.mu.Unlock()
	}
	if result.Error != nil {
		s.fail(ctx, result.Error)
		return result.Error
	}

	s.mu.Lock()
	s.result = result
	s.fileName = files[0].Name
	s.state = StateResults
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "analysis rendered", "warnings", len(result.Warnings))
	return nil
}

func (s *Session) snapshot() ([]transport.Attachment, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]transport.Attachment(nil), s.files...), s.note
}

func (s *Session) startLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.loading = true
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.state == StateLoading {
		s.state = StateInitial
	}
}

func (s *Session) fail(ctx context.Context, err error) {
	s.mu.Lock()
	s.state = StateInitial
	s.result = nil
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "submission failed", "error", err)
	s.report(Message(err))
}

// Message returns the user-facing text for a failure
func Message(err error) string {
	var (
		upstream  *model.UpstreamError
		renderErr *model.RenderError
	)
	switch {
	case errors.As(err, &upstream):
		return upstream.Descriptor.UserMessage
	case errors.As(err, &renderErr):
		return renderFailure
	default:
		return fmt.Sprintf(genericFailure, err)
	}
}
