// Package transport submits attachments to the analysis service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rezonia/reimburse-report/internal/model"
)

const (
	defaultTimeout   = 120 * time.Second
	maxResponseBytes = 16 << 20
	requestIDHeader  = "X-Request-ID"
)

// Form field names expected by the analysis service
const (
	FieldFiles        = "files"
	FieldNote         = "note"
	FieldEvidenceHint = "evidence_hint"
)

// Submission is one analysis request
type Submission struct {
	Files []Attachment
	Note  string
}

// EvidenceHint names an evidence attachment
type EvidenceHint struct {
	Filename string `json:"filename"`
}

// Response is the raw reply of the analysis service
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	RequestID   string
}

// Check rejects non-success statuses and non-JSON bodies
func (r *Response) Check() error {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return model.NewTransportError(r.StatusCode, "HTTP status", nil)
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil || !isJSON(mediaType) {
		return model.NewFormatError(fmt.Sprintf("unexpected content type %q", r.ContentType), err)
	}
	return nil
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Client posts submissions as multipart forms
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the request timeout. A client passed to WithHTTPClient is
// copied, never modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		hc := *cl.httpClient
		hc.Timeout = d
		cl.httpClient = &hc
	}
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient creates a client for the analysis endpoint
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the submission. Only failures to exchange the request are
// returned as errors; status and content type are checked by Response.Check.
func (c *Client) Submit(ctx context.Context, sub *Submission) (*Response, error) {
	body, contentType, err := encodeForm(sub)
	if err != nil {
		return nil, model.NewTransportError(0, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, model.NewTransportError(0, "build request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewTransportError(0, "request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, model.NewTransportError(resp.StatusCode, "read response", err)
	}

	c.logger.InfoContext(ctx, "analysis response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"files", len(sub.Files),
		"duration", time.Since(start),
	)

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
		RequestID:   requestID,
	}, nil
}

func encodeForm(sub *Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range sub.Files {
		fw, err := mw.CreatePart(fileHeader(f))
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.WriteField(FieldNote, sub.Note); err != nil {
		return nil, "", err
	}

	hints := make([]EvidenceHint, 0, len(sub.Files))
	for i, f := range sub.Files {
		if i == 0 {
			continue
		}
		hints = append(hints, EvidenceHint{Filename: f.Name})
	}
	hintJSON, err := json.Marshal(hints)
	if err != nil {
		return nil, "", err
	}
	if err := mw.WriteField(FieldEvidenceHint, string(hintJSON)); err != nil {
		return nil, "", err
	}

	// close writer to set terminating boundary
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(f Attachment) textproto.MIMEHeader {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldFiles, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)
	return h
}
