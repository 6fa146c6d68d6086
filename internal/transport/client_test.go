package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/processor"
	"github.com/rezonia/reimburse-report/internal/transport"
)

var discard = slog.New(slog.DiscardHandler)

func pngAttachment(t *testing.T, name string) transport.Attachment {
	t.Helper()
	att, err := transport.NewAttachment(discard, name, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	require.NoError(t, err)
	return att
}

func TestClient_Submit(t *testing.T) {
	var (
		gotFiles []string
		gotTypes []string
		gotNote  string
		gotHints []transport.EvidenceHint
		gotReqID string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		for _, fh := range r.MultipartForm.File[transport.FieldFiles] {
			gotFiles = append(gotFiles, fh.Filename)
			gotTypes = append(gotTypes, fh.Header.Get("Content-Type"))
		}
		gotNote = r.FormValue(transport.FieldNote)
		assert.NoError(t, json.Unmarshal([]byte(r.FormValue(transport.FieldEvidenceHint)), &gotHints))
		gotReqID = r.Header.Get("X-Request-ID")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"invoice_info": {}}`)
	}))
	defer srv.Close()

	client := transport.NewClient(srv.URL, transport.WithLogger(discard))
	resp, err := client.Submit(context.Background(), &transport.Submission{
		Files: []transport.Attachment{pngAttachment(t, "invoice.png"), pngAttachment(t, "taxi \"receipt\".png")},
		Note:  "client dinner",
	})
	require.NoError(t, err)
	require.NoError(t, resp.Check())

	assert.Equal(t, []string{"invoice.png", `taxi "receipt".png`}, gotFiles)
	assert.Equal(t, []string{"image/png", "image/png"}, gotTypes)
	assert.Equal(t, "client dinner", gotNote)
	assert.Equal(t, []transport.EvidenceHint{{Filename: `taxi "receipt".png`}}, gotHints)

	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err)
	assert.Equal(t, gotReqID, resp.RequestID)
	assert.JSONEq(t, `{"invoice_info": {}}`, string(resp.Body))
}

func TestClient_SingleFileHasEmptyHints(t *testing.T) {
	var hints string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		hints = r.FormValue(transport.FieldEvidenceHint)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := transport.NewClient(srv.URL).Submit(context.Background(), &transport.Submission{
		Files: []transport.Attachment{pngAttachment(t, "only.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "[]", hints)
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := transport.NewClient(url).Submit(context.Background(), &transport.Submission{})
	var transportErr *model.TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestClient_WithTimeoutKeepsSharedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	shared := &http.Client{}
	client := transport.NewClient(srv.URL,
		transport.WithHTTPClient(shared),
		transport.WithTimeout(3*time.Second),
	)

	resp, err := client.Submit(context.Background(), &transport.Submission{Files: []transport.Attachment{pngAttachment(t, "a.png")}})
	require.NoError(t, err)
	assert.NoError(t, resp.Check())
	assert.Zero(t, shared.Timeout)
}

func TestResponse_Check(t *testing.T) {
	tests := []struct {
		name      string
		resp      transport.Response
		transport bool
		format    bool
	}{
		{name: "ok", resp: transport.Response{StatusCode: 200, ContentType: "application/json"}},
		{name: "problem json", resp: transport.Response{StatusCode: 200, ContentType: "application/problem+json"}},
		{name: "server error", resp: transport.Response{StatusCode: 502, ContentType: "text/html"}, transport: true},
		{name: "not found", resp: transport.Response{StatusCode: 404, ContentType: "application/json"}, transport: true},
		{name: "html body", resp: transport.Response{StatusCode: 200, ContentType: "text/html; charset=utf-8"}, format: true},
		{name: "missing content type", resp: transport.Response{StatusCode: 200}, format: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Check()
			var transportErr *model.TransportError
			var formatErr *model.FormatError
			assert.Equal(t, tt.transport, errors.As(err, &transportErr))
			assert.Equal(t, tt.format, errors.As(err, &formatErr))
			if !tt.transport && !tt.format {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAttachment(t *testing.T) {
	att := pngAttachment(t, "/tmp/uploads/scan.png")
	assert.Equal(t, "scan.png", att.Name)
	assert.Equal(t, processor.FormatImage, att.Format)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Nil(t, att.PageCount)

	_, err := transport.NewAttachment(discard, "empty.pdf", nil)
	assert.Error(t, err)

	_, err = transport.NewAttachment(discard, "notes.txt", []byte("hello"))
	assert.Error(t, err)
}

func TestNewAttachment_DamagedPDF(t *testing.T) {
	att, err := transport.NewAttachment(discard, "broken.pdf", []byte("%PDF-1.4\ntruncated"))
	require.NoError(t, err)
	assert.Equal(t, processor.FormatPDF, att.Format)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Nil(t, att.PageCount)
}
