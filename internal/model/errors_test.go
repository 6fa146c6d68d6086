package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/reimburse-report/internal/model"
)

func TestTransportError(t *testing.T) {
	err := model.NewTransportError(502, "HTTP status", nil)
	require.Contains(t, err.Error(), "502")
	require.Contains(t, err.Error(), "HTTP status")

	cause := assert.AnError
	wrapped := model.NewTransportError(0, "request failed", cause)
	require.ErrorIs(t, wrapped, cause)
}

func TestFormatError_WithCause(t *testing.T) {
	cause := assert.AnError
	err := model.NewFormatError("not a JSON object", cause)

	require.Contains(t, err.Error(), "not a JSON object")
	require.ErrorIs(t, err, cause)
}

func TestUpstreamError(t *testing.T) {
	code := "18"
	err := model.NewUpstreamError(model.ErrorDescriptor{Code: &code, UserMessage: "OCR failed (code=18): rate limited"})

	var upstream *model.UpstreamError
	require.True(t, errors.As(error(err), &upstream))
	assert.Equal(t, "18", *upstream.Descriptor.Code)
	assert.Equal(t, "OCR failed (code=18): rate limited", err.Error())
}

func TestRenderError(t *testing.T) {
	err := model.NewRenderError("risk", "builder panicked", assert.AnError)
	require.Contains(t, err.Error(), "risk")
	require.ErrorIs(t, err, assert.AnError)
}

func TestExportError(t *testing.T) {
	err := model.NewExportError("xlsx", "workbook unavailable", nil)
	require.Contains(t, err.Error(), "xlsx")
	require.Contains(t, err.Error(), "workbook unavailable")
}

func TestValidationError(t *testing.T) {
	err := model.NewValidationError("total_amount", "abc", "numeric", "amount is not numeric")

	require.Contains(t, err.Error(), "total_amount")
	require.Contains(t, err.Error(), "abc")
	require.Contains(t, err.Error(), "not numeric")
}
