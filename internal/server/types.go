package server

import (
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/render"
)

// ClassifyRequest is the body of the classify endpoint
type ClassifyRequest struct {
	Error string `json:"error"`
	LogID string `json:"log_id"`
}

// NormalizeResponse is the response for the normalize endpoint
type NormalizeResponse struct {
	Record   *model.Record `json:"record"`
	Warnings []string      `json:"warnings,omitempty"`
}

// RenderResponse is the JSON response for the render endpoint
type RenderResponse struct {
	Document *render.Document `json:"document"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// InfoResponse is the response for info endpoint
type InfoResponse struct {
	Format    string   `json:"format"`
	MimeType  string   `json:"mime_type"`
	Size      int      `json:"size"`
	Supported bool     `json:"supported"`
	PageCount *int     `json:"page_count,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string                 `json:"error"`
	Details  string                 `json:"details,omitempty"`
	Failure  *model.ErrorDescriptor `json:"failure,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}
