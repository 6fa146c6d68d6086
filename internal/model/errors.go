package model

import "fmt"

// ErrorDescriptor is a classified upstream failure
type ErrorDescriptor struct {
	Code        *string `json:"code"`
	Message     string  `json:"message"`
	LogID       *string `json:"log_id,omitempty"`
	UserMessage string  `json:"user_message"`
}

// TransportError represents a failed exchange with the analysis service
type TransportError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport failed: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("transport failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport failed: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new transport error
func NewTransportError(statusCode int, message string, cause error) *TransportError {
	return &TransportError{
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

// FormatError represents a response that is not a JSON object
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response format abnormal: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("response format abnormal: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// NewFormatError creates a new format error
func NewFormatError(message string, cause error) *FormatError {
	return &FormatError{
		Message: message,
		Cause:   cause,
	}
}

// UpstreamError carries the sentinel failure reported inside an otherwise valid response
type UpstreamError struct {
	Descriptor ErrorDescriptor
}

func (e *UpstreamError) Error() string {
	return e.Descriptor.UserMessage
}

// NewUpstreamError creates a new upstream analysis error
func NewUpstreamError(d ErrorDescriptor) *UpstreamError {
	return &UpstreamError{Descriptor: d}
}

// RenderError represents a failure to build the document from a record
type RenderError struct {
	Section string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Section, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Section, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(section, message string, cause error) *RenderError {
	return &RenderError{
		Section: section,
		Message: message,
		Cause:   cause,
	}
}

// ExportError represents a failure to produce an export artifact
type ExportError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed [%s]: %s (%v)", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed [%s]: %s", e.Format, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export encoding error
func NewExportError(format, message string, cause error) *ExportError {
	return &ExportError{
		Format:  format,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
