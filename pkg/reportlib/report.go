// Package reportlib provides a public API for reviewing invoice analysis responses.
//
// This package exposes the canonical record, the rendered report and the
// spreadsheet exports produced from the JSON reply of an invoice analysis
// service.
//
// Example usage:
//
//	proc := reportlib.NewDefaultProcessor()
//	report, err := proc.Process(ctx, bytes.NewReader(body))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Record.Risk.Tier())
package reportlib

import (
	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/render"
)

// Re-export core types for public API
type (
	Record       = model.Record
	Invoice      = model.Invoice
	Accounting   = model.Accounting
	Risk         = model.Risk
	Approval     = model.Approval
	Verification = model.Verification
	Value        = model.Value
	Source       = model.Source
	Label        = model.Label
	Reference    = model.Reference
	RiskTier     = model.RiskTier
)

// Re-export risk tiers
const (
	RiskLow     = model.RiskLow
	RiskMedium  = model.RiskMedium
	RiskHigh    = model.RiskHigh
	RiskUnknown = model.RiskUnknown
)

// Re-export report types
type (
	Document         = render.Document
	Section          = render.Section
	VerificationView = render.VerificationView
	Artifact         = export.Artifact
	Format           = export.Format
)

// Re-export export formats
const (
	FormatCSV  = export.FormatCSV
	FormatXLSX = export.FormatXLSX
)

// Re-export error types
type (
	ErrorDescriptor = model.ErrorDescriptor
	TransportError  = model.TransportError
	FormatError     = model.FormatError
	UpstreamError   = model.UpstreamError
	RenderError     = model.RenderError
	ExportError     = model.ExportError
	ValidationError = model.ValidationError
)
