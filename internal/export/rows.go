// Package export encodes canonical records into spreadsheet exports.
package export

import (
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/reimburse-report/internal/decimal"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
)

// DefaultFileName is used when no source document name is known
const DefaultFileName = "invoice.pdf"

// Header is the fixed column order of every export
var Header = []string{
	"File Name",
	"Invoice Type",
	"Invoice Number",
	"Invoice Date",
	"Amount Excl. Tax",
	"Tax Amount",
	"Amount Incl. Tax",
	"Expense Type",
	"Account Subject",
	"Risk Level",
	"Verification Result",
}

const (
	verdictPassed = "passed"
	verdictFailed = "failed"
)

// Rows is a header row followed by data rows, all Header-aligned
type Rows [][]string

// BuildRows derives the export rows from rec. When rec is nil the raw response
// is normalized instead, so exports and the rendered view read the same fields.
func BuildRows(rec *model.Record, raw normalizer.RawResponse, fileName string) (Rows, error) {
	if rec == nil {
		if len(raw) == 0 {
			return nil, model.NewExportError("rows", "no analysis result to export", nil)
		}
		rec = normalizer.Normalize(raw)
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = DefaultFileName
	}
	return Rows{append([]string(nil), Header...), Row(rec, fileName)}, nil
}

// Row builds the single data row for rec
func Row(rec *model.Record, fileName string) []string {
	inv := rec.Invoice
	return []string{
		fileName,
		inv.Type.String(),
		inv.Number.String(),
		inv.Date.String(),
		amount(inv.AmountExclTax()),
		amount(inv.TaxAmount()),
		amount(inv.AmountInclTax()),
		rec.Accounting.ExpenseType.String(),
		rec.Accounting.AccountSubject.String(),
		riskLevel(rec.Risk),
		verdict(rec.Verification),
	}
}

func amount(d decimal.Decimal, ok bool) string {
	if !ok {
		return ""
	}
	return dec.Fixed2(d)
}

func riskLevel(r model.Risk) string {
	if r.Tier() == model.RiskUnknown && r.RiskLevel.String() == "" {
		return ""
	}
	return r.Label()
}

func verdict(v model.Verification) string {
	if valid, stated := v.IsValid(); stated {
		if valid {
			return verdictPassed
		}
		return verdictFailed
	}
	if r := v.Result(); r != "" {
		return r
	}
	return verdictPassed
}
