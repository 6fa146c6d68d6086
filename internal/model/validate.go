package model

import (
	"fmt"

	dec "github.com/rezonia/reimburse-report/internal/decimal"
)

// ValidationResult holds the outcome of checking a record for completeness
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationResult) fail(err *ValidationError) {
	r.Valid = false
	r.Errors = append(r.Errors, err.Error())
}

func (r *ValidationResult) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks required fields and amount consistency.
// In strict mode missing parties and dates are errors rather than warnings.
func Validate(rec *Record, strict bool) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if rec == nil {
		result.fail(NewValidationError("record", nil, "required", "no record"))
		return result
	}
	inv := rec.Invoice

	if inv.Number.String() == "" {
		result.fail(NewValidationError("invoice_number", nil, "required", "missing invoice number"))
	}

	if inv.Date.String() == "" {
		if strict {
			result.fail(NewValidationError("invoice_date", nil, "required", "missing invoice date"))
		} else {
			result.warn("missing invoice date")
		}
	}

	if strict {
		if inv.SellerName.String() == "" {
			result.fail(NewValidationError("seller_name", nil, "required", "missing seller name"))
		}
		if inv.BuyerName.String() == "" {
			result.fail(NewValidationError("buyer_name", nil, "required", "missing buyer name"))
		}
	}

	checkAmount := func(field string, v Value) {
		if v.IsMissing() {
			return
		}
		d, ok := v.Decimal()
		if !ok {
			result.fail(NewValidationError(field, v.Raw(), "numeric", "amount is not numeric"))
			return
		}
		if !dec.IsNonNegative(d) {
			result.warn("%s is negative: %s", field, d)
		}
	}
	checkAmount("total_amount", inv.TotalAmount)
	checkAmount("total_tax", inv.TotalTax)
	checkAmount("amount_in_figures", inv.AmountInFigures)

	if inv.TotalAmount.IsMissing() {
		result.warn("amount excluding tax is missing")
	}

	if _, ok := inv.AmountInclTax(); !ok {
		result.warn("amount including tax cannot be determined")
	}

	// Check calculation: excl + tax = incl
	supplied, okSupplied := inv.AmountInFigures.Decimal()
	excl, okExcl := inv.AmountExclTax()
	tax, okTax := inv.TaxAmount()
	if okSupplied && okExcl && okTax && dec.Mismatch(supplied, excl, tax) {
		result.warn("amount mismatch: excl(%s) + tax(%s) = %s, but incl is %s",
			dec.Fixed2(excl), dec.Fixed2(tax), dec.Fixed2(dec.Add(excl, tax)), dec.Fixed2(supplied))
	}

	if rec.Risk.Tier() == RiskUnknown {
		result.warn("risk tier is unknown")
	}

	if valid, stated := rec.Verification.IsValid(); stated && !valid {
		result.warn("verification failed: %s", rec.Verification.Message())
	}

	return result
}
