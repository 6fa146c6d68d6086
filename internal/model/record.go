package model

import (
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/reimburse-report/internal/decimal"
)

// Record is the canonical invoice record.
// Every field is always present and holds either a value or the missing marker.
type Record struct {
	Invoice      Invoice      `json:"invoice_info"`
	Accounting   Accounting   `json:"accounting_analysis"`
	Risk         Risk         `json:"risk_analysis"`
	Approval     Approval     `json:"approval_analysis"`
	Verification Verification `json:"verification"`
}

// Invoice holds the identity and amounts of the document
type Invoice struct {
	Type            Value `json:"invoice_type"`
	Date            Value `json:"invoice_date"`
	Number          Value `json:"invoice_number"`
	TaxRate         Value `json:"tax_rate"`
	TotalAmount     Value `json:"total_amount"`
	TotalTax        Value `json:"total_tax"`
	AmountInFigures Value `json:"amount_in_figures"`
	ServiceType     Value `json:"service_type"`
	SellerName      Value `json:"seller_name"`
	BuyerName       Value `json:"buyer_name"`
}

// AmountExclTax returns the pre-tax amount
func (i Invoice) AmountExclTax() (decimal.Decimal, bool) {
	return i.TotalAmount.Decimal()
}

// TaxAmount returns the tax amount
func (i Invoice) TaxAmount() (decimal.Decimal, bool) {
	return i.TotalTax.Decimal()
}

// AmountInclTax returns the tax-inclusive amount, derived from excl + tax when not supplied
func (i Invoice) AmountInclTax() (decimal.Decimal, bool) {
	return dec.InclusiveTotal(
		optionalDecimal(i.AmountInFigures),
		optionalDecimal(i.TotalAmount),
		optionalDecimal(i.TotalTax),
	)
}

// Accounting holds the expense classification
type Accounting struct {
	ExpenseType    Value `json:"expense_type"`
	AccountSubject Value `json:"account_subject"`
	Scope          Value `json:"scope"`
	Basis          Value `json:"basis"`
	Sources        Value `json:"sources"`
	Advice         Value `json:"advice"`
}

// Risk holds the risk assessment
type Risk struct {
	RiskLevel Value `json:"risk_level"`
	RiskScore Value `json:"risk_score"`
	Basis     Value `json:"basis"`
	Sources   Value `json:"sources"`
	Points    Value `json:"risk_points"`
}

// Approval holds reviewer guidance
type Approval struct {
	FocusPoints Value `json:"focus_points"`
	Suggestions Value `json:"suggestions"`
	Basis       Value `json:"basis"`
	Sources     Value `json:"sources"`
}

// Verification is the upstream authenticity check, kept as supplied
type Verification struct {
	Raw Value
}

// MarshalJSON writes the group unchanged
func (v Verification) MarshalJSON() ([]byte, error) {
	return v.Raw.MarshalJSON()
}

// UnmarshalJSON keeps the group unchanged
func (v *Verification) UnmarshalJSON(data []byte) error {
	return v.Raw.UnmarshalJSON(data)
}

// IsValid returns the stated validity. stated is false when the group does not say.
func (v Verification) IsValid() (valid, stated bool) {
	return v.Raw.Get("is_valid").Bool()
}

// Message returns the supplied verification message, if any
func (v Verification) Message() string {
	for _, key := range []string{"verify_message", "message"} {
		if s := v.Raw.Get(key).String(); s != "" {
			return s
		}
	}
	return ""
}

// DocumentID returns the invoice number confirmed by the authority, if extractable
func (v Verification) DocumentID() string {
	candidates := []Value{
		v.Raw.Path("verify_result", "data", "fphm"),
		v.Raw.Path("verify_result", "data", "code"),
		v.Raw.Get("invoice_number"),
	}
	for _, c := range candidates {
		if s := c.String(); s != "" {
			return s
		}
	}
	return ""
}

// Result returns a free-text verdict when no validity flag is stated
func (v Verification) Result() string {
	for _, key := range []string{"verification_result", "result"} {
		if s := v.Raw.Get(key).String(); s != "" {
			return s
		}
	}
	return ""
}

// RiskTier is the derived risk classification
type RiskTier string

const (
	RiskLow     RiskTier = "low"
	RiskMedium  RiskTier = "medium"
	RiskHigh    RiskTier = "high"
	RiskUnknown RiskTier = "unknown"
)

var (
	lowCeiling    = decimal.RequireFromString("0.34")
	mediumCeiling = decimal.RequireFromString("0.67")
)

// Tier derives the tier: the explicit label wins, then the numeric score.
func (r Risk) Tier() RiskTier {
	if label := r.RiskLevel.String(); label != "" {
		return tierFromLabel(label)
	}
	score, ok := r.RiskScore.Decimal()
	if !ok {
		return RiskUnknown
	}
	switch {
	case score.LessThan(lowCeiling):
		return RiskLow
	case score.LessThan(mediumCeiling):
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Label returns the text shown for the tier: the explicit label verbatim, else the tier name
func (r Risk) Label() string {
	if label := r.RiskLevel.String(); label != "" {
		return label
	}
	return string(r.Tier())
}

func tierFromLabel(label string) RiskTier {
	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch {
	case hasWord(words, "low") || strings.Contains(label, "低"):
		return RiskLow
	case hasWord(words, "high") || strings.Contains(label, "高"):
		return RiskHigh
	case hasWord(words, "medium", "moderate") || strings.Contains(label, "中"):
		return RiskMedium
	default:
		return RiskUnknown
	}
}

// hasWord reports whether any of want appears as a whole word.
// CJK labels carry no word breaks and are matched by rune instead.
func hasWord(words []string, want ...string) bool {
	for _, w := range words {
		if slices.Contains(want, w) {
			return true
		}
	}
	return false
}
