package render

import (
	"strings"

	"github.com/rezonia/reimburse-report/internal/model"
)

// Field and list labels
const (
	LabelInvoiceType    = "Invoice Type"
	LabelInvoiceDate    = "Invoice Date"
	LabelInvoiceNumber  = "Invoice Number"
	LabelTaxRate        = "Tax Rate"
	LabelAmountExclTax  = "Amount Excl. Tax"
	LabelTaxAmount      = "Tax Amount"
	LabelAmountInclTax  = "Amount Incl. Tax"
	LabelServiceType    = "Service Type"
	LabelSeller         = "Seller"
	LabelBuyer          = "Buyer"
	LabelExpenseType    = "Expense Type"
	LabelScope          = "Scope"
	LabelAccountSubject = "Account Subject"
	LabelRiskScore      = "Risk Score"
	LabelBasis          = "Basis"
	LabelSources        = "Sources"
	LabelAdvice         = "Advice"
	LabelRiskPoints     = "Risk Points"
	LabelFocusPoints    = "Focus Points"
	LabelSuggestions    = "Suggestions"
)

const (
	messagePassed = "Verification passed"
	messageFailed = "Verification failed"
)

func buildInvoice(rec *model.Record, s *Section) {
	inv := rec.Invoice
	s.Fields = []Field{
		{LabelInvoiceType, Text(inv.Type)},
		{LabelInvoiceDate, Text(inv.Date)},
		{LabelInvoiceNumber, Text(inv.Number)},
		{LabelTaxRate, Percent(inv.TaxRate)},
		{LabelAmountExclTax, MoneyOf(inv.AmountExclTax())},
		{LabelTaxAmount, MoneyOf(inv.TaxAmount())},
		{LabelAmountInclTax, MoneyOf(inv.AmountInclTax())},
		{LabelServiceType, Text(inv.ServiceType)},
		{LabelSeller, Text(inv.SellerName)},
		{LabelBuyer, Text(inv.BuyerName)},
	}
}

func buildExpense(rec *model.Record, s *Section) {
	acc := rec.Accounting
	scope := acc.Scope.String()
	if scope == "" {
		scope = joinItems(acc.Basis, "; ")
	}
	if scope == "" {
		scope = NoneAvailable
	}
	s.Fields = []Field{
		{LabelExpenseType, Text(acc.ExpenseType)},
		{LabelScope, scope},
	}
}

func buildAccounting(rec *model.Record, s *Section) {
	acc := rec.Accounting
	s.Fields = []Field{{LabelAccountSubject, Text(acc.AccountSubject)}}
	s.Lists = []List{
		{LabelBasis, Items(acc.Basis)},
		{LabelSources, Sources(acc.Sources)},
		{LabelAdvice, Items(acc.Advice)},
	}
}

func buildRisk(rec *model.Record, s *Section) {
	risk := rec.Risk
	s.Badge = &Badge{Label: risk.Label(), Tier: risk.Tier()}
	if score, ok := risk.RiskScore.Decimal(); ok {
		s.Fields = []Field{{LabelRiskScore, score.String()}}
	}
	s.Lists = []List{
		{LabelBasis, Items(risk.Basis)},
		{LabelRiskPoints, Items(risk.Points)},
		{LabelSources, Sources(risk.Sources)},
	}
}

func buildApproval(rec *model.Record, s *Section) {
	ap := rec.Approval
	s.Lists = []List{
		{LabelFocusPoints, Items(ap.FocusPoints)},
		{LabelSuggestions, Items(ap.Suggestions)},
		{LabelBasis, Items(ap.Basis)},
		{LabelSources, Sources(ap.Sources)},
	}
}

func buildVerification(rec *model.Record, s *Section) {
	s.Verification = Verification(rec.Verification)
}

// Verification builds the verification sub-view. Validity defaults to true
// when the group does not state it.
func Verification(v model.Verification) *VerificationView {
	valid, stated := v.IsValid()
	if !stated {
		valid = true
	}
	msg := v.Message()

	if !valid {
		if msg == "" {
			msg = messageFailed
		}
		return &VerificationView{Valid: false, Message: msg, AuthorityURL: AuthorityURL}
	}

	if msg == "" {
		msg = messagePassed
	}
	if id := v.DocumentID(); id != "" && !strings.Contains(msg, id) {
		msg = messagePassed + ", invoice number: " + id
	}
	return &VerificationView{Valid: true, Message: msg}
}
