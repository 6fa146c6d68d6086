package normalizer

import "github.com/rezonia/reimburse-report/internal/model"

// Group names a top-level section of the analysis result
type Group string

const (
	GroupInvoice      Group = "invoice"
	GroupAccounting   Group = "accounting"
	GroupRisk         Group = "risk"
	GroupApproval     Group = "approval"
	GroupVerification Group = "verification"
)

// rootPrefix marks an alias looked up on the response itself rather than the group
const rootPrefix = "$."

var groupOrder = []Group{GroupInvoice, GroupAccounting, GroupRisk, GroupApproval, GroupVerification}

func defaultGroupAliases() map[Group][]string {
	return map[Group][]string{
		GroupInvoice:      {"invoice_info", "invoice"},
		GroupAccounting:   {"accounting_analysis", "analysis"},
		GroupRisk:         {"risk_analysis", "risk"},
		GroupApproval:     {"approval_analysis", "approval"},
		GroupVerification: {"verification", "check"},
	}
}

// Chain is the ordered list of historical names for one canonical field.
// The first alias holding a non-null value wins.
type Chain struct {
	Group   Group    `json:"group"`
	Field   string   `json:"field"`
	Aliases []string `json:"aliases"`

	at func(*model.Record) *model.Value
}

func chain(g Group, field string, at func(*model.Record) *model.Value, aliases ...string) Chain {
	return Chain{Group: g, Field: field, Aliases: aliases, at: at}
}

func defaultChains() []Chain {
	return []Chain{
		chain(GroupInvoice, "invoice_type", func(r *model.Record) *model.Value { return &r.Invoice.Type },
			"invoice_type", "type"),
		chain(GroupInvoice, "invoice_date", func(r *model.Record) *model.Value { return &r.Invoice.Date },
			"invoice_date", "date"),
		chain(GroupInvoice, "invoice_number", func(r *model.Record) *model.Value { return &r.Invoice.Number },
			"invoice_number", "number"),
		chain(GroupInvoice, "tax_rate", func(r *model.Record) *model.Value { return &r.Invoice.TaxRate },
			"tax_rate", "rate"),
		chain(GroupInvoice, "total_amount", func(r *model.Record) *model.Value { return &r.Invoice.TotalAmount },
			"total_amount", "total", "amount_total", "amount_excl_tax"),
		chain(GroupInvoice, "total_tax", func(r *model.Record) *model.Value { return &r.Invoice.TotalTax },
			"total_tax", "tax_amount"),
		chain(GroupInvoice, "amount_in_figures", func(r *model.Record) *model.Value { return &r.Invoice.AmountInFigures },
			"amount_in_figures", "amount_with_tax"),
		chain(GroupInvoice, "service_type", func(r *model.Record) *model.Value { return &r.Invoice.ServiceType },
			"service_type", "item", "project"),
		chain(GroupInvoice, "seller_name", func(r *model.Record) *model.Value { return &r.Invoice.SellerName },
			"seller_name", "seller"),
		chain(GroupInvoice, "buyer_name", func(r *model.Record) *model.Value { return &r.Invoice.BuyerName },
			"buyer_name", "buyer"),

		chain(GroupAccounting, "expense_type", func(r *model.Record) *model.Value { return &r.Accounting.ExpenseType },
			rootPrefix+"expense_type", "expense_type", "type"),
		chain(GroupAccounting, "account_subject", func(r *model.Record) *model.Value { return &r.Accounting.AccountSubject },
			"account_subject", "subject"),
		chain(GroupAccounting, "scope", func(r *model.Record) *model.Value { return &r.Accounting.Scope },
			"scope"),
		chain(GroupAccounting, "basis", func(r *model.Record) *model.Value { return &r.Accounting.Basis },
			"basis", "rules", "match_basis"),
		chain(GroupAccounting, "sources", func(r *model.Record) *model.Value { return &r.Accounting.Sources },
			"sources", "references", "sources_used"),
		chain(GroupAccounting, "advice", func(r *model.Record) *model.Value { return &r.Accounting.Advice },
			"advice", "suggestions"),

		chain(GroupRisk, "risk_level", func(r *model.Record) *model.Value { return &r.Risk.RiskLevel },
			"risk_level"),
		chain(GroupRisk, "risk_score", func(r *model.Record) *model.Value { return &r.Risk.RiskScore },
			"risk_score"),
		chain(GroupRisk, "basis", func(r *model.Record) *model.Value { return &r.Risk.Basis },
			"basis", "criteria", "judgement"),
		chain(GroupRisk, "sources", func(r *model.Record) *model.Value { return &r.Risk.Sources },
			"sources", "references", "sources_used"),
		chain(GroupRisk, "risk_points", func(r *model.Record) *model.Value { return &r.Risk.Points },
			"risk_points", "points"),

		chain(GroupApproval, "focus_points", func(r *model.Record) *model.Value { return &r.Approval.FocusPoints },
			"focus_points", "approval_notes", "checklist", "approval_points"),
		chain(GroupApproval, "suggestions", func(r *model.Record) *model.Value { return &r.Approval.Suggestions },
			"suggestions", "tips"),
		chain(GroupApproval, "basis", func(r *model.Record) *model.Value { return &r.Approval.Basis },
			"basis", "criteria"),
		chain(GroupApproval, "sources", func(r *model.Record) *model.Value { return &r.Approval.Sources },
			"sources", "references", "sources_used"),
	}
}
