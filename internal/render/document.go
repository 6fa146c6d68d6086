// Package render builds the human-readable analysis report from a canonical record.
package render

import (
	"fmt"

	"github.com/rezonia/reimburse-report/internal/model"
)

// Section identifiers, in display order
const (
	SectionInvoice      = "invoice"
	SectionExpense      = "expense"
	SectionAccounting   = "accounting"
	SectionRisk         = "risk"
	SectionApproval     = "approval"
	SectionVerification = "verification"
)

// AuthorityURL is where a failed verification can be checked by hand
const AuthorityURL = "https://inv-veri.chinatax.gov.cn/"

// Document is the rendered report
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section returns the section with the given id, or nil
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// Section is one block of the report
type Section struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Badge        *Badge            `json:"badge,omitempty"`
	Fields       []Field           `json:"fields,omitempty"`
	Lists        []List            `json:"lists,omitempty"`
	Verification *VerificationView `json:"verification,omitempty"`
}

// Field returns the value of a labelled field, or ""
func (s *Section) Field(label string) string {
	for _, f := range s.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

// List returns the titled list, or nil
func (s *Section) List(title string) []Item {
	for _, l := range s.Lists {
		if l.Title == title {
			return l.Items
		}
	}
	return nil
}

// Field is a labelled scalar
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// List is a titled ordered list
type List struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is a list entry, linked when Href is set
type Item struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Badge is the risk tier indicator
type Badge struct {
	Label string         `json:"label"`
	Tier  model.RiskTier `json:"tier"`
}

// VerificationView is the outcome of the authenticity check
type VerificationView struct {
	Valid        bool   `json:"valid"`
	Message      string `json:"message"`
	AuthorityURL string `json:"authority_url,omitempty"`
}

type builder struct {
	id    string
	title string
	build func(*model.Record, *Section)
}

var builders = []builder{
	{SectionInvoice, "Invoice Details", buildInvoice},
	{SectionExpense, "Expense Classification", buildExpense},
	{SectionAccounting, "Accounting Subject", buildAccounting},
	{SectionRisk, "Risk Assessment", buildRisk},
	{SectionApproval, "Approval Guidance", buildApproval},
	{SectionVerification, "Verification", buildVerification},
}

// Render builds all sections. Each section falls back to placeholders on
// empty data; a record that makes a builder fail yields a RenderError.
func Render(rec *model.Record) (*Document, error) {
	if rec == nil {
		return nil, model.NewRenderError("document", "no record to render", nil)
	}
	doc := &Document{Title: "Invoice Analysis Report", Sections: make([]Section, 0, len(builders))}
	for _, b := range builders {
		s, err := runBuilder(b, rec)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc, nil
}

func runBuilder(b builder, rec *model.Record) (s Section, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = model.NewRenderError(b.id, "malformed record", fmt.Errorf("%v", r))
		}
	}()
	s = Section{ID: b.id, Title: b.title}
	b.build(rec, &s)
	return s, nil
}
