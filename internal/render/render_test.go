package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
	"github.com/rezonia/reimburse-report/internal/render"
)

func recordFrom(t *testing.T, body string) *model.Record {
	t.Helper()
	raw, err := normalizer.Parse([]byte(body))
	require.NoError(t, err)
	return normalizer.Normalize(raw)
}

func renderBody(t *testing.T, body string) *render.Document {
	t.Helper()
	doc, err := render.Render(recordFrom(t, body))
	require.NoError(t, err)
	return doc
}

func TestRender_SectionOrder(t *testing.T) {
	doc := renderBody(t, `{}`)

	ids := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		render.SectionInvoice,
		render.SectionExpense,
		render.SectionAccounting,
		render.SectionRisk,
		render.SectionApproval,
		render.SectionVerification,
	}, ids)
}

func TestRender_DerivedInclTaxAndTier(t *testing.T) {
	doc := renderBody(t, `{"invoice_info": {"total_amount": 100, "total_tax": 13}, "risk_analysis": {"risk_score": 0.2}}`)

	inv := doc.Section(render.SectionInvoice)
	assert.Equal(t, "¥100.00", inv.Field(render.LabelAmountExclTax))
	assert.Equal(t, "¥13.00", inv.Field(render.LabelTaxAmount))
	assert.Equal(t, "¥113.00", inv.Field(render.LabelAmountInclTax))

	risk := doc.Section(render.SectionRisk)
	require.NotNil(t, risk.Badge)
	assert.Equal(t, model.RiskLow, risk.Badge.Tier)
	assert.Equal(t, "low", risk.Badge.Label)
	assert.Equal(t, "0.2", risk.Field(render.LabelRiskScore))
}

func TestRender_MissingAmountsAreUnknown(t *testing.T) {
	doc := renderBody(t, `{"invoice_info": {"total_amount": 100}}`)

	inv := doc.Section(render.SectionInvoice)
	assert.Equal(t, render.Unknown, inv.Field(render.LabelTaxAmount))
	assert.Equal(t, render.Unknown, inv.Field(render.LabelAmountInclTax))
	assert.Equal(t, render.Unknown, inv.Field(render.LabelInvoiceNumber))
	assert.Equal(t, render.Unknown, inv.Field(render.LabelTaxRate))
}

func TestRender_EmptyListsUsePlaceholder(t *testing.T) {
	doc := renderBody(t, `{"approval_analysis": {"focus_points": [], "suggestions": [null, ""]}}`)

	ap := doc.Section(render.SectionApproval)
	assert.Equal(t, []render.Item{{Text: render.NoneAvailable}}, ap.List(render.LabelFocusPoints))
	assert.Equal(t, []render.Item{{Text: render.NoneAvailable}}, ap.List(render.LabelSuggestions))
	assert.Equal(t, []render.Item{{Text: render.NoneAvailable}}, ap.List(render.LabelSources))
}

func TestRender_Sources(t *testing.T) {
	doc := renderBody(t, `{"accounting_analysis": {"sources": ["Handbook", {"title": "Rules", "url": "https://example.com/r"}, {"url": "https://example.com/x"}]}}`)

	items := doc.Section(render.SectionAccounting).List(render.LabelSources)
	assert.Equal(t, []render.Item{
		{Text: "Handbook"},
		{Text: "Rules", Href: "https://example.com/r"},
		{Text: model.UnnamedSource, Href: "https://example.com/x"},
	}, items)
}

func TestRender_ExpenseScope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"scope", `{"accounting_analysis": {"scope": "Domestic trips", "basis": ["a"]}}`, "Domestic trips"},
		{"basis joined", `{"accounting_analysis": {"basis": ["rule a", "rule b"]}}`, "rule a; rule b"},
		{"nothing", `{}`, render.NoneAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := renderBody(t, tt.body)
			assert.Equal(t, tt.want, doc.Section(render.SectionExpense).Field(render.LabelScope))
		})
	}
}

func TestRender_NilRecord(t *testing.T) {
	_, err := render.Render(nil)
	var renderErr *model.RenderError
	require.True(t, errors.As(err, &renderErr))
}

func TestVerification(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		valid   bool
		message string
		link    bool
	}{
		{
			name:    "unspecified defaults to valid",
			body:    `{}`,
			valid:   true,
			message: "Verification passed",
		},
		{
			name:    "valid with document id",
			body:    `{"verification": {"is_valid": true, "verify_result": {"data": {"fphm": "12345678"}}}}`,
			valid:   true,
			message: "Verification passed, invoice number: 12345678",
		},
		{
			name:    "id already in message",
			body:    `{"verification": {"is_valid": true, "message": "invoice 12345678 is genuine", "invoice_number": "12345678"}}`,
			valid:   true,
			message: "invoice 12345678 is genuine",
		},
		{
			name:    "invalid shows message and link",
			body:    `{"check": {"is_valid": false, "verify_message": "no such invoice"}}`,
			valid:   false,
			message: "no such invoice",
			link:    true,
		},
		{
			name:    "invalid without message",
			body:    `{"verification": {"is_valid": false}}`,
			valid:   false,
			message: "Verification failed",
			link:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := renderBody(t, tt.body).Section(render.SectionVerification).Verification
			require.NotNil(t, v)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Equal(t, tt.message, v.Message)
			if tt.link {
				assert.Equal(t, render.AuthorityURL, v.AuthorityURL)
			} else {
				assert.Empty(t, v.AuthorityURL)
			}
		})
	}
}

func TestHTML_EscapesRecordText(t *testing.T) {
	doc := renderBody(t, `{"invoice_info": {"seller_name": "<script>alert(1)</script>"}, "risk_analysis": {"risk_points": ["<b>bold</b>"]}}`)

	out, err := render.HTML(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "<b>bold</b>")
}

func TestHTML_LinksAndBadge(t *testing.T) {
	doc := renderBody(t, `{"risk_analysis": {"risk_level": "High", "sources": [{"title": "Notice", "url": "https://example.com/n"}]}, "verification": {"is_valid": false}}`)

	out, err := render.HTML(doc)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<a href="https://example.com/n" target="_blank" rel="noreferrer">Notice</a>`)
	assert.Contains(t, html, `tier-high`)
	assert.Contains(t, html, render.AuthorityURL)
}

func TestHTML_UnsafeURLNeutralised(t *testing.T) {
	doc := renderBody(t, `{"approval_analysis": {"sources": [{"title": "x", "url": "javascript:alert(1)"}]}}`)

	out, err := render.HTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "javascript:alert(1)")
}

func TestWriteText(t *testing.T) {
	doc := renderBody(t, `{"invoice_info": {"invoice_number": "N1", "total_amount": 100, "total_tax": 13}, "verification": {"is_valid": false}}`)

	var buf bytes.Buffer
	require.NoError(t, render.WriteText(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, "== Invoice Details ==")
	assert.Contains(t, out, "N1")
	assert.Contains(t, out, "¥113.00")
	assert.Contains(t, out, "FAILED")
}

func TestDocument_JSON(t *testing.T) {
	doc := renderBody(t, `{"risk_analysis": {"risk_score": 0.9}}`)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tier":"high"`)
}

func BenchmarkRender(b *testing.B) {
	raw, _ := normalizer.Parse([]byte(`{"invoice_info": {"total_amount": 100, "total_tax": 13}, "risk_analysis": {"risk_score": 0.5, "risk_points": ["a", "b"]}}`))
	rec := normalizer.Normalize(raw)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = render.Render(rec)
	}
}
