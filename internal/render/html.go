package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rezonia/reimburse-report/internal/model"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"tierClass": func(t model.RiskTier) string {
		return "tier-" + string(t)
	},
}).Parse(reportHTML))

// HTML renders the document as a standalone page. All record text is escaped.
func HTML(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, model.NewRenderError("document", "no document", nil)
	}
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return nil, model.NewRenderError("html", "template execution failed", fmt.Errorf("execute: %w", err))
	}
	return buf.Bytes(), nil
}

var reportHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: 'Noto Sans SC', 'Helvetica Neue', Arial, sans-serif; margin: 24px; color: #0f172a; }
    h1 { margin: 0 0 16px; }
    .card { border: 1px solid #e2e8f0; border-radius: 8px; padding: 12px; margin-bottom: 12px; }
    .label { font-size: 12px; color: #475569; }
    .value { font-size: 14px; margin-bottom: 4px; }
    .badge { display: inline-block; padding: 2px 8px; border-radius: 4px; font-weight: 700; }
    .tier-low { background: #dcfce7; color: #166534; }
    .tier-medium { background: #fef9c3; color: #854d0e; }
    .tier-high { background: #fee2e2; color: #991b1b; }
    .tier-unknown { background: #f1f5f9; color: #475569; }
    .ok { color: #166534; }
    .fail { color: #991b1b; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 6px 8px; border-bottom: 1px solid #e2e8f0; text-align: left; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{range .Sections}}
  <div class="card" id="section-{{.ID}}">
    <h2>{{.Title}}</h2>
    {{with .Badge}}<span class="badge {{tierClass .Tier}}">{{.Label}}</span>{{end}}
    {{if .Fields}}
    <table>
      {{range .Fields}}<tr><th class="label">{{.Label}}</th><td class="value">{{.Value}}</td></tr>
      {{end}}
    </table>
    {{end}}
    {{range .Lists}}
    <div class="label">{{.Title}}</div>
    <ul>
      {{range .Items}}<li>{{if .Href}}<a href="{{.Href}}" target="_blank" rel="noreferrer">{{.Text}}</a>{{else}}{{.Text}}{{end}}</li>
      {{end}}
    </ul>
    {{end}}
    {{with .Verification}}
      {{if .Valid}}<div class="ok">{{.Message}}</div>
      {{else}}<div class="fail">{{.Message}}</div>
      <div>Check manually at <a href="{{.AuthorityURL}}" target="_blank" rel="noreferrer">{{.AuthorityURL}}</a></div>
      {{end}}
    {{end}}
  </div>
{{end}}
</body>
</html>
`
