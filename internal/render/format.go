package render

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/reimburse-report/internal/decimal"
	"github.com/rezonia/reimburse-report/internal/model"
)

// Placeholders shown instead of blanks or zeros
const (
	Unknown       = "unknown"
	NoneAvailable = "none available"
)

var (
	leadingNumber = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`)
	hundred       = decimal.NewFromInt(100)
	one           = decimal.NewFromInt(1)
)

// Money formats an amount as "¥" with exactly 2 decimals, or Unknown
func Money(v model.Value) string {
	return MoneyOf(v.Decimal())
}

// MoneyOf formats an already resolved amount
func MoneyOf(d decimal.Decimal, ok bool) string {
	if !ok {
		return Unknown
	}
	return dec.FormatMoney(d)
}

// Percent formats a tax rate. "13%" style strings keep their number,
// fractions in [0,1] are scaled by 100 and other numbers are taken as percents.
// Unparseable input is echoed verbatim.
func Percent(v model.Value) string {
	if v.IsMissing() {
		return Unknown
	}
	text, ok := v.Text()
	if !ok {
		return Unknown
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Unknown
	}

	if _, isString := v.Raw().(string); isString && strings.Contains(text, "%") {
		n, err := decimal.NewFromString(leadingNumber.FindString(text))
		if err != nil {
			return text
		}
		return percentString(n)
	}

	n, ok := v.Decimal()
	if !ok {
		return text
	}
	if !n.IsNegative() && n.LessThanOrEqual(one) {
		n = n.Mul(hundred)
	}
	return percentString(n)
}

func percentString(n decimal.Decimal) string {
	return n.Round(2).String() + "%"
}

// Text returns the trimmed scalar text or Unknown
func Text(v model.Value) string {
	if s := v.String(); s != "" {
		return s
	}
	return Unknown
}

// Items renders a list field; an empty list yields the placeholder item
func Items(v model.Value) []Item {
	values := v.Items()
	items := make([]Item, 0, len(values))
	for _, e := range values {
		if s := itemText(e); s != "" {
			items = append(items, Item{Text: s})
		}
	}
	if len(items) == 0 {
		return placeholder()
	}
	return items
}

// Sources renders citations; structured sources with a URL become links
func Sources(v model.Value) []Item {
	sources := model.SourcesOf(v)
	items := make([]Item, 0, len(sources))
	for _, s := range sources {
		switch src := s.(type) {
		case model.Label:
			items = append(items, Item{Text: string(src)})
		case model.Reference:
			items = append(items, Item{Text: src.Title, Href: src.URL})
		}
	}
	if len(items) == 0 {
		return placeholder()
	}
	return items
}

func placeholder() []Item {
	return []Item{{Text: NoneAvailable}}
}

func itemText(v model.Value) string {
	if s, ok := v.Text(); ok {
		return strings.TrimSpace(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func joinItems(v model.Value, sep string) string {
	values := v.Items()
	parts := make([]string, 0, len(values))
	for _, e := range values {
		if s := itemText(e); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
