package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/reimburse-report/internal/decimal"
)

// Value is a resolved field of the canonical record.
// The zero Value is the missing marker. A present Value holds a decoded JSON
// value: string, json.Number, float64, bool, []any or map[string]any.
// Zero, false and the empty string are present values.
type Value struct {
	present bool
	raw     any
}

// Missing returns the explicit missing marker
func Missing() Value {
	return Value{}
}

// ValueOf wraps a decoded JSON value. nil yields the missing marker.
func ValueOf(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{present: true, raw: v}
}

// IsMissing reports whether no alias supplied a value
func (v Value) IsMissing() bool {
	return !v.present
}

// Raw returns the underlying decoded value, nil when missing
func (v Value) Raw() any {
	return v.raw
}

// Text returns the scalar rendered as text. Composite and missing values report false.
func (v Value) Text() (string, bool) {
	if !v.present {
		return "", false
	}
	switch t := v.raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// String returns Text with surrounding space trimmed, or "" when unavailable
func (v Value) String() string {
	s, _ := v.Text()
	return strings.TrimSpace(s)
}

// Decimal interprets the value as an amount. Numeric strings are accepted.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if !v.present {
		return dec.Zero, false
	}
	switch t := v.raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		return dec.ParseAmount(t)
	default:
		return dec.Zero, false
	}
}

// Bool returns the value when it is a JSON boolean
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, v.present && ok
}

// Items flattens the value into an ordered list.
// Lists drop null and empty-string entries, other present scalars become a
// single item, and missing or empty-string values become an empty list.
func (v Value) Items() []Value {
	if !v.present {
		return nil
	}
	switch t := v.raw.(type) {
	case []any:
		items := make([]Value, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			if s, ok := e.(string); ok && s == "" {
				continue
			}
			items = append(items, ValueOf(e))
		}
		return items
	case string:
		if t == "" {
			return nil
		}
	}
	return []Value{v}
}

// Get looks a key up in an object value. Null members are missing.
func (v Value) Get(key string) Value {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}
	}
	return ValueOf(m[key])
}

// Path follows nested object keys
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if cur.IsMissing() {
			return cur
		}
	}
	return cur
}

// Coalesce returns the first present value, or missing
func Coalesce(values ...Value) Value {
	for _, v := range values {
		if v.present {
			return v
		}
	}
	return Value{}
}

// MarshalJSON writes null for the missing marker
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// UnmarshalJSON treats null as missing and keeps numbers exact
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	d := json.NewDecoder(strings.NewReader(string(data)))
	d.UseNumber()
	if err := d.Decode(&raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

func optionalDecimal(v Value) *decimal.Decimal {
	d, ok := v.Decimal()
	if !ok {
		return nil
	}
	return &d
}
