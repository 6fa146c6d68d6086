package normalizer

import (
	"bytes"

	"github.com/tidwall/gjson"

	"github.com/rezonia/reimburse-report/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawResponse is an analysis result that has been checked to be a JSON object.
// It is never modified after Parse.
type RawResponse []byte

// Parse validates that data is a single JSON object
func Parse(data []byte) (RawResponse, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return nil, model.NewFormatError("empty response body", nil)
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, model.NewFormatError("response is not valid JSON", nil)
	}
	if trimmed[0] != '{' {
		return nil, model.NewFormatError("response is not a JSON object", nil)
	}
	raw := make(RawResponse, len(trimmed))
	copy(raw, trimmed)
	return raw, nil
}

// Get returns the value at a gjson path, for diagnostics
func (r RawResponse) Get(path string) gjson.Result {
	return gjson.GetBytes(r, path)
}
