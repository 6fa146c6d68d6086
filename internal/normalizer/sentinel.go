package normalizer

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	sentinelKey = "__ocr_error__"
	logIDKey    = "__ocr_log_id__"
)

var logIDPaths = []string{"raw_ocr.log_id", "ocr_debug.log_id"}

// UpstreamFailure reports the OCR failure text embedded in an otherwise
// well-formed response, together with the upstream trace id if one was sent.
func UpstreamFailure(raw RawResponse) (text, logID string, ok bool) {
	return defaultNormalizer.UpstreamFailure(raw)
}

// UpstreamFailure reports the OCR failure sentinel using n's group aliases
func (n *Normalizer) UpstreamFailure(raw RawResponse) (text, logID string, ok bool) {
	root := gjson.ParseBytes(raw)
	group := selectGroup(root, n.groups[GroupInvoice])
	if !group.IsObject() {
		return "", "", false
	}

	s := group.Get(sentinelKey)
	if !present(s) || s.Type == gjson.False {
		return "", "", false
	}
	text = strings.TrimSpace(s.String())
	if s.Type == gjson.JSON {
		text = strings.TrimSpace(s.Raw)
	}
	if text == "" {
		return "", "", false
	}

	for _, p := range logIDPaths {
		if id := strings.TrimSpace(root.Get(p).String()); id != "" {
			return text, id, true
		}
	}
	return text, strings.TrimSpace(group.Get(logIDKey).String()), true
}
