// Package ocrerror turns raw upstream OCR failure text into actionable diagnostics.
package ocrerror

import (
	"fmt"
	"strings"

	"github.com/rezonia/reimburse-report/internal/model"
)

// Classify parses failure text of the form "<code>: <message>" or a known
// plain-text message. An empty text or logID means absent. Classify never panics.
func Classify(text, logID string) model.ErrorDescriptor {
	var d model.ErrorDescriptor

	raw := strings.TrimSpace(text)
	code, message := split(raw)
	if code != "" {
		d.Code = &code
	}
	d.Message = message
	if raw == "" {
		d.Message = unknownMessage
	}

	if id := strings.TrimSpace(logID); id != "" {
		d.LogID = &id
	}

	d.UserMessage = userMessage(d)
	return d
}

func split(raw string) (code, message string) {
	if idx := strings.Index(raw, ":"); idx >= 0 {
		return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:])
	}
	lower := strings.ToLower(raw)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.code, raw
		}
	}
	return "", raw
}

func userMessage(d model.ErrorDescriptor) string {
	code := unknownCodeMark
	tip := d.Message
	if d.Code != nil {
		code = *d.Code
		if t, ok := tips[code]; ok {
			tip = t
		}
	}
	if tip == "" {
		tip = fallbackTip
	}

	msg := fmt.Sprintf("OCR failed (code=%s): %s", code, tip)
	if d.LogID != nil {
		msg += "; log_id=" + *d.LogID
	}
	return msg
}
