package ocrerror

// Error codes reported by the upstream OCR service
const (
	CodeImageFormat = "216201"
	CodeDailyQuota  = "17"
	CodeQPSLimit    = "18"
)

const (
	unknownMessage  = "unknown error"
	fallbackTip     = "OCR call failed"
	unknownCodeMark = "?"
)

var tips = map[string]string{
	CodeImageFormat: "file format or encoding error: the image may be double URL-encoded after base64, or the file is damaged",
	CodeDailyQuota:  "daily request quota reached, try again tomorrow or raise the quota",
	CodeQPSLimit:    "request rate limit (QPS) exceeded, wait a moment and retry",
}

// Plain-text messages that carry no "code:" prefix but identify a known code.
// Matched case-insensitively against the start of the message, in order.
var prefixes = []struct {
	prefix string
	code   string
}{
	{"open api qps", CodeQPSLimit},
	{"open api daily request limit", CodeDailyQuota},
}

// Tip returns the remediation hint for a known code
func Tip(code string) (string, bool) {
	tip, ok := tips[code]
	return tip, ok
}

// KnownCodes lists the codes with a remediation hint
func KnownCodes() []string {
	return []string{CodeImageFormat, CodeDailyQuota, CodeQPSLimit}
}
