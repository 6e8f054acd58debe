package browser

import "unicode/utf8"

// Capture limits bound every payload a workflow result can carry so the
// output stays consumable by callers that cannot accept unbounded text.
const (
	// MaxSnapshotLength is the default character bound for captured page HTML
	MaxSnapshotLength = 5000

	// MaxRequests bounds the network request log
	MaxRequests = 50

	// MaxJSResultLength bounds serialized JavaScript evaluation results
	MaxJSResultLength = 2000

	// MaxURLLength bounds stored request URLs; the truncated URL is also
	// the request/response correlation key
	MaxURLLength = 200

	// MaxErrorLength bounds user-visible error messages
	MaxErrorLength = 500

	// ScreenshotQuality is the JPEG quality for screenshots
	ScreenshotQuality = 70
)

// Truncate bounds s to limit characters and reports whether anything was
// cut. Limits are counted in runes, not bytes, so truncated output is
// always valid UTF-8.
func Truncate(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:limit]), true
}

// TruncateURL bounds a URL to MaxURLLength characters.
func TruncateURL(url string) string {
	truncated, _ := Truncate(url, MaxURLLength)
	return truncated
}

// Length counts characters the same way the truncation limits do.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
