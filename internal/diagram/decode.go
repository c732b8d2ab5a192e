// Package diagram renders embedded diagram payloads into inline SVG with
// theme-aware palettes.
package diagram

import (
	"encoding/base64"
	"html"
	"strings"
	"unicode/utf8"
)

// DecodePayload recovers diagram source from a placeholder attribute. The
// preferred encoding is standard base64; anything that does not decode to
// valid UTF-8 is treated as HTML-entity-escaped literal text instead.
func DecodePayload(payload string) string {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return ""
	}
	if decoded, err := base64.StdEncoding.DecodeString(payload); err == nil && utf8.Valid(decoded) {
		return normalize(string(decoded))
	}
	return normalize(html.UnescapeString(payload))
}

// normalize turns escaped newline sequences into real newlines and strips
// carriage returns, so sources authored on any platform render the same.
func normalize(source string) string {
	source = strings.ReplaceAll(source, `\n`, "\n")
	source = strings.ReplaceAll(source, "\r", "")
	return strings.TrimSpace(source)
}
