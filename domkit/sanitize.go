package domkit

import "strings"

// urlAttrs is the set of element attributes that accept a URL and must
// therefore be passed through SanitizeURL before reaching the DOM
//.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"xlink:href": true,
}

// IsURLAttribute reports whether name is one of the attributes the
// builder must sanitize before assignment.
func IsURLAttribute(name string) bool {
	return urlAttrs[strings.ToLower(name)]
}

// deniedSchemes are rejected outright regardless of case or surrounding
// whitespace/control characters, which browsers strip before parsing a
// URL's scheme.
var deniedSchemes = []string{"javascript:", "vbscript:", "data:text/html"}

// SanitizeURL rejects scheme-based script injection vectors while
// allowing ordinary navigation targets: http(s), mailto, tel, and
// relative paths. A rejected value is replaced with "about:blank" so a
// bad URL fails safe instead of disappearing silently.
func SanitizeURL(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(stripControlChars(raw)))
	for _, scheme := range deniedSchemes {
		if strings.HasPrefix(normalized, scheme) {
			return "about:blank"
		}
	}
	return raw
}

func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0x1f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
