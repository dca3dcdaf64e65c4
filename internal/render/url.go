package render

import (
	"regexp"
	"strings"
	"unicode"
)

// InertHref replaces rejected link targets.
const InertHref = "#"

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

var dataImagePattern = regexp.MustCompile(`^data:image/(png|jpe?g|gif|webp)[;,]`)

// normalize strips whitespace and control characters and lower-cases u, the
// way browsers do before they look at a scheme.
func normalize(u string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, u)
}

// scheme returns the explicit scheme of a normalized URL, or "" for relative
// and protocol-relative URLs.
func scheme(norm string) string {
	i := strings.IndexAny(norm, ":/?#")
	if i <= 0 || norm[i] != ':' {
		return ""
	}
	return norm[:i]
}

// SanitizeURL returns u unchanged when it is safe for an href, InertHref
// otherwise. http, https, mailto, tel, relative and protocol-relative URLs
// pass; javascript:, vbscript:, data: and any other scheme are rejected.
func SanitizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	s := scheme(normalize(u))
	if s == "" || allowedSchemes[s] {
		return u
	}
	return InertHref
}

// SanitizeImageSource is SanitizeURL for img src attributes. It also admits
// inlined data:image URIs and returns "" for anything rejected.
func SanitizeImageSource(u string) string {
	u = strings.TrimSpace(u)
	norm := normalize(u)
	if dataImagePattern.MatchString(norm) {
		return u
	}
	switch scheme(norm) {
	case "", "http", "https":
		return u
	}
	return ""
}
