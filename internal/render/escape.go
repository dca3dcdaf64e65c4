// Package render maps CV content onto semantic HTML fragments.
//
// The same fragments feed the web preview and the three PDF documents, so
// markup only differs where options say it must. Every piece of user text
// passes through Escape exactly once before it reaches a template.
package render

import (
	"html"
	"regexp"
	"strings"
)

// Escape HTML-escapes s (& < > " ').
func Escape(s string) string {
	return html.EscapeString(s)
}

var (
	strongPattern = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	emPattern     = regexp.MustCompile(`\*([^*\s][^*]*?)\*`)
)

// Markup escapes s, then turns **bold** and *italic* markers into
// <strong> and <em>. Markers never match inside escaped entities since
// escaping does not produce asterisks.
func Markup(s string) string {
	out := Escape(strings.TrimSpace(s))
	out = strongPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = emPattern.ReplaceAllString(out, "<em>$1</em>")
	return out
}

// attr renders a name="value" attribute with an escaped value.
func attr(name, value string) string {
	return " " + name + `="` + Escape(value) + `"`
}

// classSlug reduces a free-form type tag to [a-z0-9-].
func classSlug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
