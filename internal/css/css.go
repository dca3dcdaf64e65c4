// Package css builds the stylesheets of the CV documents.
//
// Each function returns the CSS for one concern and has no side effects.
// Stylesheets are composed by concatenation; later rules override earlier
// ones through specificity only. Themeable values are read from --cv-*
// custom properties with built-in fallbacks, so a partial or empty theme
// still renders.
package css

import (
	"sort"
	"strings"
)

// Page geometry in millimetres.
const (
	PageWidthMM    = 210
	PageHeightMM   = 297
	SidebarWidthMM = 84
	MainWidthMM    = PageWidthMM - SidebarWidthMM
)

// MinOrphans is the lowest orphans/widows value Pagination emits.
const MinOrphans = 2

// Compose concatenates stylesheet parts, skipping empty ones.
func Compose(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// Variables renders a :root block declaring vars, sorted by name. Names
// must start with "--"; others are skipped.
func Variables(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		if strings.HasPrefix(name, "--") && isIdent(name[2:]) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		v := Value(vars[name])
		if v == "" {
			continue
		}
		b.WriteString("  " + name + ": " + v + ";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Value drops characters that could end a declaration or the enclosing
// block from a single property value.
func Value(v string) string {
	return strings.TrimSpace(valueReplacer.Replace(v))
}

var valueReplacer = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "", "\\", "", "\n", " ", "\r", "")

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// SanitizeCSS escapes sequences that could close the enclosing <style>
// element.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// EscapeCSSString escapes s for use inside a double-quoted CSS string.
func EscapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
