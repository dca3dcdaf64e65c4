package theme

import (
	"net/url"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/css"
)

const webFontBase = "https://fonts.googleapis.com/css2"

// systemFonts are available without a download. Keys are lower case.
var systemFonts = map[string]string{
	"arial":           "sans-serif",
	"helvetica":       "sans-serif",
	"verdana":         "sans-serif",
	"tahoma":          "sans-serif",
	"trebuchet ms":    "sans-serif",
	"system-ui":       "sans-serif",
	"sans-serif":      "sans-serif",
	"georgia":         "serif",
	"times new roman": "serif",
	"garamond":        "serif",
	"serif":           "serif",
	"courier new":     "monospace",
	"monospace":       "monospace",
}

// serifWebFonts lists common web fonts whose fallback should be serif.
var serifWebFonts = map[string]bool{
	"merriweather":      true,
	"playfair display":  true,
	"lora":              true,
	"libre baskerville": true,
	"eb garamond":       true,
	"crimson text":      true,
	"pt serif":          true,
	"source serif 4":    true,
}

// IsSystemFont reports whether name needs no web font download.
func IsSystemFont(name string) bool {
	_, ok := systemFonts[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// FontStack returns a CSS font-family value for name with a generic fallback.
func FontStack(name string) string {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	if generic, ok := systemFonts[key]; ok {
		if key == generic || key == "system-ui" {
			return name
		}
		return quote(name) + ", " + generic
	}
	if serifWebFonts[key] {
		return quote(name) + ", Georgia, serif"
	}
	return quote(name) + ", system-ui, sans-serif"
}

func quote(name string) string {
	return `"` + css.EscapeCSSString(name) + `"`
}

func webFontURL(name string) string {
	return webFontBase + "?family=" + url.QueryEscape(name) + ":wght@400;600;700&display=swap"
}
