package css

import (
	"fmt"
	"strings"
)

// Column identifies one of the two page regions.
type Column int

const (
	Sidebar Column = iota
	Main
)

// String returns the column name.
func (c Column) String() string {
	if c == Sidebar {
		return "sidebar"
	}
	return "main"
}

// pageRule pins every document to one A4 page size with no print margin.
// Margins are padding on the column box, cloned onto each page fragment.
const pageRule = `@page {
  size: 210mm 297mm;
  margin: 0;
}
html, body {
  width: 210mm;
  background: transparent;
}
`

// PageGeometry places a column document's content inside its region of the
// page. The rest of the page stays transparent so layers can be stacked.
func PageGeometry(col Column) string {
	var box string
	if col == Sidebar {
		box = fmt.Sprintf(`.cv-column {
  width: %dmm;
  margin-left: 0;
  padding: var(--cv-page-padding, 14mm) var(--cv-sidebar-padding, 8mm);
}
`, SidebarWidthMM)
	} else {
		box = fmt.Sprintf(`.cv-column {
  width: %dmm;
  margin-left: %dmm;
  padding: var(--cv-page-padding, 14mm) var(--cv-page-padding, 12mm);
}
`, MainWidthMM, SidebarWidthMM)
	}
	return "/* Page geometry: " + col.String() + " */\n" + pageRule + box + `.cv-column {
  -webkit-box-decoration-break: clone;
  box-decoration-break: clone;
  overflow-wrap: break-word;
}
`
}

// FixedBackground paints the two full-height column backgrounds of a single
// page. The colours are passed in rather than read from the theme.
func FixedBackground(sidebarColor, mainColor string) string {
	return fmt.Sprintf(`/* Fixed background */
%shtml, body {
  height: 297mm;
  overflow: hidden;
}
.cv-bg {
  position: fixed;
  top: 0;
  height: %dmm;
}
.cv-bg-sidebar {
  left: 0;
  width: %dmm;
  background: %s;
}
.cv-bg-main {
  left: %dmm;
  width: %dmm;
  background: %s;
}
`, pageRule, PageHeightMM, SidebarWidthMM, colorOr(sidebarColor, "#f3f4f6"),
		SidebarWidthMM, MainWidthMM, colorOr(mainColor, "#ffffff"))
}

func colorOr(c, fallback string) string {
	if c = Value(c); c == "" || strings.ContainsAny(c, `"'`) {
		return fallback
	}
	return c
}

// Pagination holds the break rules for print. orphans and widows below
// MinOrphans are raised to it.
func Pagination(orphans, widows int) string {
	orphans = max(orphans, MinOrphans)
	widows = max(widows, MinOrphans)
	return fmt.Sprintf(`/* Pagination */
h1, h2, h3,
.cv-section-title,
.cv-entry-title,
.cv-skill-category-title {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
p, li {
  orphans: %d;
  widows: %d;
}
.keep-together,
.keep-whole {
  break-inside: avoid;
  page-break-inside: avoid;
}
.cv-entry-paginated,
.cv-entry-middle,
.cv-entry-rest {
  break-inside: auto;
  page-break-inside: auto;
}
.cv-entry-start {
  break-after: auto;
}
.cv-entry-rest {
  margin-top: 0.8mm;
}
.cv-entry-bridge .cv-entry-bullets {
  margin-bottom: 0;
}
`, orphans, widows)
}

// Preview lays both columns side by side as one on-screen page.
func Preview() string {
	return fmt.Sprintf(`/* Preview */
body {
  background: #e5e7eb;
  padding: 8mm 0;
}
.cv-preview {
  display: grid;
  grid-template-columns: %dmm %dmm;
  width: %dmm;
  min-height: %dmm;
  margin: 0 auto;
  box-shadow: 0 2px 12px rgba(0, 0, 0, 0.15);
}
.cv-preview .cv-sidebar {
  background: var(--cv-color-sidebar-bg, #f3f4f6);
  padding: var(--cv-page-padding, 14mm) var(--cv-sidebar-padding, 8mm);
}
.cv-preview .cv-main {
  background: var(--cv-color-main-bg, #ffffff);
  padding: var(--cv-page-padding, 14mm) var(--cv-page-padding, 12mm);
}
@media print {
  body {
    background: transparent;
    padding: 0;
  }
  .cv-preview {
    box-shadow: none;
  }
}
`, SidebarWidthMM, MainWidthMM, PageWidthMM, PageHeightMM)
}
