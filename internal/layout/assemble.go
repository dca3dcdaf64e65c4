package layout

import (
	"errors"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/css"
	"github.com/alnah/go-cv2pdf/internal/render"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// ErrNilContent is returned when there is nothing to assemble.
var ErrNilContent = errors.New("content is nil")

// Documents are the three standalone HTML documents of one export.
type Documents struct {
	Sidebar    string
	Main       string
	Background string

	// SidebarEmpty and MainEmpty report a column with nothing to print.
	// Such a column is not rendered and contributes no pages.
	SidebarEmpty bool
	MainEmpty    bool
}

// Options maps a theme onto renderer flags.
func Options(th *theme.Config, pagination bool) render.Options {
	opts := render.Options{
		Pagination:     pagination,
		Layout:         render.Vertical,
		SkillStyle:     render.Pill,
		SkillSeparator: th.SkillSeparator(),
	}
	if th.ContactLayout() == theme.LayoutHorizontal {
		opts.Layout = render.Horizontal
	}
	if th.SkillStyle() == theme.SkillInline {
		opts.SkillStyle = render.Inline
	}
	return opts
}

// Assemble builds the sidebar, main and background documents. photo is an
// image source (normally a data URI) or "" for none. A nil theme uses the
// stock look.
func Assemble(c *content.Content, th *theme.Config, photo string) (*Documents, error) {
	if c == nil {
		return nil, ErrNilContent
	}
	if th == nil {
		th = theme.Default()
	}
	opts := Options(th, true)
	cols := Split(c.Sections)
	vars := css.Variables(th.Variables())
	orphans, widows := th.OrphansWidows()
	custom := th.Advanced.CustomCSS

	sidebarBody := sidebarColumn(c.Frontmatter, cols.Sidebar, photo, opts)
	mainBody := mainColumn(c.Frontmatter, cols.Main, opts)

	docs := &Documents{
		SidebarEmpty: sidebarBody == "",
		MainEmpty:    mainBody == "",
	}

	title := c.Frontmatter.Name
	links := th.FontLinks()

	columnCSS := func(col css.Column) string {
		return css.Compose(
			css.Base(), css.Photo(), css.Contact(), css.NameHeader(), css.Core(),
			css.SectionHeaderSkin(), css.PageGeometry(col), css.Pagination(orphans, widows),
			vars, custom,
		)
	}

	docs.Sidebar = page(title, links, columnCSS(Sidebar), "cv-doc cv-doc-sidebar",
		`<div class="cv-column cv-sidebar">`+sidebarBody+`</div>`)
	docs.Main = page(title, links, columnCSS(Main), "cv-doc cv-doc-main",
		`<div class="cv-column cv-main">`+mainBody+`</div>`)

	sidebarColor, mainColor := th.ColumnColors()
	docs.Background = page(title, nil, css.FixedBackground(sidebarColor, mainColor), "cv-doc cv-doc-background",
		`<div class="cv-bg cv-bg-sidebar"></div><div class="cv-bg cv-bg-main"></div>`)

	return docs, nil
}

// Preview builds the single on-screen document with both columns side by
// side. It uses the same renderers with pagination off.
func Preview(c *content.Content, th *theme.Config, photo string) (string, error) {
	if c == nil {
		return "", ErrNilContent
	}
	if th == nil {
		th = theme.Default()
	}
	opts := Options(th, false)
	cols := Split(c.Sections)

	style := css.Compose(
		css.Base(), css.Photo(), css.Contact(), css.NameHeader(), css.Core(),
		css.SectionHeaderSkin(), css.Preview(),
		css.Variables(th.Variables()), th.Advanced.CustomCSS,
	)
	body := `<div class="cv-preview">` +
		`<aside class="cv-column cv-sidebar">` + sidebarColumn(c.Frontmatter, cols.Sidebar, photo, opts) + `</aside>` +
		`<main class="cv-column cv-main">` + mainColumn(c.Frontmatter, cols.Main, opts) + `</main>` +
		`</div>`
	return page(c.Frontmatter.Name, th.FontLinks(), style, "cv-doc cv-doc-preview", body), nil
}

func sidebarColumn(fm content.Frontmatter, sections []content.Section, photo string, opts render.Options) string {
	var b strings.Builder
	alt := fm.Name
	if alt == "" {
		alt = "Photo"
	}
	b.WriteString(render.Photo(photo, alt))
	if opts.Layout == render.Vertical {
		b.WriteString(render.Contact(fm, opts))
	}
	for _, sec := range sections {
		b.WriteString(render.Section(sec, Classify(sec).Kind, opts))
	}
	return b.String()
}

func mainColumn(fm content.Frontmatter, sections []content.Section, opts render.Options) string {
	var b strings.Builder
	b.WriteString(render.Header(fm, opts))
	for _, sec := range sections {
		b.WriteString(render.Section(sec, Classify(sec).Kind, opts))
	}
	return b.String()
}

// page wraps a body fragment into a standalone HTML document.
func page(title string, fontLinks []string, style, bodyClass, body string) string {
	if title == "" {
		title = "CV"
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + render.Escape(title) + "</title>\n")
	if len(fontLinks) > 0 {
		b.WriteString(`<link rel="preconnect" href="https://fonts.googleapis.com">` + "\n")
		b.WriteString(`<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>` + "\n")
		for _, href := range fontLinks {
			b.WriteString(`<link rel="stylesheet" href="` + render.Escape(href) + `">` + "\n")
		}
	}
	b.WriteString("<style>\n" + css.SanitizeCSS(style) + "</style>\n</head>\n")
	b.WriteString(`<body class="` + bodyClass + `">` + "\n" + body + "\n</body>\n</html>\n")
	return b.String()
}
