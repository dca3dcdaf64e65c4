package render

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
)

// Pagination group classes. Start and bridge groups never split across a
// page; middle and rest groups flow, but each rest bullet stays whole.
const (
	ClassEntryStart  = "cv-entry-start"
	ClassEntryMiddle = "cv-entry-middle"
	ClassEntryBridge = "cv-entry-bridge"
	ClassEntryRest   = "cv-entry-rest"
	ClassKeep        = "keep-together"
	ClassKeepWhole   = "keep-whole"
)

// leadParagraphs is how many description paragraphs stay with the heading.
const leadParagraphs = 2

// EntryGroups is the pagination split of an entry's description and bullets.
type EntryGroups struct {
	Start       []string // paragraphs kept with the heading
	Middle      []string // freely flowing paragraphs
	BridgeLead  string   // last paragraph glued to the first bullet, if any
	FirstBullet string
	HasBullet   bool
	Rest        []string // bullets after the first
}

// SplitEntry computes the pagination groups of e. With N paragraphs the start
// holds the first min(2, N); when N > 2 the last paragraph joins the first
// bullet, and paragraphs in between form the middle group.
func SplitEntry(e content.Entry) EntryGroups {
	paras := e.Paragraphs()
	n := len(paras)

	var g EntryGroups
	g.Start = paras[:min(leadParagraphs, n)]
	if n > leadParagraphs {
		g.Middle = paras[leadParagraphs : n-1]
		g.BridgeLead = paras[n-1]
	}

	bullets := nonEmpty(e.Bullets)
	if len(bullets) > 0 {
		g.FirstBullet = bullets[0]
		g.HasBullet = true
		g.Rest = bullets[1:]
	}
	return g
}

// Entry renders one structured entry. In pagination mode the entry is split
// into start, middle, bridge and rest groups.
func Entry(e content.Entry, opts Options) string {
	var b strings.Builder
	if !opts.Pagination {
		b.WriteString(`<article class="cv-entry">`)
		b.WriteString(entryHeading(e))
		if paras := e.Paragraphs(); len(paras) > 0 {
			b.WriteString(`<div class="cv-entry-description">`)
			writeParagraphs(&b, paras)
			b.WriteString(`</div>`)
		}
		if bullets := nonEmpty(e.Bullets); len(bullets) > 0 {
			b.WriteString(`<ul class="cv-entry-bullets">`)
			writeBullets(&b, bullets, "")
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</article>`)
		return b.String()
	}

	g := SplitEntry(e)
	b.WriteString(`<article class="cv-entry cv-entry-paginated">`)

	b.WriteString(`<div class="` + ClassEntryStart + ` ` + ClassKeep + `">`)
	b.WriteString(entryHeading(e))
	writeParagraphs(&b, g.Start)
	b.WriteString(`</div>`)

	if len(g.Middle) > 0 {
		b.WriteString(`<div class="` + ClassEntryMiddle + `">`)
		writeParagraphs(&b, g.Middle)
		b.WriteString(`</div>`)
	}

	if g.BridgeLead != "" || g.HasBullet {
		b.WriteString(`<div class="` + ClassEntryBridge + ` ` + ClassKeep + `">`)
		if g.BridgeLead != "" {
			writeParagraphs(&b, []string{g.BridgeLead})
		}
		if g.HasBullet {
			b.WriteString(`<ul class="cv-entry-bullets">`)
			writeBullets(&b, []string{g.FirstBullet}, ClassKeepWhole)
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div>`)
	}

	if len(g.Rest) > 0 {
		b.WriteString(`<ul class="cv-entry-bullets ` + ClassEntryRest + `">`)
		writeBullets(&b, g.Rest, ClassKeepWhole)
		b.WriteString(`</ul>`)
	}

	b.WriteString(`</article>`)
	return b.String()
}

func entryHeading(e content.Entry) string {
	var b strings.Builder
	b.WriteString(`<div class="cv-entry-header">`)
	b.WriteString(`<h3 class="cv-entry-title">` + Markup(e.Title) + `</h3>`)
	if e.Company != "" || e.Date != "" || e.Location != "" {
		b.WriteString(`<div class="cv-entry-meta">`)
		for _, f := range []struct{ class, value string }{
			{"cv-entry-company", e.Company},
			{"cv-entry-date", e.Date},
			{"cv-entry-location", e.Location},
		} {
			if f.value != "" {
				b.WriteString(`<span class="` + f.class + `">` + Escape(f.value) + `</span>`)
			}
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func writeParagraphs(b *strings.Builder, paras []string) {
	for _, p := range paras {
		b.WriteString(`<p class="cv-entry-paragraph">` + Markup(p) + `</p>`)
	}
}

func writeBullets(b *strings.Builder, bullets []string, class string) {
	open := `<li>`
	if class != "" {
		open = `<li class="` + class + `">`
	}
	for _, item := range bullets {
		b.WriteString(open + Markup(item) + `</li>`)
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
