package render

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
)

// Kind selects how a section body is rendered.
type Kind int

const (
	// KindGeneric renders paragraphs, lists and entries.
	KindGeneric Kind = iota
	// KindSkills renders skill categories.
	KindSkills
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindSkills {
		return "skills"
	}
	return "generic"
}

// Section renders a titled section. A section without content renders as a
// bare header.
func Section(sec content.Section, kind Kind, opts Options) string {
	var b strings.Builder
	class := "cv-section"
	if slug := classSlug(sec.Type); slug != "" {
		class += " cv-section-" + slug
	}
	empty := sec.IsEmpty()
	if empty {
		class += " cv-section-empty"
	}
	b.WriteString(`<section class="` + class + `">`)
	if sec.Title != "" {
		b.WriteString(`<h2 class="cv-section-title">` + Escape(sec.Title) + `</h2>`)
	}
	if empty {
		b.WriteString(`</section>`)
		return b.String()
	}
	b.WriteString(`<div class="cv-section-body">`)
	if kind == KindSkills {
		b.WriteString(Skills(sec, opts))
	} else {
		b.WriteString(sectionBody(sec, opts))
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

func sectionBody(sec content.Section, opts Options) string {
	var b strings.Builder
	for _, p := range content.SplitLines(sec.Text) {
		b.WriteString(`<p class="cv-paragraph">` + Markup(p) + `</p>`)
	}

	inList := false
	closeList := func() {
		if inList {
			b.WriteString(`</ul>`)
			inList = false
		}
	}
	for _, it := range sec.Items {
		switch it.Kind() {
		case content.KindEntry:
			closeList()
			b.WriteString(Entry(*it.Entry, opts))
		case content.KindSkill:
			closeList()
			b.WriteString(SkillCategory(*it.Skill, opts))
		default:
			if strings.TrimSpace(it.Text) == "" {
				continue
			}
			if !inList {
				b.WriteString(`<ul class="cv-list">`)
				inList = true
			}
			b.WriteString(`<li class="` + ClassKeepWhole + `">` + Markup(it.Text) + `</li>`)
		}
	}
	closeList()
	return b.String()
}
