package render

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
)

// ParseSkillString parses "**Category:** a, b, c". The category is what
// precedes the first colon with ** markers removed; skills are the
// comma-separated remainder with ** markers stripped and empty tokens
// dropped. It returns nil when there is no colon or the category is blank.
func ParseSkillString(s string) *content.SkillCategory {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, ":")
	if idx < 0 {
		return nil
	}
	category := strings.TrimSpace(strings.ReplaceAll(s[:idx], "**", ""))
	if category == "" {
		return nil
	}

	rest := strings.ReplaceAll(s[idx+1:], "**", "")
	skills := make([]string, 0, strings.Count(rest, ",")+1)
	for _, tok := range strings.Split(rest, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			skills = append(skills, tok)
		}
	}
	return &content.SkillCategory{Category: category, Skills: skills}
}

// ParseSkillLines splits s on newlines and parses each line with
// ParseSkillString. Lines without a category are skipped.
func ParseSkillLines(s string) []content.SkillCategory {
	var out []content.SkillCategory
	for _, line := range content.SplitLines(s) {
		if c := ParseSkillString(line); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// skillBlock is either a parsed category or a line that did not parse.
type skillBlock struct {
	category *content.SkillCategory
	text     string
}

func skillBlocks(sec content.Section) []skillBlock {
	var blocks []skillBlock
	addText := func(s string) {
		for _, line := range content.SplitLines(s) {
			if c := ParseSkillString(line); c != nil {
				blocks = append(blocks, skillBlock{category: c})
			} else {
				blocks = append(blocks, skillBlock{text: line})
			}
		}
	}

	addText(sec.Text)
	for _, it := range sec.Items {
		switch it.Kind() {
		case content.KindSkill:
			c := *it.Skill
			blocks = append(blocks, skillBlock{category: &c})
		case content.KindEntry:
			blocks = append(blocks, skillBlock{category: &content.SkillCategory{
				Category: it.Entry.Title,
				Skills:   nonEmpty(it.Entry.Bullets),
			}})
		default:
			addText(it.Text)
		}
	}
	return blocks
}

// Skills renders the body of a skills section: one atomic block per
// category, drawn as pills or as an inline list.
func Skills(sec content.Section, opts Options) string {
	var b strings.Builder
	for _, blk := range skillBlocks(sec) {
		if blk.category == nil {
			b.WriteString(`<p class="cv-paragraph">` + Markup(blk.text) + `</p>`)
			continue
		}
		b.WriteString(SkillCategory(*blk.category, opts))
	}
	return b.String()
}

// SkillCategory renders one category block.
func SkillCategory(c content.SkillCategory, opts Options) string {
	skills := nonEmpty(c.Skills)

	var b strings.Builder
	b.WriteString(`<div class="cv-skill-category ` + ClassKeep + `">`)
	if c.Category != "" {
		b.WriteString(`<h3 class="cv-skill-category-title">` + Escape(c.Category) + `</h3>`)
	}
	if opts.SkillStyle == Inline {
		b.WriteString(`<p class="cv-skill-list cv-skill-list-inline">`)
		sep := `<span class="cv-skill-separator"> ` + Escape(opts.separator()) + ` </span>`
		for i, s := range skills {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(`<span class="cv-skill">` + Escape(s) + `</span>`)
		}
		b.WriteString(`</p>`)
	} else {
		b.WriteString(`<div class="cv-skill-list cv-skill-list-pill">`)
		for _, s := range skills {
			b.WriteString(`<span class="cv-skill-pill">` + Escape(s) + `</span>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
