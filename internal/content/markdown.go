package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrMarkdownParse indicates a markdown CV could not be parsed.
var ErrMarkdownParse = errors.New("markdown CV parse failed")

// metaSeparator splits the metadata line under an entry heading:
// "Company | Date | Location".
const metaSeparator = "|"

// ParseMarkdown parses a markdown CV into Content.
//
// Layout: optional YAML frontmatter, then one "##" heading per section.
// Inside a section, "###" headings open entries whose first paragraph may be a
// "Company | Date | Location" line; later paragraphs form the description and
// lists form the bullets. Sections without entries keep their paragraphs as
// text and their list items as text items. Source text is kept verbatim, so
// emphasis markers such as "**Languages:**" survive for the renderers.
func ParseMarkdown(src []byte) (*Content, error) {
	var c Content
	body, err := frontmatter.Parse(bytes.NewReader(src), &c.Frontmatter)
	if err != nil {
		return nil, fmt.Errorf("%w: frontmatter: %v", ErrMarkdownParse, err)
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	p := mdParser{src: body}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.visit(n)
	}
	p.flushSection()
	c.Sections = p.sections
	return &c, nil
}

// mdParser accumulates sections while walking top-level blocks.
type mdParser struct {
	src      []byte
	sections []Section

	cur        *Section
	paragraphs []string
	items      []Item

	entry     *Entry
	entryMeta bool // true once the line after the entry heading was inspected
}

func (p *mdParser) visit(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		title := p.lines(node)
		switch {
		case node.Level <= 2:
			p.flushSection()
			p.cur = &Section{Type: sectionType(title), Title: title}
		case node.Level == 3 && p.cur != nil:
			p.flushEntry()
			p.entry = &Entry{Title: title}
			p.entryMeta = false
		}
	case *ast.Paragraph:
		if p.cur == nil {
			return
		}
		para := p.lines(node)
		if p.entry != nil {
			if !p.entryMeta {
				p.entryMeta = true
				if strings.Contains(para, metaSeparator) {
					p.applyMeta(para)
					return
				}
			}
			p.entry.Description = joinNonEmpty(p.entry.Description, para)
			return
		}
		p.paragraphs = append(p.paragraphs, para)
	case *ast.List:
		if p.cur == nil {
			return
		}
		for li := node.FirstChild(); li != nil; li = li.NextSibling() {
			item := p.listItem(li)
			if item == "" {
				continue
			}
			if p.entry != nil {
				p.entryMeta = true
				p.entry.Bullets = append(p.entry.Bullets, item)
			} else {
				p.items = append(p.items, TextItem(item))
			}
		}
	}
}

func (p *mdParser) applyMeta(line string) {
	parts := strings.Split(line, metaSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 0 {
		p.entry.Company = parts[0]
	}
	if len(parts) > 1 {
		p.entry.Date = parts[1]
	}
	if len(parts) > 2 {
		p.entry.Location = strings.Join(parts[2:], " | ")
	}
}

func (p *mdParser) flushEntry() {
	if p.entry == nil {
		return
	}
	p.items = append(p.items, EntryItem(*p.entry))
	p.entry = nil
}

func (p *mdParser) flushSection() {
	if p.cur == nil {
		return
	}
	p.flushEntry()
	if len(p.items) > 0 {
		// Loose paragraphs next to a list become text items, in order of
		// appearance relative to each other.
		lead := make([]Item, 0, len(p.paragraphs)+len(p.items))
		for _, para := range p.paragraphs {
			lead = append(lead, TextItem(para))
		}
		p.cur.Items = append(lead, p.items...)
	} else if len(p.paragraphs) > 0 {
		p.cur.Text = strings.Join(p.paragraphs, "\n")
	}
	p.sections = append(p.sections, *p.cur)
	p.cur = nil
	p.paragraphs = nil
	p.items = nil
}

// lines returns the raw source text of a block, one line per segment.
func (p *mdParser) lines(n ast.Node) string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		if l := strings.TrimSpace(string(seg.Value(p.src))); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func (p *mdParser) listItem(li ast.Node) string {
	var parts []string
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if s := p.lines(c); s != "" {
				parts = append(parts, strings.ReplaceAll(s, "\n", " "))
			}
		}
	}
	return strings.Join(parts, " ")
}

// sectionType derives the free-form type tag from a heading:
// "Work Experience" becomes "work-experience".
func sectionType(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}
