// Package layout decides where CV sections go and assembles the standalone
// HTML documents rendered by the browser.
package layout

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/css"
	"github.com/alnah/go-cv2pdf/internal/render"
)

// Column aliases.
const (
	Sidebar = css.Sidebar
	Main    = css.Main
)

// SidebarKeywords route a section to the sidebar when its type equals one of
// them or its title contains one, case-insensitively.
var SidebarKeywords = []string{"skills", "languages", "interests", "tools", "certifications"}

// skillsKeyword marks a section for skills rendering when found in its title.
const skillsKeyword = "skill"

// Placement is the classification of one section.
type Placement struct {
	Column css.Column
	Kind   render.Kind
}

// Classify is the single place where section types and titles are matched.
//
// The title match is a plain substring test: a main-column section titled
// "Tools of the Trade" lands in the sidebar. This is a known limitation kept
// for parity with existing CVs.
func Classify(sec content.Section) Placement {
	typ := strings.TrimSpace(sec.Type)
	title := strings.ToLower(sec.Title)

	p := Placement{Column: Main, Kind: render.KindGeneric}
	for _, kw := range SidebarKeywords {
		if typ == kw || strings.Contains(title, kw) {
			p.Column = Sidebar
			break
		}
	}
	if typ == "skills" || strings.Contains(title, skillsKeyword) {
		p.Kind = render.KindSkills
	}
	return p
}

// Columns holds the sections of each column in their original order.
type Columns struct {
	Sidebar []content.Section
	Main    []content.Section
}

// Split partitions sections by Classify. Every section lands in exactly one
// column and relative order is kept.
func Split(sections []content.Section) Columns {
	var cols Columns
	for _, sec := range sections {
		if Classify(sec).Column == Sidebar {
			cols.Sidebar = append(cols.Sidebar, sec)
		} else {
			cols.Main = append(cols.Main, sec)
		}
	}
	return cols
}
