// Package content defines the parsed CV model consumed by the rendering pipeline.
//
// The model is produced once (by a decoder or the markdown parser) and treated
// as read-only afterwards. Section order is significant and preserved.
package content

import "strings"

// Content is a parsed CV: frontmatter plus ordered sections.
type Content struct {
	Frontmatter Frontmatter `yaml:"frontmatter" json:"frontmatter"`
	Sections    []Section   `yaml:"sections" json:"sections"`
}

// Frontmatter holds the identity and contact fields of a CV.
type Frontmatter struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	Website  string `yaml:"website,omitempty" json:"website,omitempty"`
	Photo    string `yaml:"photo,omitempty" json:"photo,omitempty"`
}

// HasContact reports whether any contact field is set.
func (f Frontmatter) HasContact() bool {
	return f.Email != "" || f.Phone != "" || f.Location != "" ||
		f.LinkedIn != "" || f.GitHub != "" || f.Website != ""
}

// Section is one titled block of a CV. Type is a free-form tag used only for
// rendering decisions. Exactly one of Text or Items is normally set.
type Section struct {
	Type  string
	Title string
	Text  string
	Items []Item
}

// IsEmpty reports whether the section carries no content besides its title.
func (s Section) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == "" && len(s.Items) == 0
}

// ItemKind tags the variant held by an Item.
type ItemKind int

// Item kinds.
const (
	KindText ItemKind = iota
	KindEntry
	KindSkill
)

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindSkill:
		return "skill"
	default:
		return "text"
	}
}

// Item is one element of list content: a plain string, a structured entry,
// or a skill category.
type Item struct {
	Text  string
	Entry *Entry
	Skill *SkillCategory
}

// Kind returns the variant tag of the item.
func (i Item) Kind() ItemKind {
	switch {
	case i.Entry != nil:
		return KindEntry
	case i.Skill != nil:
		return KindSkill
	default:
		return KindText
	}
}

// TextItem builds a plain-text item.
func TextItem(s string) Item { return Item{Text: s} }

// EntryItem builds a structured entry item.
func EntryItem(e Entry) Item { return Item{Entry: &e} }

// SkillItem builds a skill category item.
func SkillItem(c SkillCategory) Item { return Item{Skill: &c} }

// Entry is a job, degree or project.
type Entry struct {
	Title       string   `yaml:"title" json:"title"`
	Company     string   `yaml:"company,omitempty" json:"company,omitempty"`
	Date        string   `yaml:"date,omitempty" json:"date,omitempty"`
	Location    string   `yaml:"location,omitempty" json:"location,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Bullets     []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// Paragraphs splits the description into its non-blank lines.
func (e Entry) Paragraphs() []string {
	return SplitLines(e.Description)
}

// SkillCategory is a named group of skills.
type SkillCategory struct {
	Category string   `yaml:"category" json:"category"`
	Skills   []string `yaml:"skills" json:"skills"`
}

// SplitLines splits s on newlines and drops blank lines. Surrounding
// whitespace of each line is trimmed.
func SplitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
