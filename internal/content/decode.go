package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for content decoding.
var (
	ErrInvalidContent = errors.New("invalid section content")
	ErrInvalidItem    = errors.New("invalid content item")
)

// rawSection mirrors the wire form of a section, where content is either a
// string or a list of strings, entry mappings and skill mappings.
type rawSection struct {
	Type    string `yaml:"type" json:"type"`
	Title   string `yaml:"title" json:"title"`
	Content any    `yaml:"content" json:"content"`
}

type rawContent struct {
	Frontmatter Frontmatter  `yaml:"frontmatter"`
	Sections    []rawSection `yaml:"sections"`
}

// Decode parses a YAML or JSON document into Content.
// JSON is accepted because it is a subset of YAML.
func Decode(data []byte) (*Content, error) {
	var raw rawContent
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	c := &Content{Frontmatter: raw.Frontmatter, Sections: make([]Section, len(raw.Sections))}
	for i, rs := range raw.Sections {
		if err := c.Sections[i].fromRaw(rs); err != nil {
			return nil, fmt.Errorf("decoding content: %w", err)
		}
	}
	return c, nil
}

// UnmarshalJSON decodes a section from its wire form.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw rawSection
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.fromRaw(raw)
}

// MarshalJSON encodes a section back to its wire form.
func (s Section) MarshalJSON() ([]byte, error) {
	raw := rawSection{Type: s.Type, Title: s.Title}
	switch {
	case len(s.Items) > 0:
		items := make([]any, 0, len(s.Items))
		for _, it := range s.Items {
			switch it.Kind() {
			case KindEntry:
				items = append(items, it.Entry)
			case KindSkill:
				items = append(items, it.Skill)
			default:
				items = append(items, it.Text)
			}
		}
		raw.Content = items
	case s.Text != "":
		raw.Content = s.Text
	}
	return json.Marshal(raw)
}

func (s *Section) fromRaw(raw rawSection) error {
	s.Type = raw.Type
	s.Title = raw.Title
	s.Text = ""
	s.Items = nil

	switch v := raw.Content.(type) {
	case nil:
		return nil
	case string:
		s.Text = v
		return nil
	case []any:
		items := make([]Item, 0, len(v))
		for i, elem := range v {
			item, err := decodeItem(elem)
			if err != nil {
				return fmt.Errorf("section %q item %d: %w", raw.Title, i, err)
			}
			items = append(items, item)
		}
		s.Items = items
		return nil
	default:
		return fmt.Errorf("%w: section %q has content of type %T", ErrInvalidContent, raw.Title, raw.Content)
	}
}

func decodeItem(elem any) (Item, error) {
	switch v := elem.(type) {
	case string:
		return TextItem(v), nil
	case map[string]any:
		return decodeMapItem(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return decodeMapItem(m)
	case nil:
		return Item{}, fmt.Errorf("%w: null", ErrInvalidItem)
	default:
		// Scalars such as bare years are kept as text.
		return TextItem(fmt.Sprint(v)), nil
	}
}

func decodeMapItem(m map[string]any) (Item, error) {
	if _, ok := m["category"]; ok {
		return SkillItem(SkillCategory{
			Category: scalar(m["category"]),
			Skills:   stringList(m["skills"]),
		}), nil
	}
	if _, ok := m["title"]; !ok {
		return Item{}, fmt.Errorf("%w: mapping without title or category (keys: %s)", ErrInvalidItem, keys(m))
	}
	return EntryItem(Entry{
		Title:       scalar(m["title"]),
		Company:     scalar(m["company"]),
		Date:        scalar(m["date"]),
		Location:    scalar(m["location"]),
		Description: scalar(m["description"]),
		Bullets:     stringList(m["bullets"]),
	}), nil
}

// scalar stringifies a decoded scalar. Numbers like `date: 2021` arrive as
// integers and must render as text.
func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s := strings.TrimSpace(scalar(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return l
	case string:
		return SplitLines(l)
	default:
		return nil
	}
}

func keys(m map[string]any) string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return strings.Join(ks, ", ")
}
