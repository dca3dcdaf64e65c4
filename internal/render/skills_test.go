package render_test

import (
	"reflect"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/render"
)

// ---------------------------------------------------------------------------
// TestParseSkillString
// ---------------------------------------------------------------------------

func TestParseSkillString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *content.SkillCategory
	}{
		{
			name: "bold category",
			in:   "**Languages:** Python, Go, Rust",
			want: &content.SkillCategory{Category: "Languages", Skills: []string{"Python", "Go", "Rust"}},
		},
		{
			name: "plain category",
			in:   "Tools: Docker,  , Kubernetes,",
			want: &content.SkillCategory{Category: "Tools", Skills: []string{"Docker", "Kubernetes"}},
		},
		{
			name: "bold skills stripped",
			in:   "Core: **Go**, SQL",
			want: &content.SkillCategory{Category: "Core", Skills: []string{"Go", "SQL"}},
		},
		{
			name: "colon inside skills",
			in:   "Web: HTTP/2, https://x",
			want: &content.SkillCategory{Category: "Web", Skills: []string{"HTTP/2", "https://x"}},
		},
		{name: "no colon", in: "Python, Go", want: nil},
		{name: "blank category", in: "**:** Go", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render.ParseSkillString(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSkillString(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSkillLines(t *testing.T) {
	t.Parallel()

	got := render.ParseSkillLines("**Languages:** Python, Go\n\nno colon here\n**Tools:** Git\n")
	want := []content.SkillCategory{
		{Category: "Languages", Skills: []string{"Python", "Go"}},
		{Category: "Tools", Skills: []string{"Git"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSkillLines() = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestSkills - pill and inline presentations
// ---------------------------------------------------------------------------

func TestSkills(t *testing.T) {
	t.Parallel()

	sec := content.Section{
		Type:  "skills",
		Title: "Skills",
		Text:  "**Languages:** Python, Go\nSelf-taught",
		Items: []content.Item{content.SkillItem(content.SkillCategory{Category: "Tools", Skills: []string{"Git"}})},
	}

	t.Run("pill", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, render.Skills(sec, render.Options{}))
		cats := doc.Find(".cv-skill-category.keep-together")
		if cats.Length() != 2 {
			t.Fatalf("categories = %d, want 2", cats.Length())
		}
		if got := cats.First().Find("h3.cv-skill-category-title").Text(); got != "Languages" {
			t.Errorf("first category = %q", got)
		}
		var pills []string
		cats.First().Find("span.cv-skill-pill").Each(func(_ int, s *goquery.Selection) {
			pills = append(pills, s.Text())
		})
		if !reflect.DeepEqual(pills, []string{"Python", "Go"}) {
			t.Errorf("pills = %v", pills)
		}
		if doc.Find("p.cv-paragraph").Text() != "Self-taught" {
			t.Error("unparsed line should render as a paragraph")
		}
	})

	t.Run("inline", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, render.Skills(sec, render.Options{SkillStyle: render.Inline, SkillSeparator: "|"}))
		if doc.Find(".cv-skill-pill").Length() != 0 {
			t.Error("inline mode should not render pills")
		}
		list := doc.Find("p.cv-skill-list-inline").First()
		if got := list.Text(); got != "Python | Go" {
			t.Errorf("inline text = %q, want %q", got, "Python | Go")
		}
	})

	t.Run("default separator", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, render.Skills(sec, render.Options{SkillStyle: render.Inline}))
		if got := doc.Find("span.cv-skill-separator").First().Text(); got != " · " {
			t.Errorf("separator = %q", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSection
// ---------------------------------------------------------------------------

func TestSection(t *testing.T) {
	t.Parallel()

	t.Run("bare header", func(t *testing.T) {
		t.Parallel()

		for _, sec := range []content.Section{
			{Type: "Misc Stuff", Title: "Misc"},
			{Type: "Misc Stuff", Title: "Misc", Text: "  \n\t"},
		} {
			for _, kind := range []render.Kind{render.KindGeneric, render.KindSkills} {
				doc := parse(t, render.Section(sec, kind, render.Options{}))
				if doc.Find("section.cv-section.cv-section-misc-stuff.cv-section-empty h2.cv-section-title").Text() != "Misc" {
					t.Errorf("%s text %q: missing bare section header", kind, sec.Text)
				}
				if doc.Find(".cv-section-body").Length() != 0 {
					t.Errorf("%s text %q: empty section should have no body", kind, sec.Text)
				}
			}
		}
	})

	t.Run("content is not empty", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, render.Section(content.Section{Title: "About", Text: "Hi"}, render.KindGeneric, render.Options{}))
		if doc.Find(".cv-section-empty").Length() != 0 {
			t.Error("section with text marked empty")
		}
		if doc.Find(".cv-section-body p.cv-paragraph").Text() != "Hi" {
			t.Error("missing paragraph")
		}
	})

	t.Run("mixed items keep order", func(t *testing.T) {
		t.Parallel()

		sec := content.Section{
			Title: "Projects",
			Items: []content.Item{
				content.TextItem("first"),
				content.TextItem("second"),
				content.EntryItem(content.Entry{Title: "Tool"}),
				content.TextItem("third"),
			},
		}
		doc := parse(t, render.Section(sec, render.KindGeneric, render.Options{}))
		body := doc.Find(".cv-section-body").Children()
		var tags []string
		body.Each(func(_ int, s *goquery.Selection) {
			tags = append(tags, goquery.NodeName(s))
		})
		if !reflect.DeepEqual(tags, []string{"ul", "article", "ul"}) {
			t.Errorf("body children = %v", tags)
		}
	})

	t.Run("skills kind", func(t *testing.T) {
		t.Parallel()

		sec := content.Section{Title: "Skills", Text: "**Languages:** Go"}
		doc := parse(t, render.Section(sec, render.KindSkills, render.Options{}))
		if doc.Find(".cv-skill-pill").Text() != "Go" {
			t.Error("skills kind should render pills")
		}
	})
}
