// Package theme holds the user-editable style configuration of a CV and its
// deterministic translation into CSS custom properties.
//
// Every field is optional. Unset values produce no variable, and the
// stylesheets fall back to their built-in values, so the zero Config renders
// the stock look.
package theme

import (
	"sort"
	"strconv"
	"strings"
)

// CurrentVersion is the theme document version understood by this package.
const CurrentVersion = 1

// Contact block layouts.
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// Skill presentation styles.
const (
	SkillPill   = "pill"
	SkillInline = "inline"
)

// Photo shapes.
const (
	ShapeCircle  = "circle"
	ShapeRounded = "rounded"
	ShapeSquare  = "square"
)

// Column colour defaults used when the theme leaves them unset.
const (
	DefaultSidebarColor = "#f3f4f6"
	DefaultMainColor    = "#ffffff"
)

// DefaultSkillSeparator joins inline skills.
const DefaultSkillSeparator = "·"

// MinOrphans is the floor for orphans and widows.
const MinOrphans = 2

// Config is a versioned theme document.
type Config struct {
	Version    int        `yaml:"version,omitempty" json:"version,omitempty"`
	Colors     Colors     `yaml:"colors,omitempty" json:"colors,omitempty"`
	Typography Typography `yaml:"typography,omitempty" json:"typography,omitempty"`
	Layout     Layout     `yaml:"layout,omitempty" json:"layout,omitempty"`
	Components Components `yaml:"components,omitempty" json:"components,omitempty"`
	PDF        PDF        `yaml:"pdf,omitempty" json:"pdf,omitempty"`
	Advanced   Advanced   `yaml:"advanced,omitempty" json:"advanced,omitempty"`
}

// Colors are CSS color values. SidebarBackground and Background also paint
// the background layer of the PDF.
type Colors struct {
	Primary           string `yaml:"primary,omitempty" json:"primary,omitempty"`
	Accent            string `yaml:"accent,omitempty" json:"accent,omitempty"`
	Text              string `yaml:"text,omitempty" json:"text,omitempty"`
	Muted             string `yaml:"muted,omitempty" json:"muted,omitempty"`
	Heading           string `yaml:"heading,omitempty" json:"heading,omitempty"`
	Link              string `yaml:"link,omitempty" json:"link,omitempty"`
	Border            string `yaml:"border,omitempty" json:"border,omitempty"`
	Background        string `yaml:"background,omitempty" json:"background,omitempty"`
	SidebarBackground string `yaml:"sidebar_background,omitempty" json:"sidebar_background,omitempty"`
	SidebarText       string `yaml:"sidebar_text,omitempty" json:"sidebar_text,omitempty"`
	PillBackground    string `yaml:"pill_background,omitempty" json:"pill_background,omitempty"`
	PillText          string `yaml:"pill_text,omitempty" json:"pill_text,omitempty"`
}

// Typography sets font families and CSS sizes.
type Typography struct {
	HeadingFont      string `yaml:"heading_font,omitempty" json:"heading_font,omitempty"`
	BodyFont         string `yaml:"body_font,omitempty" json:"body_font,omitempty"`
	BaseSize         string `yaml:"base_size,omitempty" json:"base_size,omitempty"`
	NameSize         string `yaml:"name_size,omitempty" json:"name_size,omitempty"`
	SectionTitleSize string `yaml:"section_title_size,omitempty" json:"section_title_size,omitempty"`
	LineHeight       string `yaml:"line_height,omitempty" json:"line_height,omitempty"`
}

// Layout holds spacing and the contact placement, "vertical" or
// "horizontal".
type Layout struct {
	Contact        string `yaml:"contact,omitempty" json:"contact,omitempty"`
	PagePadding    string `yaml:"page_padding,omitempty" json:"page_padding,omitempty"`
	SidebarPadding string `yaml:"sidebar_padding,omitempty" json:"sidebar_padding,omitempty"`
	SectionSpacing string `yaml:"section_spacing,omitempty" json:"section_spacing,omitempty"`
	EntrySpacing   string `yaml:"entry_spacing,omitempty" json:"entry_spacing,omitempty"`
}

// Components style individual blocks. SkillStyle is "pill" or "inline".
type Components struct {
	SkillStyle     string `yaml:"skill_style,omitempty" json:"skill_style,omitempty"`
	SkillSeparator string `yaml:"skill_separator,omitempty" json:"skill_separator,omitempty"`
	PillRadius     string `yaml:"pill_radius,omitempty" json:"pill_radius,omitempty"`
	PhotoShape     string `yaml:"photo_shape,omitempty" json:"photo_shape,omitempty"`
	PhotoSize      string `yaml:"photo_size,omitempty" json:"photo_size,omitempty"`
	SectionRule    string `yaml:"section_rule,omitempty" json:"section_rule,omitempty"`
}

// PDF holds print-only settings.
type PDF struct {
	Orphans int `yaml:"orphans,omitempty" json:"orphans,omitempty"`
	Widows  int `yaml:"widows,omitempty" json:"widows,omitempty"`
}

// Advanced holds raw escape hatches. CustomCSS is sanitized before use.
type Advanced struct {
	CustomCSS string `yaml:"custom_css,omitempty" json:"custom_css,omitempty"`
}

// Default returns the stock theme: no overrides.
func Default() *Config {
	return &Config{Version: CurrentVersion}
}

// ContactLayout returns the contact block layout, vertical unless set.
func (c *Config) ContactLayout() string {
	if c == nil || c.Layout.Contact != LayoutHorizontal {
		return LayoutVertical
	}
	return LayoutHorizontal
}

// SkillStyle returns the skills presentation, pill unless set.
func (c *Config) SkillStyle() string {
	if c == nil || c.Components.SkillStyle != SkillInline {
		return SkillPill
	}
	return SkillInline
}

// SkillSeparator returns the glyph joining inline skills.
func (c *Config) SkillSeparator() string {
	if c == nil || c.Components.SkillSeparator == "" {
		return DefaultSkillSeparator
	}
	return c.Components.SkillSeparator
}

// ColumnColors returns the resolved sidebar and main background colours.
func (c *Config) ColumnColors() (sidebar, main string) {
	sidebar, main = DefaultSidebarColor, DefaultMainColor
	if c == nil {
		return sidebar, main
	}
	if c.Colors.SidebarBackground != "" {
		sidebar = c.Colors.SidebarBackground
	}
	if c.Colors.Background != "" {
		main = c.Colors.Background
	}
	return sidebar, main
}

// OrphansWidows returns the orphan and widow line counts, never below
// MinOrphans.
func (c *Config) OrphansWidows() (orphans, widows int) {
	orphans, widows = MinOrphans, MinOrphans
	if c == nil {
		return orphans, widows
	}
	return max(orphans, c.PDF.Orphans), max(widows, c.PDF.Widows)
}

// Variables maps the theme onto CSS custom property names. Only set values
// appear. The result depends on the configuration alone.
func (c *Config) Variables() map[string]string {
	vars := make(map[string]string)
	if c == nil {
		return vars
	}
	set := func(name, value string) {
		if v := strings.TrimSpace(value); v != "" {
			vars[name] = v
		}
	}

	set("--cv-color-primary", c.Colors.Primary)
	set("--cv-color-accent", c.Colors.Accent)
	set("--cv-color-text", c.Colors.Text)
	set("--cv-color-muted", c.Colors.Muted)
	set("--cv-color-heading", c.Colors.Heading)
	set("--cv-color-link", c.Colors.Link)
	set("--cv-color-border", c.Colors.Border)
	set("--cv-color-main-bg", c.Colors.Background)
	set("--cv-color-sidebar-bg", c.Colors.SidebarBackground)
	set("--cv-color-sidebar-text", c.Colors.SidebarText)
	set("--cv-color-pill-bg", c.Colors.PillBackground)
	set("--cv-color-pill-text", c.Colors.PillText)

	if f := c.Typography.HeadingFont; f != "" {
		vars["--cv-font-heading"] = FontStack(f)
	}
	if f := c.Typography.BodyFont; f != "" {
		vars["--cv-font-body"] = FontStack(f)
	}
	set("--cv-font-size-base", c.Typography.BaseSize)
	set("--cv-font-size-name", c.Typography.NameSize)
	set("--cv-font-size-section", c.Typography.SectionTitleSize)
	set("--cv-line-height", c.Typography.LineHeight)

	set("--cv-page-padding", c.Layout.PagePadding)
	set("--cv-sidebar-padding", c.Layout.SidebarPadding)
	set("--cv-section-spacing", c.Layout.SectionSpacing)
	set("--cv-entry-spacing", c.Layout.EntrySpacing)

	set("--cv-pill-radius", c.Components.PillRadius)
	set("--cv-photo-size", c.Components.PhotoSize)
	set("--cv-section-rule", c.Components.SectionRule)
	switch c.Components.PhotoShape {
	case ShapeCircle:
		vars["--cv-photo-radius"] = "50%"
	case ShapeRounded:
		vars["--cv-photo-radius"] = "8px"
	case ShapeSquare:
		vars["--cv-photo-radius"] = "0"
	}

	if c.PDF.Orphans > 0 || c.PDF.Widows > 0 {
		o, w := c.OrphansWidows()
		vars["--cv-orphans"] = strconv.Itoa(o)
		vars["--cv-widows"] = strconv.Itoa(w)
	}
	return vars
}

// FontLinks returns stylesheet URLs for the non-system fonts the theme uses,
// sorted and deduplicated.
func (c *Config) FontLinks() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var links []string
	for _, f := range []string{c.Typography.HeadingFont, c.Typography.BodyFont} {
		f = strings.TrimSpace(f)
		if f == "" || IsSystemFont(f) || seen[f] {
			continue
		}
		seen[f] = true
		links = append(links, webFontURL(f))
	}
	sort.Strings(links)
	return links
}
