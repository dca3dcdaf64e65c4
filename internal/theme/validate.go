package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for theme handling.
var (
	ErrInvalidTheme = errors.New("invalid theme")
	ErrVersion      = errors.New("unsupported theme version")
)

// Field limits.
const (
	maxValueLength     = 128
	maxSeparatorLength = 8
	maxPDFLines        = 10
	MaxCustomCSSLength = 64 * 1024
)

// unsafeValueChars could break out of a declaration or the style element.
const unsafeValueChars = ";{}<>\\"

var fontNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]*$`)

// Parse decodes a YAML or JSON theme document and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yamlutil.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and validates a theme document from disk.
func Load(path string) (*Config, error) {
	var c Config
	if err := yamlutil.ReadFile(path, &c, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerations, bounds and that no value can inject CSS.
// A zero Version is treated as CurrentVersion.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: %d (want %d)", ErrVersion, c.Version, CurrentVersion)
	}

	if err := oneOf("layout.contact", c.Layout.Contact, LayoutVertical, LayoutHorizontal); err != nil {
		return err
	}
	if err := oneOf("components.skill_style", c.Components.SkillStyle, SkillPill, SkillInline); err != nil {
		return err
	}
	if err := oneOf("components.photo_shape", c.Components.PhotoShape, ShapeCircle, ShapeRounded, ShapeSquare); err != nil {
		return err
	}

	for _, f := range []cssField{
		{"typography.heading_font", c.Typography.HeadingFont},
		{"typography.body_font", c.Typography.BodyFont},
	} {
		if f.value != "" && !fontNamePattern.MatchString(f.value) {
			return fmt.Errorf("%w: %s: font name %q has invalid characters", ErrInvalidTheme, f.field, f.value)
		}
	}

	for _, f := range c.cssValues() {
		if err := checkValue(f.field, f.value); err != nil {
			return err
		}
	}

	sep := c.Components.SkillSeparator
	if len([]rune(sep)) > maxSeparatorLength {
		return fmt.Errorf("%w: components.skill_separator longer than %d characters", ErrInvalidTheme, maxSeparatorLength)
	}
	if strings.IndexFunc(sep, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: components.skill_separator contains control characters", ErrInvalidTheme)
	}

	if c.PDF.Orphans < 0 || c.PDF.Orphans > maxPDFLines || c.PDF.Widows < 0 || c.PDF.Widows > maxPDFLines {
		return fmt.Errorf("%w: pdf.orphans and pdf.widows must be between 0 and %d", ErrInvalidTheme, maxPDFLines)
	}
	if len(c.Advanced.CustomCSS) > MaxCustomCSSLength {
		return fmt.Errorf("%w: advanced.custom_css exceeds %d bytes", ErrInvalidTheme, MaxCustomCSSLength)
	}
	return nil
}

type cssField struct{ field, value string }

// cssValues lists the free-form fields that land in a CSS declaration.
func (c *Config) cssValues() []cssField {
	return []cssField{
		{"colors.primary", c.Colors.Primary},
		{"colors.accent", c.Colors.Accent},
		{"colors.text", c.Colors.Text},
		{"colors.muted", c.Colors.Muted},
		{"colors.heading", c.Colors.Heading},
		{"colors.link", c.Colors.Link},
		{"colors.border", c.Colors.Border},
		{"colors.background", c.Colors.Background},
		{"colors.sidebar_background", c.Colors.SidebarBackground},
		{"colors.sidebar_text", c.Colors.SidebarText},
		{"colors.pill_background", c.Colors.PillBackground},
		{"colors.pill_text", c.Colors.PillText},
		{"typography.base_size", c.Typography.BaseSize},
		{"typography.name_size", c.Typography.NameSize},
		{"typography.section_title_size", c.Typography.SectionTitleSize},
		{"typography.line_height", c.Typography.LineHeight},
		{"layout.page_padding", c.Layout.PagePadding},
		{"layout.sidebar_padding", c.Layout.SidebarPadding},
		{"layout.section_spacing", c.Layout.SectionSpacing},
		{"layout.entry_spacing", c.Layout.EntrySpacing},
		{"components.pill_radius", c.Components.PillRadius},
		{"components.photo_size", c.Components.PhotoSize},
		{"components.section_rule", c.Components.SectionRule},
	}
}

func checkValue(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("%w: %s longer than %d bytes", ErrInvalidTheme, field, maxValueLength)
	}
	if strings.ContainsAny(value, unsafeValueChars) || strings.Contains(value, "/*") {
		return fmt.Errorf("%w: %s contains forbidden characters: %q", ErrInvalidTheme, field, value)
	}
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %s contains control characters", ErrInvalidTheme, field)
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidTheme, field, strings.Join(allowed, ", "), value)
}
