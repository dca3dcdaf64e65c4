package render

// ContactLayout places the contact block.
type ContactLayout int

const (
	// Vertical stacks contact items; used in the sidebar.
	Vertical ContactLayout = iota
	// Horizontal lays contact items on one row under the name.
	Horizontal
)

// SkillStyle selects how skills are drawn.
type SkillStyle int

const (
	// Pill draws each skill as a rounded tag.
	Pill SkillStyle = iota
	// Inline joins skills with a separator glyph.
	Inline
)

// DefaultSeparator joins inline skills when Options leaves it empty.
const DefaultSeparator = "·"

// Options are the layout flags shared by all renderers.
type Options struct {
	// Pagination splits entries into break-aware groups for print.
	Pagination     bool
	Layout         ContactLayout
	SkillStyle     SkillStyle
	SkillSeparator string
}

func (o Options) separator() string {
	if o.SkillSeparator == "" {
		return DefaultSeparator
	}
	return o.SkillSeparator
}
