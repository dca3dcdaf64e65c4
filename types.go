package cv2pdf

import (
	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/layout"
	"github.com/alnah/go-cv2pdf/internal/storage"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// Content model, re-exported for callers building CVs in code.
type (
	Content       = content.Content
	Frontmatter   = content.Frontmatter
	Section       = content.Section
	Item          = content.Item
	Entry         = content.Entry
	SkillCategory = content.SkillCategory
)

// Theme is a versioned theme configuration.
type Theme = theme.Config

// Documents are the three standalone HTML documents of one export.
type Documents = layout.Documents

// Store persists finished PDFs.
type Store = storage.Store

// Item constructors.
var (
	TextItem  = content.TextItem
	EntryItem = content.EntryItem
	SkillItem = content.SkillItem
)

// Input is one export request.
type Input struct {
	Content *Content
	Theme   *Theme // nil uses the exporter's default theme

	// PhotoID names a stored photo. When empty it is derived from
	// Frontmatter.Photo. A data:image URI in Frontmatter.Photo is used as is.
	PhotoID string

	// Filename is the stored object name. Empty generates a unique one.
	Filename string

	// OutputPath writes the PDF to this exact path instead of the store.
	OutputPath string
}

// Result describes a written PDF.
type Result struct {
	Filename  string `json:"filename"`
	Filepath  string `json:"filepath"`
	ByteSize  int64  `json:"byteSize"`
	PageCount int    `json:"pageCount"`

	PDF []byte `json:"-"`
}
