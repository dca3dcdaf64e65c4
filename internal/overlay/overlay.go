// Package overlay merges independently paginated layer PDFs into one
// document.
//
// Sidebar and main content are printed as separate documents whose pages
// are transparent outside their own column, and the background is printed
// once as a single page. Merge stacks them page by page: background, then
// sidebar, then main.
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// A4 in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

const pageBox = "/MediaBox"

// Sentinel errors.
var (
	ErrNoPages           = errors.New("no content pages to merge")
	ErrMissingBackground = errors.New("background layer is missing")
	ErrInvalidPDF        = errors.New("invalid PDF layer")
)

// Layers are the three PDFs of one export. A nil or empty content layer has
// zero pages.
type Layers struct {
	Background []byte
	Sidebar    []byte
	Main       []byte
}

// PagePlan describes one output page. SidebarPage and MainPage are 1-based
// source page numbers, 0 when the layer has no page at this index.
type PagePlan struct {
	Index       int
	SidebarPage int
	MainPage    int
}

// HasSidebar reports whether sidebar content is drawn on this page.
func (p PagePlan) HasSidebar() bool { return p.SidebarPage > 0 }

// HasMain reports whether main content is drawn on this page.
func (p PagePlan) HasMain() bool { return p.MainPage > 0 }

// Result is a merged document.
type Result struct {
	PDF   []byte
	Pages int
	Plan  []PagePlan
}

// Plan lays out the output pages: max(sidebarPages, mainPages) pages, each
// with the background, plus the sidebar and main pages that exist at that
// index.
func Plan(sidebarPages, mainPages int) []PagePlan {
	total := max(sidebarPages, mainPages, 0)
	plan := make([]PagePlan, total)
	for i := range plan {
		plan[i].Index = i
		if i < sidebarPages {
			plan[i].SidebarPage = i + 1
		}
		if i < mainPages {
			plan[i].MainPage = i + 1
		}
	}
	return plan
}

// PageCount returns the number of pages in pdf. Empty input has zero pages.
func PageCount(pdf []byte) (n int, err error) {
	if len(pdf) == 0 {
		return 0, nil
	}
	defer recoverInvalid(&err)

	scratch := newDocument()
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(pdf))
	imp.ImportPageFromStream(scratch, &rs, 1, pageBox)
	return len(imp.GetPageSizes()), nil
}

// Merge composites the layers into one A4 document.
func Merge(l Layers) (res *Result, err error) {
	if len(l.Background) == 0 {
		return nil, ErrMissingBackground
	}
	sidebarPages, err := PageCount(l.Sidebar)
	if err != nil {
		return nil, fmt.Errorf("sidebar: %w", err)
	}
	mainPages, err := PageCount(l.Main)
	if err != nil {
		return nil, fmt.Errorf("main: %w", err)
	}
	plan := Plan(sidebarPages, mainPages)
	if len(plan) == 0 {
		return nil, ErrNoPages
	}

	defer recoverInvalid(&err)

	doc := newDocument()
	imp := gofpdi.NewImporter()

	// Each source needs its own ReadSeeker variable: the importer keys
	// sources by the pointer it is given.
	bgStream := io.ReadSeeker(bytes.NewReader(l.Background))
	sidebarStream := io.ReadSeeker(bytes.NewReader(l.Sidebar))
	mainStream := io.ReadSeeker(bytes.NewReader(l.Main))

	background := -1
	for _, p := range plan {
		doc.AddPage()
		if background < 0 {
			background = imp.ImportPageFromStream(doc, &bgStream, 1, pageBox)
		}
		imp.UseImportedTemplate(doc, background, 0, 0, PageWidthMM, PageHeightMM)

		if p.HasSidebar() {
			tpl := imp.ImportPageFromStream(doc, &sidebarStream, p.SidebarPage, pageBox)
			imp.UseImportedTemplate(doc, tpl, 0, 0, PageWidthMM, PageHeightMM)
		}
		if p.HasMain() {
			tpl := imp.ImportPageFromStream(doc, &mainStream, p.MainPage, pageBox)
			imp.UseImportedTemplate(doc, tpl, 0, 0, PageWidthMM, PageHeightMM)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing merged PDF: %w", err)
	}
	return &Result{PDF: buf.Bytes(), Pages: len(plan), Plan: plan}, nil
}

func newDocument() *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidthMM, Ht: PageHeightMM},
		OrientationStr: "P",
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("go-cv2pdf", true)
	return doc
}

// recoverInvalid turns an importer panic into ErrInvalidPDF. The importer
// reports malformed input by panicking.
func recoverInvalid(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
	}
}
