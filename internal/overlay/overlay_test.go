package overlay_test

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-cv2pdf/internal/overlay"
)

// makePDF builds an A4 document with n labelled pages.
func makePDF(t *testing.T, n int, label string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < n; i++ {
		doc.AddPage()
		doc.Text(20, 20, fmt.Sprintf("%s page %d", label, i+1))
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("building %s PDF: %v", label, err)
	}
	return buf.Bytes()
}

var (
	objHeaderRe = regexp.MustCompile(`(?m)^(\d+) 0 obj\n`)
	lengthRe    = regexp.MustCompile(`/Length (\d+)`)
	contentsRe  = regexp.MustCompile(`/Contents (\d+) 0 R`)
	xobjectRe   = regexp.MustCompile(`(/GOFPDITPL\d+) (\d+) 0 R`)
	doRe        = regexp.MustCompile(`(/GOFPDITPL\d+) Do`)
	textRe      = regexp.MustCompile(`\(([^)]*)\) Tj`)
	pageTypeRe  = regexp.MustCompile(`/Type /Page\b[^s]`)
)

type pdfObject struct {
	dict   string
	stream []byte
}

// splitObjects indexes the top-level objects of pdf by number, inflating
// FlateDecode streams.
func splitObjects(t *testing.T, pdf []byte) map[int]pdfObject {
	t.Helper()

	objs := make(map[int]pdfObject)
	locs := objHeaderRe.FindAllSubmatchIndex(pdf, -1)
	for i, loc := range locs {
		num, _ := strconv.Atoi(string(pdf[loc[2]:loc[3]]))
		end := len(pdf)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := pdf[loc[1]:end]

		at := bytes.Index(body, []byte("\nstream\n"))
		if at < 0 {
			objs[num] = pdfObject{dict: string(body)}
			continue
		}
		dict := string(body[:at])
		m := lengthRe.FindStringSubmatch(dict)
		if m == nil {
			t.Fatalf("object %d: stream without /Length", num)
		}
		n, _ := strconv.Atoi(m[1])
		start := at + len("\nstream\n")
		data := body[start : start+n]
		if bytes.Contains([]byte(dict), []byte("/FlateDecode")) {
			zr, err := zlib.NewReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("object %d: %v", num, err)
			}
			data, err = io.ReadAll(zr)
			if err != nil {
				t.Fatalf("object %d: %v", num, err)
			}
		}
		objs[num] = pdfObject{dict: dict, stream: data}
	}
	return objs
}

// pageLayers returns, per page, the text label of each stamped layer in
// the order it was drawn.
func pageLayers(t *testing.T, pdf []byte) [][]string {
	t.Helper()

	objs := splitObjects(t, pdf)

	templates := make(map[string]int)
	var pageNums []int
	for num, o := range objs {
		for _, m := range xobjectRe.FindAllStringSubmatch(o.dict, -1) {
			id, _ := strconv.Atoi(m[2])
			templates[m[1]] = id
		}
		if pageTypeRe.MatchString(o.dict) {
			pageNums = append(pageNums, num)
		}
	}
	sort.Ints(pageNums)

	var pages [][]string
	for _, num := range pageNums {
		m := contentsRe.FindStringSubmatch(objs[num].dict)
		if m == nil {
			t.Fatalf("page object %d has no /Contents", num)
		}
		id, _ := strconv.Atoi(m[1])
		var labels []string
		for _, use := range doRe.FindAllSubmatch(objs[id].stream, -1) {
			tpl, ok := templates[string(use[1])]
			if !ok {
				t.Fatalf("page object %d draws unknown template %s", num, use[1])
			}
			text := textRe.FindSubmatch(objs[tpl].stream)
			if text == nil {
				t.Fatalf("template %s carries no text", use[1])
			}
			labels = append(labels, string(text[1]))
		}
		pages = append(pages, labels)
	}
	return pages
}

// ---------------------------------------------------------------------------
// TestPlan - pure page plan
// ---------------------------------------------------------------------------

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		sidebar, main int
		want          []overlay.PagePlan
	}{
		{
			name:    "main longer",
			sidebar: 2, main: 3,
			want: []overlay.PagePlan{
				{Index: 0, SidebarPage: 1, MainPage: 1},
				{Index: 1, SidebarPage: 2, MainPage: 2},
				{Index: 2, SidebarPage: 0, MainPage: 3},
			},
		},
		{
			name:    "empty sidebar",
			sidebar: 0, main: 2,
			want: []overlay.PagePlan{
				{Index: 0, MainPage: 1},
				{Index: 1, MainPage: 2},
			},
		},
		{
			name:    "sidebar longer",
			sidebar: 2, main: 1,
			want: []overlay.PagePlan{
				{Index: 0, SidebarPage: 1, MainPage: 1},
				{Index: 1, SidebarPage: 2},
			},
		},
		{name: "nothing", want: []overlay.PagePlan{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := overlay.Plan(tt.sidebar, tt.main)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan(%d, %d) = %+v, want %+v", tt.sidebar, tt.main, got, tt.want)
			}
		})
	}
}

func TestPlanPresence(t *testing.T) {
	t.Parallel()

	plan := overlay.Plan(2, 3)
	for i, p := range plan {
		if p.HasSidebar() != (i < 2) {
			t.Errorf("page %d: HasSidebar() = %v", i+1, p.HasSidebar())
		}
		if !p.HasMain() {
			t.Errorf("page %d: HasMain() = false", i+1)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPageCount
// ---------------------------------------------------------------------------

func TestPageCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 5} {
		got, err := overlay.PageCount(makePDF(t, n, "doc"))
		if err != nil {
			t.Fatalf("PageCount() error: %v", err)
		}
		if got != n {
			t.Errorf("PageCount() = %d, want %d", got, n)
		}
	}

	if got, err := overlay.PageCount(nil); got != 0 || err != nil {
		t.Errorf("PageCount(nil) = %d, %v, want 0, nil", got, err)
	}
	if _, err := overlay.PageCount([]byte("not a pdf at all")); !errors.Is(err, overlay.ErrInvalidPDF) {
		t.Errorf("PageCount(garbage) error = %v, want ErrInvalidPDF", err)
	}
}

// ---------------------------------------------------------------------------
// TestMerge
// ---------------------------------------------------------------------------

func TestMerge(t *testing.T) {
	t.Parallel()

	background := makePDF(t, 1, "background")

	tests := []struct {
		name          string
		sidebar, main []byte
		wantPages     int
		wantSidebar   []bool
		wantLayers    [][]string
		wantErr       error
	}{
		{
			name:        "sidebar 2 main 3",
			sidebar:     makePDF(t, 2, "sidebar"),
			main:        makePDF(t, 3, "main"),
			wantPages:   3,
			wantSidebar: []bool{true, true, false},
			wantLayers: [][]string{
				{"background page 1", "sidebar page 1", "main page 1"},
				{"background page 1", "sidebar page 2", "main page 2"},
				{"background page 1", "main page 3"},
			},
		},
		{
			name:        "empty sidebar",
			sidebar:     nil,
			main:        makePDF(t, 2, "main"),
			wantPages:   2,
			wantSidebar: []bool{false, false},
			wantLayers: [][]string{
				{"background page 1", "main page 1"},
				{"background page 1", "main page 2"},
			},
		},
		{
			name:        "empty main",
			sidebar:     makePDF(t, 1, "sidebar"),
			wantPages:   1,
			wantSidebar: []bool{true},
			wantLayers: [][]string{
				{"background page 1", "sidebar page 1"},
			},
		},
		{name: "both empty", wantErr: overlay.ErrNoPages},
		{name: "corrupt main", main: []byte("%PDF-1.4 garbage"), wantErr: overlay.ErrInvalidPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := overlay.Merge(overlay.Layers{Background: background, Sidebar: tt.sidebar, Main: tt.main})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Merge() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Merge() error: %v", err)
			}
			if res.Pages != tt.wantPages || len(res.Plan) != tt.wantPages {
				t.Fatalf("Pages = %d (plan %d), want %d", res.Pages, len(res.Plan), tt.wantPages)
			}
			for i, p := range res.Plan {
				if p.HasSidebar() != tt.wantSidebar[i] {
					t.Errorf("page %d: sidebar present = %v, want %v", i+1, p.HasSidebar(), tt.wantSidebar[i])
				}
			}

			n, err := overlay.PageCount(res.PDF)
			if err != nil {
				t.Fatalf("PageCount(merged) error: %v", err)
			}
			if n != tt.wantPages {
				t.Errorf("merged PDF has %d pages, want %d", n, tt.wantPages)
			}
			if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
				t.Error("merged output is not a PDF")
			}

			// Each page stacks background, sidebar, then main, and every
			// layer lands on the page with its own page number.
			if got := pageLayers(t, res.PDF); !reflect.DeepEqual(got, tt.wantLayers) {
				t.Errorf("layers per page = %q, want %q", got, tt.wantLayers)
			}
		})
	}
}

func TestMerge_MissingBackground(t *testing.T) {
	t.Parallel()

	_, err := overlay.Merge(overlay.Layers{Main: makePDF(t, 1, "main")})
	if !errors.Is(err, overlay.ErrMissingBackground) {
		t.Errorf("Merge() error = %v, want ErrMissingBackground", err)
	}
}
