package cv2pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/layout"
	"github.com/alnah/go-cv2pdf/internal/metrics"
	"github.com/alnah/go-cv2pdf/internal/overlay"
	"github.com/alnah/go-cv2pdf/internal/storage"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// Layer names, as used in errors, logs and metrics.
const (
	LayerSidebar    = "sidebar"
	LayerMain       = "main"
	LayerBackground = "background"
)

// photoResolver loads a stored photo as a data URI.
type photoResolver interface {
	Resolve(ctx context.Context, id string) (dataURI string, ok bool, err error)
}

// Compile-time interface check.
var _ photoResolver = (*assets.PhotoResolver)(nil)

// Exporter runs the CV rendering pipeline. It is safe for concurrent use;
// all exports share one browser.
type Exporter struct {
	cfg      exporterConfig
	renderer Renderer
	photos   photoResolver
	store    Store
	theme    *Theme
	logger   *slog.Logger
}

// NewExporter creates an Exporter. Chrome is not started until the first
// export. Returns an error when the photo root or output directory is
// unusable.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{browser: BrowserConfig{
			Timeout:     DefaultTimeout,
			FontTimeout: DefaultFontTimeout,
			SettleDelay: DefaultSettleDelay,
		}},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.theme == nil {
		e.theme = theme.Default()
	}
	if err := e.theme.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	if e.cfg.photoRoot != "" {
		pr, err := assets.NewPhotoResolver(e.cfg.photoRoot)
		if err != nil {
			return nil, fmt.Errorf("photo root: %w", err)
		}
		e.photos = pr
	}

	if e.store == nil {
		ls, err := storage.NewLocalStore(e.cfg.outputDir)
		if err != nil {
			return nil, err
		}
		e.store = ls
	}

	if e.renderer == nil {
		cfg := e.cfg.browser
		cfg.Logger = e.logger
		e.renderer = NewBrowser(cfg)
	}
	return e, nil
}

// Close releases the browser.
func (e *Exporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// Documents builds the three standalone HTML documents of an export without
// printing them. The photo is resolved first.
func (e *Exporter) Documents(ctx context.Context, in Input) (*Documents, error) {
	th, err := e.prepare(in)
	if err != nil {
		return nil, err
	}
	photo, err := e.resolvePhoto(ctx, in)
	if err != nil {
		return nil, err
	}
	docs, err := layout.Assemble(in.Content, th, photo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderDocument, err)
	}
	return docs, nil
}

// Preview builds the single-page web preview of in.
func (e *Exporter) Preview(ctx context.Context, in Input) (string, error) {
	th, err := e.prepare(in)
	if err != nil {
		return "", err
	}
	photo, err := e.resolvePhoto(ctx, in)
	if err != nil {
		return "", err
	}
	html, err := layout.Preview(in.Content, th, photo)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderDocument, err)
	}
	return html, nil
}

// Export renders in to a merged PDF and writes it. Nothing is written
// unless every stage succeeds. Internal panics are returned as errors.
func (e *Exporter) Export(ctx context.Context, in Input) (res *Result, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			res = nil
		}
		pages := 0
		if res != nil {
			pages = res.PageCount
		}
		metrics.ObserveExport(err, time.Since(start), pages)
	}()

	docs, err := e.Documents(ctx, in)
	if err != nil {
		return nil, err
	}
	if docs.SidebarEmpty && docs.MainEmpty {
		return nil, ErrEmptyContent
	}

	layers, err := e.renderLayers(ctx, docs)
	if err != nil {
		return nil, err
	}

	merged, err := overlay.Merge(layers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMerge, err)
	}

	name, err := outputName(in)
	if err != nil {
		return nil, err
	}
	location, err := e.write(ctx, in.OutputPath, name, merged.PDF)
	if err != nil {
		return nil, err
	}

	e.logger.Info("CV exported",
		slog.String("file", location),
		slog.Int("pages", merged.Pages),
		slog.Int("bytes", len(merged.PDF)),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{
		Filename:  name,
		Filepath:  location,
		ByteSize:  int64(len(merged.PDF)),
		PageCount: merged.Pages,
		PDF:       merged.PDF,
	}, nil
}

// prepare validates the input and picks its theme.
func (e *Exporter) prepare(in Input) (*Theme, error) {
	if in.Content == nil {
		return nil, ErrNilContent
	}
	th := in.Theme
	if th == nil {
		return e.theme, nil
	}
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return th, nil
}

// renderLayers prints the non-empty columns and the background
// concurrently. The first failure cancels the others.
func (e *Exporter) renderLayers(ctx context.Context, docs *Documents) (overlay.Layers, error) {
	var layers overlay.Layers
	g, gctx := errgroup.WithContext(ctx)

	render := func(name, html string, dst *[]byte) {
		g.Go(func() error {
			start := time.Now()
			pdf, err := e.renderer.Render(gctx, html)
			if err != nil {
				return fmt.Errorf("%w: %s layer: %w", ErrRenderDocument, name, err)
			}
			metrics.ObserveRender(name, time.Since(start))
			e.logger.Debug("layer rendered", slog.String("layer", name), slog.Int("bytes", len(pdf)))
			*dst = pdf
			return nil
		})
	}

	if !docs.SidebarEmpty {
		render(LayerSidebar, docs.Sidebar, &layers.Sidebar)
	}
	if !docs.MainEmpty {
		render(LayerMain, docs.Main, &layers.Main)
	}
	render(LayerBackground, docs.Background, &layers.Background)

	if err := g.Wait(); err != nil {
		return overlay.Layers{}, err
	}
	return layers, nil
}

// resolvePhoto returns the photo data URI, or "" when the CV has none or it
// cannot be found.
func (e *Exporter) resolvePhoto(ctx context.Context, in Input) (string, error) {
	src := strings.TrimSpace(in.Content.Frontmatter.Photo)
	id := strings.TrimSpace(in.PhotoID)
	derived := id == ""
	if derived {
		if strings.HasPrefix(strings.ToLower(src), "data:image/") {
			return src, nil
		}
		id = photoID(src)
	}
	if id == "" {
		return "", nil
	}

	if e.photos == nil {
		e.logger.Warn("photo requested but no photo root configured", slog.String("photo", id))
		metrics.PhotoMiss()
		return "", nil
	}

	uri, ok, err := e.photos.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		// A frontmatter reference that does not map to a valid asset name is
		// a missing photo; an explicit id is the caller's mistake.
		if !derived || !errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q: %w", ErrPhotoResolve, id, err)
		}
		ok = false
	}
	if !ok {
		e.logger.Warn("photo not found, rendering without it", slog.String("photo", id))
		metrics.PhotoMiss()
		return "", nil
	}
	return uri, nil
}

// photoID derives an asset id from a photo reference: the last path segment
// without query, fragment or extension.
func photoID(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	base := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// outputName returns the stored file name, generating one when unset.
func outputName(in Input) (string, error) {
	if in.OutputPath != "" {
		return filepath.Base(in.OutputPath), nil
	}
	name := strings.TrimSpace(in.Filename)
	if name == "" {
		return "cv-" + uuid.NewString() + ".pdf", nil
	}
	if err := storage.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilename, err)
	}
	if !strings.EqualFold(path.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}

// write persists pdf at outputPath, or in the store when outputPath is empty.
func (e *Exporter) write(ctx context.Context, outputPath, name string, pdf []byte) (string, error) {
	if outputPath != "" {
		if err := fileutil.WriteFileAtomic(outputPath, pdf, 0o644); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return outputPath, nil
	}
	location, err := e.store.Put(ctx, name, pdf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return location, nil
}
