package cv2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cv2pdf/internal/css"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/metrics"
	"github.com/alnah/go-cv2pdf/internal/process"
)

// Capture geometry: A4 at 96 dpi, printed at 2x.
const (
	ViewportWidth     = 794
	ViewportHeight    = 1123
	DeviceScaleFactor = 2

	mmPerInch = 25.4
)

// Render defaults.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultFontTimeout = 15 * time.Second
	DefaultSettleDelay = 150 * time.Millisecond
)

// fontsReadyScript resolves once every declared font face has loaded or
// failed. Browsers without the Font Loading API resolve immediately.
const fontsReadyScript = `() => (document.fonts && document.fonts.ready)
	? document.fonts.ready.then(() => true)
	: true`

// errFontTimeout marks a font wait that outlived its budget.
var errFontTimeout = errors.New("timed out waiting for fonts")

// Renderer turns one standalone HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// BrowserConfig configures the headless browser.
type BrowserConfig struct {
	Bin         string // Chrome binary; empty uses ROD_BROWSER_BIN or rod's managed Chromium
	NoSandbox   bool
	Timeout     time.Duration // per render, load to PDF
	FontTimeout time.Duration // web font wait; expiry is not an error
	SettleDelay time.Duration // pause after fonts for late reflow
	Logger      *slog.Logger
}

func (c BrowserConfig) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// noSandbox is forced in CI and for pre-installed binaries, which usually
// run inside containers.
func (c BrowserConfig) noSandbox() bool {
	return c.NoSandbox || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != ""
}

// Browser is one lazily launched headless Chrome shared by concurrent
// renders. Every Render opens and closes its own tab.
type Browser struct {
	cfg BrowserConfig

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowser creates a Browser. Chrome starts on the first Render.
func NewBrowser(cfg BrowserConfig) *Browser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FontTimeout <= 0 {
		cfg.FontTimeout = DefaultFontTimeout
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Browser{cfg: cfg}
}

// ensure launches and connects Chrome once.
func (b *Browser) ensure() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().Headless(true)
	if bin := b.cfg.bin(); bin != "" {
		l = l.Bin(bin)
	}
	if b.cfg.noSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	br := rod.New().ControlURL(u)
	if err := br.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.launcher = l
	b.browser = br
	b.cfg.Logger.Debug("browser started", slog.Int("pid", l.PID()))
	return br, nil
}

// Close shuts Chrome down. A later Render starts a new instance.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	if err := process.KillProcessGroup(b.launcher.PID()); err != nil {
		b.cfg.Logger.Debug("browser process group already gone", slog.Any("error", err))
	}
	b.launcher.Kill()
	b.launcher.Cleanup()

	b.browser = nil
	b.launcher = nil
	return err
}

// Render prints html as an A4 PDF with zero margins and backgrounds.
// The document is loaded from a temporary file; the tab and the file are
// released on every path.
func (b *Browser) Render(ctx context.Context, html string) (pdf []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if ctxErr := ctx.Err(); err != nil && ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
	}()

	br, err := b.ensure()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	base, err := br.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	// The tab must close even when ctx is already done.
	defer func() { _ = base.Context(context.Background()).Close() }()

	timeout := b.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page := base.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             ViewportWidth,
		Height:            ViewportHeight,
		DeviceScaleFactor: DeviceScaleFactor,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageLoad, err)
	}

	// Arm the lifecycle wait before navigating so the event is not missed.
	waitIdle := page.WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	if err := page.Navigate("file://" + path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	b.waitFonts(page)

	if b.cfg.SettleDelay > 0 {
		select {
		case <-time.After(b.cfg.SettleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err = io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// waitFonts blocks until web fonts are ready or FontTimeout passes. Either
// way rendering continues.
func (b *Browser) waitFonts(page *rod.Page) {
	fp := page.Timeout(b.cfg.FontTimeout)
	defer fp.CancelTimeout()

	_, err := awaitFonts(b.cfg.FontTimeout, func() (bool, error) {
		res, err := fp.Eval(fontsReadyScript)
		if err != nil {
			return false, err
		}
		return res.Value.Bool(), nil
	})
	switch {
	case errors.Is(err, errFontTimeout):
		metrics.FontTimeout()
		b.cfg.Logger.Warn("web fonts not ready, rendering with fallback fonts",
			slog.Duration("timeout", b.cfg.FontTimeout))
	case err != nil:
		b.cfg.Logger.Warn("font readiness check failed", slog.Any("error", err))
	}
}

// awaitFonts runs wait with a hard deadline. A wait that never returns
// yields errFontTimeout after timeout.
func awaitFonts(timeout time.Duration, wait func() (bool, error)) (bool, error) {
	type result struct {
		ready bool
		err   error
	}
	done := make(chan result, 1)
	go func() {
		ready, err := wait()
		done <- result{ready, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.ready, r.err
	case <-timer.C:
		return false, errFontTimeout
	}
}

// printOptions prints exactly one A4 sheet per page, full bleed.
func printOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(css.PageWidthMM / mmPerInch),
		PaperHeight:       floatPtr(css.PageHeightMM / mmPerInch),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// Compile-time interface check.
var _ Renderer = (*Browser)(nil)
