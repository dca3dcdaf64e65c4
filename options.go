package cv2pdf

import (
	"log/slog"
	"time"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds settings resolved in NewExporter.
type exporterConfig struct {
	browser   BrowserConfig
	photoRoot string
	outputDir string
}

// WithTimeout sets the per-document render timeout.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cv2pdf: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.browser.Timeout = d
	}
}

// WithFontTimeout bounds the wait for web fonts. Rendering continues with
// fallback fonts when it expires. Panics if d is not positive.
func WithFontTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cv2pdf: WithFontTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.browser.FontTimeout = d
	}
}

// WithSettleDelay sets the pause between font readiness and printing.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Exporter) {
		e.cfg.browser.SettleDelay = max(d, 0)
	}
}

// WithBrowserBin uses a specific Chrome binary.
func WithBrowserBin(path string) Option {
	return func(e *Exporter) {
		e.cfg.browser.Bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, usually needed in containers.
func WithNoSandbox(on bool) Option {
	return func(e *Exporter) {
		e.cfg.browser.NoSandbox = on
	}
}

// WithPhotoRoot sets the directory holding photo assets.
func WithPhotoRoot(dir string) Option {
	return func(e *Exporter) {
		e.cfg.photoRoot = dir
	}
}

// WithOutputDir stores PDFs in dir. Ignored when WithStore is used.
func WithOutputDir(dir string) Option {
	return func(e *Exporter) {
		e.cfg.outputDir = dir
	}
}

// WithStore persists PDFs through s.
func WithStore(s Store) Option {
	return func(e *Exporter) {
		e.store = s
	}
}

// WithRenderer replaces the headless browser. The exporter closes it.
func WithRenderer(r Renderer) Option {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// WithDefaultTheme is used for inputs without a theme.
func WithDefaultTheme(th *Theme) Option {
	return func(e *Exporter) {
		e.theme = th
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}
