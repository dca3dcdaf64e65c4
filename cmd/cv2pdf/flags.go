package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags tune the headless browser.
type renderFlags struct {
	timeout     string
	fontTimeout string
	settleDelay string
	browserBin  string
	noSandbox   bool
}

// assetFlags locate themes and photos.
type assetFlags struct {
	theme     string // name or file path
	themeDir  string // directory holding themes/<name>.yaml
	photoRoot string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common   commonFlags
	render   renderFlags
	assets   assetFlags
	output   string
	workers  int
	html     bool // write the print documents next to the PDF
	htmlOnly bool // write the print documents, skip Chrome
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	render    renderFlags
	assets    assetFlags
	addr      string
	workers   int
	outputDir string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and timing")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document render timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.fontTimeout, "font-timeout", "", "web font wait before falling back (e.g. 15s)")
	fs.StringVar(&f.settleDelay, "settle-delay", "", "pause between font load and printing")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium binary")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers)")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name or file path")
	fs.StringVar(&f.themeDir, "theme-dir", "", "directory with custom themes/<name>.yaml")
	fs.StringVar(&f.photoRoot, "photo-root", "", "directory of <id>.jpg|jpeg|png|webp photos")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, usage io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parse errors are reported by run
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write the HTML print documents")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the HTML print documents only, skip PDF")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printExportUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent exports (0 = auto)")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for stored PDFs (local storage)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, flagError(err)
	}
	if fs.NArg() > 0 {
		return nil, errUnexpectedArgs(fs.Args())
	}
	return f, nil
}
