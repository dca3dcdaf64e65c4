package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// ErrWriteHTML indicates a print document could not be written.
var ErrWriteHTML = errors.New("failed to write HTML file")

// exporter is the part of cv2pdf.Exporter the CLI drives.
type exporter interface {
	Export(ctx context.Context, in cv2pdf.Input) (*cv2pdf.Result, error)
	Documents(ctx context.Context, in cv2pdf.Input) (*cv2pdf.Documents, error)
}

// Compile-time interface implementation check.
var _ exporter = (*cv2pdf.Exporter)(nil)

// batchOptions controls how each file is written.
type batchOptions struct {
	html     bool
	htmlOnly bool
	useStore bool // hand PDFs to the configured store instead of OutputPath
}

// exportResult holds the outcome of a single export.
type exportResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// runExport handles `cv2pdf export` and returns the exit code of the batch.
// A non-nil error means nothing was exported.
func runExport(ctx context.Context, args []string, env *Environment) (int, error) {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return 0, err
	}
	if len(positional) == 0 {
		return 0, ErrNoInput
	}
	if len(positional) > 1 {
		return 0, errUnexpectedArgs(positional[1:])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return 0, err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return 0, err
	}
	applyRenderFlags(flags.render, cfg)
	applyAssetFlags(flags.assets, cfg)

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	files, err := discoverFiles(positional[0], outputDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: no CV files in %s", ErrNoInput, positional[0])
	}

	logger := newLogger(env.Stderr, flags.common, slog.LevelWarn)
	exp, err := newExporter(ctx, cfg, env, logger)
	if err != nil {
		return 0, err
	}
	defer func() { _ = exp.Close() }()

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Server.Workers
	}
	workers = cv2pdf.ResolveWorkers(workers)
	logger.Debug("exporting", slog.Int("files", len(files)), slog.Int("workers", workers))

	opts := batchOptions{
		html:     flags.html,
		htmlOnly: flags.htmlOnly,
		useStore: flags.output == "" && strings.EqualFold(cfg.Storage.Backend, config.BackendMinIO),
	}
	results := exportBatch(ctx, exp, files, workers, opts)
	if printResults(results, flags.common.quiet, flags.common.verbose, env) > 0 {
		return batchExitCode(results), nil
	}
	return ExitSuccess, nil
}

// batchExitCode is the exit code of the first failed export.
func batchExitCode(results []exportResult) int {
	for _, r := range results {
		if r.Err != nil {
			return exitCodeFor(r.Err)
		}
	}
	return ExitSuccess
}

// exportBatch runs files through a bounded set of workers sharing one
// exporter. Results keep the order of files.
func exportBatch(ctx context.Context, exp exporter, files []inputFile, workers int, opts batchOptions) []exportResult {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))

	results := make([]exportResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = exportResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = exportFile(ctx, exp, files[idx], opts)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile processes a single CV and returns the result.
func exportFile(ctx context.Context, exp exporter, f inputFile, opts batchOptions) exportResult {
	start := time.Now()
	result := exportResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) exportResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	c, err := readContent(f.InputPath)
	if err != nil {
		return done(err)
	}

	if !opts.useStore {
		if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
			return done(fmt.Errorf("creating output directory: %w", err))
		}
	}

	in := cv2pdf.Input{Content: c, OutputPath: f.OutputPath}
	if opts.useStore {
		in = cv2pdf.Input{Content: c, Filename: filepath.Base(f.OutputPath)}
	}

	if opts.html || opts.htmlOnly {
		paths, err := writeDocuments(ctx, exp, in, f.OutputPath)
		if err != nil {
			return done(err)
		}
		if opts.htmlOnly {
			result.OutputPath = strings.Join(paths, ", ")
			return done(nil)
		}
	}

	res, err := exp.Export(ctx, in)
	if err != nil {
		return done(err)
	}
	result.OutputPath = res.Filepath
	result.Pages = res.PageCount
	return done(nil)
}

// writeDocuments writes the three print documents next to pdfPath.
func writeDocuments(ctx context.Context, exp exporter, in cv2pdf.Input, pdfPath string) ([]string, error) {
	docs, err := exp.Documents(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	var paths []string
	for _, d := range []struct{ layer, html string }{
		{cv2pdf.LayerSidebar, docs.Sidebar},
		{cv2pdf.LayerMain, docs.Main},
		{cv2pdf.LayerBackground, docs.Background},
	} {
		p := htmlOutputPath(pdfPath, d.layer)
		if err := fileutil.WriteFileAtomic(p, []byte(d.html), filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// printResults outputs export results and returns the failure count.
func printResults(results []exportResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}
