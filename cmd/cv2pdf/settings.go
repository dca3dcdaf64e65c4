package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/hints"
	"github.com/alnah/go-cv2pdf/internal/storage"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// Sentinel errors for settings resolution.
var (
	ErrThemeLoad          = errors.New("failed to load theme")
	ErrStorageInit        = errors.New("failed to initialize storage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUnexpectedArgs     = errors.New("unexpected arguments")
	ErrInvalidFlag        = errors.New("invalid flag")
)

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(args, " "))
}

// flagError keeps --help distinguishable from bad flags.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}

// loadConfig resolves settings: defaults < config file < environment.
// Flags are applied by the caller.
func loadConfig(common commonFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// applyRenderFlags overrides render settings set on the command line.
func applyRenderFlags(f renderFlags, cfg *config.Config) {
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.fontTimeout != "" {
		cfg.Render.FontTimeout = f.fontTimeout
	}
	if f.settleDelay != "" {
		cfg.Render.SettleDelay = f.settleDelay
	}
	if f.browserBin != "" {
		cfg.Render.BrowserBin = f.browserBin
	}
	if f.noSandbox {
		cfg.Render.NoSandbox = true
	}
}

// applyAssetFlags overrides theme and photo settings set on the command line.
func applyAssetFlags(f assetFlags, cfg *config.Config) {
	if f.theme != "" {
		cfg.Theme.Name = f.theme
	}
	if f.themeDir != "" {
		cfg.Assets.ThemeDir = f.themeDir
	}
	if f.photoRoot != "" {
		cfg.Assets.PhotoRoot = f.photoRoot
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > cv2pdf.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, cv2pdf.MaxWorkers)
	}
	return nil
}

// resolveTheme loads the configured theme by name or path. An empty name
// selects the embedded default.
func resolveTheme(cfg *config.Config) (*theme.Config, error) {
	name := cfg.Theme.Name
	if name == "" {
		name = assets.DefaultThemeName
	}

	if fileutil.IsFilePath(name) {
		th, err := theme.Load(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrThemeLoad, err)
		}
		return th, nil
	}

	resolver, err := assets.NewAssetResolver(cfg.Assets.ThemeDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThemeLoad, err)
	}
	th, err := resolver.LoadTheme(name)
	if err != nil {
		if errors.Is(err, assets.ErrThemeNotFound) {
			return nil, fmt.Errorf("%w: %w%s", ErrThemeLoad, err, hints.ForThemeNotFound(assets.ThemeNames()))
		}
		return nil, fmt.Errorf("%w: %w", ErrThemeLoad, err)
	}
	return th, nil
}

// newStore builds the configured PDF store, or nil for local output.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if !strings.EqualFold(cfg.Storage.Backend, config.BackendMinIO) {
		return nil, nil
	}
	s, err := storage.NewMinIOStore(ctx, cfg.Storage.MinIO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	return s, nil
}

// newExporter builds an Exporter from resolved settings.
func newExporter(ctx context.Context, cfg *config.Config, env *Environment, logger *slog.Logger) (*cv2pdf.Exporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := cfg.Render.Durations()
	if err != nil {
		return nil, err
	}

	th, err := resolveTheme(cfg)
	if err != nil {
		return nil, err
	}

	opts := []cv2pdf.Option{
		cv2pdf.WithDefaultTheme(th),
		cv2pdf.WithLogger(logger),
		cv2pdf.WithOutputDir(cfg.Output.Dir),
		cv2pdf.WithBrowserBin(cfg.Render.BrowserBin),
		cv2pdf.WithNoSandbox(cfg.Render.NoSandbox),
	}
	if d.Timeout > 0 {
		opts = append(opts, cv2pdf.WithTimeout(d.Timeout))
	}
	if d.FontTimeout > 0 {
		opts = append(opts, cv2pdf.WithFontTimeout(d.FontTimeout))
	}
	if cfg.Render.SettleDelay != "" {
		opts = append(opts, cv2pdf.WithSettleDelay(d.SettleDelay))
	}
	if cfg.Assets.PhotoRoot != "" {
		opts = append(opts, cv2pdf.WithPhotoRoot(cfg.Assets.PhotoRoot))
	}
	if env.Renderer != nil {
		opts = append(opts, cv2pdf.WithRenderer(env.Renderer))
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, cv2pdf.WithStore(store))
	}

	return cv2pdf.NewExporter(opts...)
}

// newLogger returns a text logger on w. base is the level without
// --quiet or --verbose.
func newLogger(w io.Writer, common commonFlags, base slog.Level) *slog.Logger {
	level := base
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
