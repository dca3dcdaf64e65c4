package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/storage"
	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxAddrLength    = 255
	MaxThemeLength   = 4096
	MaxWorkers       = 64
	MaxBodyLimitMB   = 64
	DefaultBodyLimit = 2 // MiB
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// AppName names the user config directory.
const AppName = "go-cv2pdf"

// Config holds all settings of the cv2pdf command.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// RenderConfig tunes the headless browser. Durations use Go syntax ("30s").
type RenderConfig struct {
	Timeout     string `yaml:"timeout"`      // per document (default 60s)
	FontTimeout string `yaml:"font_timeout"` // web font wait (default 15s)
	SettleDelay string `yaml:"settle_delay"` // pause before printing (default 150ms)
	BrowserBin  string `yaml:"browser_bin"`  // empty = ROD_BROWSER_BIN or managed Chromium
	NoSandbox   bool   `yaml:"no_sandbox"`
}

// AssetsConfig locates photos and custom themes.
type AssetsConfig struct {
	PhotoRoot string `yaml:"photo_root"` // directory of <id>.jpg|jpeg|png|webp
	ThemeDir  string `yaml:"theme_dir"`  // holds themes/<name>.yaml; empty = embedded only
}

// OutputConfig defines where local PDFs go.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = current directory
}

// StorageConfig selects the PDF store.
type StorageConfig struct {
	Backend string              `yaml:"backend"` // local (default) or minio
	MinIO   storage.MinIOConfig `yaml:"minio"`
}

// ServerConfig configures `cv2pdf serve`.
type ServerConfig struct {
	Addr        string `yaml:"addr"`          // default :8080
	Workers     int    `yaml:"workers"`       // concurrent exports; 0 = auto
	BodyLimitMB int    `yaml:"body_limit_mb"` // request size cap
}

// ThemeConfig picks the default theme.
type ThemeConfig struct {
	Name string `yaml:"name"` // embedded or theme_dir name, or a file path
}

// RenderDurations are the parsed RenderConfig durations. Zero means unset.
type RenderDurations struct {
	Timeout     time.Duration
	FontTimeout time.Duration
	SettleDelay time.Duration
}

// Durations parses the render durations.
func (r RenderConfig) Durations() (RenderDurations, error) {
	var d RenderDurations
	for _, f := range []struct {
		field string
		value string
		dst   *time.Duration
		zero  bool // zero allowed
	}{
		{"render.timeout", r.Timeout, &d.Timeout, false},
		{"render.font_timeout", r.FontTimeout, &d.FontTimeout, false},
		{"render.settle_delay", r.SettleDelay, &d.SettleDelay, true},
	} {
		if f.value == "" {
			continue
		}
		v, err := time.ParseDuration(f.value)
		if err != nil {
			return RenderDurations{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.field, err)
		}
		if v < 0 || (v == 0 && !f.zero) {
			return RenderDurations{}, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, f.field, f.value)
		}
		*f.dst = v
	}
	return d, nil
}

// Validate checks lengths and enumerations. Called by LoadConfig, and by
// callers that build a Config from environment or flags.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"render.browser_bin", c.Render.BrowserBin, MaxPathLength},
		{"assets.photo_root", c.Assets.PhotoRoot, MaxPathLength},
		{"assets.theme_dir", c.Assets.ThemeDir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"theme.name", c.Theme.Name, MaxThemeLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if _, err := c.Render.Durations(); err != nil {
		return err
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "", BackendLocal:
	case BackendMinIO:
		if err := c.Storage.MinIO.Validate(); err != nil {
			return fmt.Errorf("%w: storage.%v", ErrInvalidValue, err)
		}
	default:
		return fmt.Errorf("%w: storage.backend: %q (must be local or minio)", ErrInvalidValue, c.Storage.Backend)
	}

	if c.Server.Workers < 0 || c.Server.Workers > MaxWorkers {
		return fmt.Errorf("%w: server.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Server.Workers)
	}
	if c.Server.BodyLimitMB < 0 || c.Server.BodyLimitMB > MaxBodyLimitMB {
		return fmt.Errorf("%w: server.body_limit_mb must be between 0 and %d, got %d", ErrInvalidValue, MaxBodyLimitMB, c.Server.BodyLimitMB)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in settings: local storage in the current
// directory, embedded classic theme, automatic worker count.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendLocal},
		Server:  ServerConfig{Addr: ":8080", BodyLimitMB: DefaultBodyLimit},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory, then in
// ~/.config/go-cv2pdf/. Missing files are an error. Unset fields keep
// their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
