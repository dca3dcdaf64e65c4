package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/config"
)

// envPrefix marks cv2pdf environment variables.
const envPrefix = "CV2PDF_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // CV2PDF_CONFIG
	Theme       string // CV2PDF_THEME
	ThemeDir    string // CV2PDF_THEME_DIR
	PhotoRoot   string // CV2PDF_PHOTO_ROOT
	OutputDir   string // CV2PDF_OUTPUT_DIR
	Timeout     string // CV2PDF_TIMEOUT
	FontTimeout string // CV2PDF_FONT_TIMEOUT
	BrowserBin  string // CV2PDF_BROWSER_BIN
	NoSandbox   bool   // CV2PDF_NO_SANDBOX
	Addr        string // CV2PDF_ADDR
	Workers     int    // CV2PDF_WORKERS
	Storage     string // CV2PDF_STORAGE: local or minio

	// MinIO credentials are usually injected as secrets.
	MinIOEndpoint  string // CV2PDF_MINIO_ENDPOINT
	MinIOBucket    string // CV2PDF_MINIO_BUCKET
	MinIOAccessKey string // CV2PDF_MINIO_ACCESS_KEY
	MinIOSecretKey string // CV2PDF_MINIO_SECRET_KEY
}

// knownEnvVars lists valid CV2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CV2PDF_CONFIG":           true,
	"CV2PDF_THEME":            true,
	"CV2PDF_THEME_DIR":        true,
	"CV2PDF_PHOTO_ROOT":       true,
	"CV2PDF_OUTPUT_DIR":       true,
	"CV2PDF_TIMEOUT":          true,
	"CV2PDF_FONT_TIMEOUT":     true,
	"CV2PDF_BROWSER_BIN":      true,
	"CV2PDF_NO_SANDBOX":       true,
	"CV2PDF_ADDR":             true,
	"CV2PDF_WORKERS":          true,
	"CV2PDF_STORAGE":          true,
	"CV2PDF_MINIO_ENDPOINT":   true,
	"CV2PDF_MINIO_BUCKET":     true,
	"CV2PDF_MINIO_ACCESS_KEY": true,
	"CV2PDF_MINIO_SECRET_KEY": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("CV2PDF_CONFIG"),
		Theme:          os.Getenv("CV2PDF_THEME"),
		ThemeDir:       os.Getenv("CV2PDF_THEME_DIR"),
		PhotoRoot:      os.Getenv("CV2PDF_PHOTO_ROOT"),
		OutputDir:      os.Getenv("CV2PDF_OUTPUT_DIR"),
		Timeout:        os.Getenv("CV2PDF_TIMEOUT"),
		FontTimeout:    os.Getenv("CV2PDF_FONT_TIMEOUT"),
		BrowserBin:     os.Getenv("CV2PDF_BROWSER_BIN"),
		Addr:           os.Getenv("CV2PDF_ADDR"),
		Storage:        os.Getenv("CV2PDF_STORAGE"),
		MinIOEndpoint:  os.Getenv("CV2PDF_MINIO_ENDPOINT"),
		MinIOBucket:    os.Getenv("CV2PDF_MINIO_BUCKET"),
		MinIOAccessKey: os.Getenv("CV2PDF_MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("CV2PDF_MINIO_SECRET_KEY"),
	}

	if v, err := strconv.ParseBool(os.Getenv("CV2PDF_NO_SANDBOX")); err == nil {
		cfg.NoSandbox = v
	}
	if workers := os.Getenv("CV2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CV2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Precedence: flags > env > config file > defaults (flags are applied later).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Theme.Name, env.Theme)
	set(&cfg.Assets.ThemeDir, env.ThemeDir)
	set(&cfg.Assets.PhotoRoot, env.PhotoRoot)
	set(&cfg.Output.Dir, env.OutputDir)
	set(&cfg.Render.Timeout, env.Timeout)
	set(&cfg.Render.FontTimeout, env.FontTimeout)
	set(&cfg.Render.BrowserBin, env.BrowserBin)
	set(&cfg.Server.Addr, env.Addr)
	set(&cfg.Storage.Backend, env.Storage)
	set(&cfg.Storage.MinIO.Endpoint, env.MinIOEndpoint)
	set(&cfg.Storage.MinIO.Bucket, env.MinIOBucket)
	set(&cfg.Storage.MinIO.AccessKeyID, env.MinIOAccessKey)
	set(&cfg.Storage.MinIO.SecretAccessKey, env.MinIOSecretKey)

	if env.NoSandbox {
		cfg.Render.NoSandbox = true
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
}
