package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Storage.Backend != BackendLocal {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendLocal)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.Workers != 0 {
		t.Errorf("Server.Workers = %d, want 0 (auto)", cfg.Server.Workers)
	}
	if cfg.Theme.Name != "" || cfg.Assets.PhotoRoot != "" {
		t.Error("theme and photo root should be unset")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "durations",
			mutate: func(c *Config) { c.Render = RenderConfig{Timeout: "30s", FontTimeout: "5s", SettleDelay: "0s"} },
		},
		{
			name:    "bad duration",
			mutate:  func(c *Config) { c.Render.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Render.FontTimeout = "0s" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative settle delay",
			mutate:  func(c *Config) { c.Render.SettleDelay = "-1s" },
			wantErr: ErrInvalidValue,
		},
		{
			name: "minio",
			mutate: func(c *Config) {
				c.Storage.Backend = "MinIO"
				c.Storage.MinIO.Endpoint = "localhost:9000"
				c.Storage.MinIO.Bucket = "cvs"
			},
		},
		{
			name:    "minio without bucket",
			mutate:  func(c *Config) { c.Storage.Backend = BackendMinIO; c.Storage.MinIO.Endpoint = "localhost:9000" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "ftp" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Server.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative body limit",
			mutate:  func(c *Config) { c.Server.BodyLimitMB = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "path too long",
			mutate:  func(c *Config) { c.Assets.PhotoRoot = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderConfig_Durations(t *testing.T) {
	t.Parallel()

	d, err := RenderConfig{Timeout: "1m", SettleDelay: "200ms"}.Durations()
	if err != nil {
		t.Fatal(err)
	}
	if d.Timeout != time.Minute || d.FontTimeout != 0 || d.SettleDelay != 200*time.Millisecond {
		t.Errorf("Durations() = %+v", d)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "cv.yaml", `
render:
  timeout: 45s
  no_sandbox: true
assets:
  photo_root: /srv/photos
storage:
  backend: minio
  minio:
    endpoint: minio:9000
    bucket: cvs
    prefix: exports
server:
  workers: 4
theme:
  name: modern
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Render.Timeout != "45s" || !cfg.Render.NoSandbox {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Assets.PhotoRoot != "/srv/photos" {
		t.Errorf("PhotoRoot = %q", cfg.Assets.PhotoRoot)
	}
	if cfg.Storage.MinIO.Bucket != "cvs" || cfg.Storage.MinIO.Prefix != "exports" {
		t.Errorf("MinIO = %+v", cfg.Storage.MinIO)
	}
	if cfg.Server.Workers != 4 || cfg.Theme.Name != "modern" {
		t.Errorf("Server/Theme = %+v / %+v", cfg.Server, cfg.Theme)
	}
	// Unset fields keep defaults.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "nope.yaml"), ErrConfigNotFound},
		{"missing name", "cv2pdf-test-config-that-does-not-exist", ErrConfigNotFound},
		{"unknown field", writeConfig(t, dir, "unknown.yaml", "render:\n  speed: fast\n"), ErrConfigParse},
		{"malformed", writeConfig(t, dir, "bad.yaml", "render: [\n"), ErrConfigParse},
		{"invalid value", writeConfig(t, dir, "workers.yaml", "server:\n  workers: -2\n"), ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
		})
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 || paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Fatalf("SearchPaths() = %v", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q outside %s", p, AppName)
		}
	}
}
