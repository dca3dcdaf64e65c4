package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-cv2pdf/internal/config"
)

// Tests in this file mutate the process environment and cannot run in parallel.

// ---------------------------------------------------------------------------
// TestLoadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("CV2PDF_THEME", "modern")
	t.Setenv("CV2PDF_PHOTO_ROOT", "/srv/photos")
	t.Setenv("CV2PDF_TIMEOUT", "90s")
	t.Setenv("CV2PDF_NO_SANDBOX", "1")
	t.Setenv("CV2PDF_WORKERS", "4")
	t.Setenv("CV2PDF_STORAGE", "minio")
	t.Setenv("CV2PDF_MINIO_SECRET_KEY", "s3cr3t")

	env := loadEnvConfig()

	if env.Theme != "modern" || env.PhotoRoot != "/srv/photos" || env.Timeout != "90s" {
		t.Errorf("strings = %+v", env)
	}
	if !env.NoSandbox {
		t.Error("NoSandbox not parsed")
	}
	if env.Workers != 4 {
		t.Errorf("Workers = %d, want 4", env.Workers)
	}
	if env.Storage != "minio" || env.MinIOSecretKey != "s3cr3t" {
		t.Errorf("storage = %q / %q", env.Storage, env.MinIOSecretKey)
	}
}

func TestLoadEnvConfig_IgnoresInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("CV2PDF_NO_SANDBOX", "maybe")
	t.Setenv("CV2PDF_WORKERS", "-3")

	env := loadEnvConfig()
	if env.NoSandbox || env.Workers != 0 {
		t.Errorf("invalid values should be ignored, got sandbox-off=%v workers=%d", env.NoSandbox, env.Workers)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - env overrides file, flags override env
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Theme.Name = "compact"
	cfg.Output.Dir = "/from/file"

	applyEnvConfig(&envConfig{
		Theme:          "modern",
		Addr:           ":9090",
		Workers:        3,
		NoSandbox:      true,
		Storage:        config.BackendMinIO,
		MinIOEndpoint:  "minio:9000",
		MinIOBucket:    "cvs",
		MinIOAccessKey: "key",
	}, cfg)

	if cfg.Theme.Name != "modern" {
		t.Errorf("Theme = %q, want env value", cfg.Theme.Name)
	}
	if cfg.Output.Dir != "/from/file" {
		t.Errorf("Output.Dir = %q, unset env must keep the file value", cfg.Output.Dir)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Workers != 3 || !cfg.Render.NoSandbox {
		t.Errorf("server/render = %+v %+v", cfg.Server, cfg.Render)
	}
	m := cfg.Storage.MinIO
	if cfg.Storage.Backend != config.BackendMinIO || m.Endpoint != "minio:9000" || m.Bucket != "cvs" || m.AccessKeyID != "key" {
		t.Errorf("storage = %+v", cfg.Storage)
	}

	applyAssetFlags(assetFlags{theme: "classic"}, cfg)
	if cfg.Theme.Name != "classic" {
		t.Errorf("flag should override env, got %q", cfg.Theme.Name)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("CV2PDF_THEME", "modern")
	t.Setenv("CV2PDF_TIMOUT", "10s")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "CV2PDF_TIMOUT") {
		t.Errorf("typo not reported: %q", out)
	}
	if strings.Contains(out, "CV2PDF_THEME") {
		t.Errorf("known variable reported: %q", out)
	}
}
