package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/hints"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", cv2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", cv2pdf.ErrPageCreate, ExitBrowser},
		{"page load", cv2pdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", cv2pdf.ErrPDFGeneration, ExitBrowser},
		{"render wrapping browser", fmt.Errorf("%w: %w", cv2pdf.ErrRenderDocument, cv2pdf.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"storage init", ErrStorageInit, ExitIO},
		{"write output", cv2pdf.ErrWriteOutput, ExitIO},
		{"photo resolve", cv2pdf.ErrPhotoResolve, ExitIO},
		{"invalid photo root", assets.ErrInvalidBasePath, ExitIO},
		{"malformed input wins over parse", fmt.Errorf("%w: %w", ErrReadInput, content.ErrInvalidItem), ExitIO},

		// Usage errors (exit 2)
		{"help", flag.ErrHelp, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"nil content", cv2pdf.ErrNilContent, ExitUsage},
		{"empty content", cv2pdf.ErrEmptyContent, ExitUsage},
		{"invalid theme", cv2pdf.ErrInvalidTheme, ExitUsage},
		{"invalid filename", cv2pdf.ErrInvalidFilename, ExitUsage},
		{"theme validation", theme.ErrInvalidTheme, ExitUsage},
		{"markdown parse", content.ErrMarkdownParse, ExitUsage},
		{"theme load", fmt.Errorf("%w: %w", ErrThemeLoad, assets.ErrThemeNotFound), ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"unexpected args", ErrUnexpectedArgs, ExitUsage},
		{"invalid flag", ErrInvalidFlag, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d outside (2, 126)", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string // substring; "" means no hint
	}{
		{"timeout", fmt.Errorf("render: %w", context.DeadlineExceeded), "timeout"},
		{"photo", cv2pdf.ErrPhotoResolve, "photo"},
		{"photo root", fmt.Errorf("photo root: %w", assets.ErrInvalidBasePath), "photo"},
		{"storage", ErrStorageInit, "hint:"},
		{"write", cv2pdf.ErrWriteOutput, "hint:"},
		{"theme dir is not a photo issue", fmt.Errorf("%w: %w", ErrThemeLoad, assets.ErrInvalidBasePath), ""},
		{"unrelated", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantHint == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(strings.ToLower(got), tt.wantHint) {
				t.Errorf("hintFor() = %q, want it to mention %q", got, tt.wantHint)
			}
		})
	}
}

func TestHintFor_Browser(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: sidebar layer: %w", cv2pdf.ErrRenderDocument, cv2pdf.ErrBrowserConnect)
	if got, want := hintFor(err), hints.ForBrowserConnect(); got != want {
		t.Errorf("hintFor() = %q, want %q", got, want)
	}
}
