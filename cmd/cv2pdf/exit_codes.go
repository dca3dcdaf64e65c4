package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/hints"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// Exit codes for the cv2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme or CV document
	ExitIO      = 3 // File not found, permission denied, storage
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, cv2pdf.ErrBrowserConnect) ||
		errors.Is(err, cv2pdf.ErrPageCreate) ||
		errors.Is(err, cv2pdf.ErrPageLoad) ||
		errors.Is(err, cv2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrStorageInit) ||
		errors.Is(err, cv2pdf.ErrWriteOutput) ||
		errors.Is(err, cv2pdf.ErrPhotoResolve) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitIO
	}

	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cv2pdf.ErrNilContent) ||
		errors.Is(err, cv2pdf.ErrEmptyContent) ||
		errors.Is(err, cv2pdf.ErrInvalidTheme) ||
		errors.Is(err, cv2pdf.ErrInvalidFilename) ||
		errors.Is(err, theme.ErrInvalidTheme) ||
		errors.Is(err, content.ErrMarkdownParse) ||
		errors.Is(err, content.ErrInvalidContent) ||
		errors.Is(err, content.ErrInvalidItem) ||
		errors.Is(err, ErrThemeLoad) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, cv2pdf.ErrPhotoResolve),
		errors.Is(err, assets.ErrInvalidBasePath) && !errors.Is(err, ErrThemeLoad):
		return hints.ForPhoto()
	case errors.Is(err, ErrStorageInit):
		return hints.ForStorage()
	case errors.Is(err, cv2pdf.ErrWriteOutput), errors.Is(err, ErrWriteHTML):
		return hints.ForOutputDirectory()
	}
	return ""
}
