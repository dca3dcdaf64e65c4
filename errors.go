package cv2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilContent     = errors.New("CV content cannot be nil")
	ErrEmptyContent   = errors.New("CV content has nothing to render")
	ErrInvalidTheme   = errors.New("invalid theme")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrRenderDocument = errors.New("document rendering failed")
	ErrMerge          = errors.New("PDF merge failed")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrPhotoResolve   = errors.New("failed to resolve photo")

	// ErrInvalidFilename indicates an output name with path components.
	ErrInvalidFilename = errors.New("invalid output filename")
)
