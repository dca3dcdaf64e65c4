package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrThemeNotFound indicates the requested theme preset does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrPhotoTooLarge indicates a photo file exceeds MaxPhotoSize.
	ErrPhotoTooLarge = errors.New("photo too large")

	// ErrUnsupportedPhoto indicates the photo content is not a supported image.
	ErrUnsupportedPhoto = errors.New("unsupported photo format")
)
