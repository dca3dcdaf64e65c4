package assets

import "github.com/alnah/go-cv2pdf/internal/theme"

// ThemeLoader defines the contract for loading theme presets by name.
// Implementations may load from embedded assets, filesystem, object storage, etc.
type ThemeLoader interface {
	// LoadTheme loads and validates a theme by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (*theme.Config, error)
}
