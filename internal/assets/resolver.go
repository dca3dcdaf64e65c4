package assets

import (
	"errors"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the theme is not found in the custom location.
type AssetResolver struct {
	custom   ThemeLoader // nil if no custom path configured
	embedded ThemeLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded presets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the custom loader first if available.
func (r *AssetResolver) LoadTheme(name string) (*theme.Config, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	th, err := r.custom.LoadTheme(name)
	if err == nil {
		return th, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors.
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}

	return r.embedded.LoadTheme(name)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*AssetResolver)(nil)
