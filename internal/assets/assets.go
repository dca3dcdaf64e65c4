package assets

import "github.com/alnah/go-cv2pdf/internal/theme"

// DefaultThemeName is the built-in preset used when none is configured.
const DefaultThemeName = "classic"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme preset by name.
// Returns ErrThemeNotFound if the preset does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTheme(name string) (*theme.Config, error) {
	return defaultLoader.LoadTheme(name)
}

// ThemeNames lists the built-in theme presets.
func ThemeNames() []string {
	return defaultLoader.Names()
}
