package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

//go:embed themes/*.yaml
var themes embed.FS

const themeExt = ".yaml"

// EmbeddedLoader loads theme presets from the embedded filesystem.
// Implements ThemeLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a built-in theme preset by name.
func (e *EmbeddedLoader) LoadTheme(name string) (*theme.Config, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	data, err := themes.ReadFile("themes/" + name + themeExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	th, err := theme.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("embedded theme %q: %w", name, err)
	}
	return th, nil
}

// Names lists the built-in theme presets, sorted.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(themes, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), themeExt); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
