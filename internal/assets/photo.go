package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPhotoSize bounds a photo file read into memory.
const MaxPhotoSize = 10 << 20

// PhotoExtensions are probed in this order.
var PhotoExtensions = []string{"jpg", "jpeg", "png", "webp"}

// PhotoResolver loads stored photos as data URIs.
type PhotoResolver struct {
	fs *FilesystemLoader
}

// NewPhotoResolver creates a resolver rooted at root.
// Returns ErrInvalidBasePath if root is not a readable directory.
func NewPhotoResolver(root string) (*PhotoResolver, error) {
	fs, err := NewFilesystemLoader(root)
	if err != nil {
		return nil, err
	}
	return &PhotoResolver{fs: fs}, nil
}

// Root returns the resolved photo directory.
func (p *PhotoResolver) Root() string {
	return p.fs.BasePath()
}

// Resolve looks up <root>/<id>.<ext> for each of PhotoExtensions and returns
// the first match as a data URI. ok is false when no file exists.
func (p *PhotoResolver) Resolve(ctx context.Context, id string) (dataURI string, ok bool, err error) {
	if err := ValidateAssetName(id); err != nil {
		return "", false, err
	}

	for _, ext := range PhotoExtensions {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		path := filepath.Join(p.fs.basePath, id+"."+ext)
		if err := p.fs.verifyPathContainment(path); err != nil {
			return "", false, err
		}

		data, err := readPhoto(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", false, err
		}

		uri, err := DataURI(data)
		if err != nil {
			return "", false, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return uri, true, nil
	}
	return "", false, nil
}

func readPhoto(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetRead, filepath.Base(path))
	}
	if info.Size() > MaxPhotoSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPhotoTooLarge, info.Size(), MaxPhotoSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path validated by caller
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// DataURI encodes image bytes as a base64 data URI. The MIME type is sniffed
// from the content, not taken from the file extension.
func DataURI(data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPhoto, mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
