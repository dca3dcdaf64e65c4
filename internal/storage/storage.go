// Package storage persists finished PDFs on local disk or in an S3-compatible
// bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// Sentinel errors.
var (
	ErrInvalidName = errors.New("invalid object name")
	ErrEmptyData   = errors.New("no data to store")
)

// Store persists a named object and returns where it landed: a file path for
// local storage, an s3:// URI for buckets.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// ValidateName accepts a plain file name: no directories, no traversal.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// LocalStore writes objects into a directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &LocalStore{dir: abs}, nil
}

// Dir returns the absolute output directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to <dir>/<name> atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyData
	}
	path := filepath.Join(s.dir, name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Compile-time interface checks.
var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*MinIOStore)(nil)
)
