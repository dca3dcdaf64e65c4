package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestValidateName
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"cv.pdf", false},
		{"jane-doe-2024.pdf", false},
		{"", true},
		{".", true},
		{"..", true},
		{"../cv.pdf", true},
		{"out/cv.pdf", true},
		{"out\\cv.pdf", true},
		{"cv\x00.pdf", true},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", tt.name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLocalStore
// ---------------------------------------------------------------------------

func TestLocalStore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore() error: %v", err)
	}

	loc, err := store.Put(context.Background(), "cv.pdf", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if loc != filepath.Join(store.Dir(), "cv.pdf") {
		t.Errorf("location = %q", loc)
	}
	got, err := os.ReadFile(loc)
	if err != nil || string(got) != "%PDF-1.7" {
		t.Errorf("stored content = %q, %v", got, err)
	}

	if _, err := store.Put(context.Background(), "../escape.pdf", []byte("x")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("traversal error = %v, want ErrInvalidName", err)
	}
	if _, err := store.Put(context.Background(), "empty.pdf", nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("empty data error = %v, want ErrEmptyData", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, "late.pdf", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestMinIOConfig - connection-free checks
// ---------------------------------------------------------------------------

func TestMinIOConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     MinIOConfig
		wantErr bool
	}{
		{"complete", MinIOConfig{Endpoint: "localhost:9000", Bucket: "cvs"}, false},
		{"path lookup", MinIOConfig{Endpoint: "s3.local", Bucket: "cvs", BucketLookup: "PATH"}, false},
		{"missing endpoint", MinIOConfig{Bucket: "cvs"}, true},
		{"missing bucket", MinIOConfig{Endpoint: "localhost:9000"}, true},
		{"bad lookup", MinIOConfig{Endpoint: "localhost:9000", Bucket: "cvs", BucketLookup: "sideways"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinIOStore_ObjectKey(t *testing.T) {
	t.Parallel()

	if got := (&MinIOStore{}).ObjectKey("cv.pdf"); got != "cv.pdf" {
		t.Errorf("ObjectKey() without prefix = %q", got)
	}
	if got := (&MinIOStore{prefix: "exports/2024"}).ObjectKey("cv.pdf"); got != "exports/2024/cv.pdf" {
		t.Errorf("ObjectKey() with prefix = %q", got)
	}
}
