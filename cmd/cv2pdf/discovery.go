package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
)

// Sentinel errors for input handling.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("CV file must have a .yaml, .yml, .json, .md or .markdown extension")
	ErrReadInput        = errors.New("failed to read CV file")
)

// inputFile is one CV to export.
type inputFile struct {
	InputPath  string
	OutputPath string
}

// isCVFile reports whether path has a supported CV extension.
func isCVFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".md", ".markdown":
		return true
	}
	return false
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// discoverFiles finds the CVs under inputPath. Directories are walked
// recursively and mirrored under outputDir.
func discoverFiles(inputPath, outputDir string) ([]inputFile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !info.IsDir() {
		if !isCVFile(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []inputFile{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var files []inputFile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isCVFile(path) {
			return nil
		}
		files = append(files, inputFile{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the PDF path for a CV file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}
	if strings.HasSuffix(strings.ToLower(outputDir), ".pdf") {
		return outputDir
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base+".pdf")
		}
	}
	return filepath.Join(outputDir, base+".pdf")
}

// readContent parses a CV file by extension: markdown with frontmatter, or
// a YAML/JSON document.
func readContent(path string) (*content.Content, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	var c *content.Content
	if isMarkdown(path) {
		c, err = content.ParseMarkdown(data)
	} else {
		c, err = content.Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	return c, nil
}

// htmlOutputPath returns the path of one print document next to a PDF.
func htmlOutputPath(pdfPath, layer string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "." + layer + ".html"
}
