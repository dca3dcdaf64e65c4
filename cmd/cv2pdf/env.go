package main

import (
	"io"
	"os"

	"github.com/alnah/go-cv2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Renderer replaces headless Chrome when set.
	Renderer cv2pdf.Renderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
