package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// fakeRenderer prints one page per document without Chrome.
type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (f *fakeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 10)
	doc.AddPage()
	doc.Text(10, 10, fmt.Sprintf("%d bytes", len(html)))
	var buf bytes.Buffer
	err := doc.Output(&buf)
	return buf.Bytes(), err
}

func (f *fakeRenderer) Close() error { return nil }

func (f *fakeRenderer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// testEnv captures output and injects a fake renderer when r is set.
func testEnv(r *fakeRenderer) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}
	if r != nil {
		env.Renderer = r
	}
	return env, &stdout, &stderr
}

const yamlCV = `frontmatter:
  name: Jane Doe
  email: jane@example.com
sections:
  - type: skills
    title: Skills
    content: "**Languages:** Go, SQL"
  - type: experience
    title: Experience
    content:
      - title: Engineer
        company: Acme
        bullets: [Built X]
`

const markdownCV = `---
name: John Roe
title: Designer
---

## Experience

### Designer
Studio | 2020 - 2024 | Paris

- Led the rebrand
`

const jsonCV = `{"frontmatter": {"name": "Ada"}, "sections": [{"type": "summary", "title": "Summary", "content": "Engineer."}]}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// clearEnv unsets CV2PDF_* variables for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
	for _, kv := range os.Environ() {
		if name := strings.SplitN(kv, "=", 2)[0]; strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
		}
	}
}
