// Package testutil holds fixtures and assertions shared by pb's tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// MinimalPlaybook is the smallest dataset that passes validation: one item
// per topic, one objection and one scenario pointing at both.
const MinimalPlaybook = `
sections:
  - {topic: traffic, title: Entrada, checklist: [{id: a, label: "Puerta:", body: uno}]}
  - {topic: conversion, title: Venta, checklist: [{id: b, label: "Saludo:", body: dos}]}
  - {topic: ticket-size, title: Ticket, checklist: [{id: c, label: "Combo:", body: tres}]}
objections:
  - {id: x, title: Equis, response: Hola., action: Hacer algo. Después otra cosa.}
scenarios:
  - {id: s1, label: Uno, topic: conversion, highlights: [b], objection: x}
`

// AssertJSONEqual compares two values after JSON round-tripping.
// Useful for comparing structs that may have different Go representations
// but equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		// Report the first differing line.
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")

		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file %s mismatch at line %d:\nexpected: %s\nactual:   %s",
					g.name, i+1, expLine, actLine)
				return
			}
		}
		g.t.Errorf("golden file %s mismatch (length differs)", g.name)
	}
}

// Environment helpers

// IsolateXDG points XDG config and state dirs at fresh temp dirs and clears
// the PB_* overrides, so a test never reads or writes the real home.
func IsolateXDG(t *testing.T) (configDir, stateDir string) {
	t.Helper()

	configDir, stateDir = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("XDG_STATE_HOME", stateDir)
	t.Setenv("PB_CONTENT", "")
	t.Setenv("PB_DEBUG", "")
	return configDir, stateDir
}

// WriteFile writes data under dir, creating parents, and returns the path.
func WriteFile(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WritePlaybook writes a dataset YAML into a temp dir and returns its path.
func WritePlaybook(t *testing.T, yaml string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "playbook.yaml", yaml)
}
