// Package manifest resolves semantic UI-element names to pixel rectangles.
// Manifests are JSON documents produced offline by the DOM-inspection tool,
// one per reference screenshot, and are read-only at render time.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/answerline/demoreel/internal/geom"
)

// Element is one named UI element captured from a screenshot.
type Element struct {
	Name     string  `json:"name"`
	Selector string  `json:"selector"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
}

// Rect returns the element bounds as a rectangle.
func (e Element) Rect() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Manifest is the coordinate record for one reference screenshot. Element
// names are unique within a manifest.
type Manifest struct {
	ScreenshotID     string    `json:"screenshotId"`
	ResolutionWidth  int       `json:"resolutionWidth"`
	ResolutionHeight int       `json:"resolutionHeight"`
	CapturedAt       string    `json:"capturedAt"`
	Elements         []Element `json:"elements"`
}

// Loader fetches the manifest for a screenshot. Implementations must be safe
// for concurrent use; redundant loads for the same ID are acceptable.
type Loader interface {
	Load(screenshotID string) (*Manifest, error)
}

// DirLoader reads manifests from a directory of <screenshotID>.json files.
type DirLoader struct {
	Dir string
}

// Load reads and parses one manifest file.
func (l DirLoader) Load(screenshotID string) (*Manifest, error) {
	path := filepath.Join(l.Dir, screenshotID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", screenshotID, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: parse: %w", screenshotID, err)
	}
	return &m, nil
}
