// Package render turns the composition into pixels: it locates the active
// scene for a frame, composites the screenshot background and overlay states
// onto an RGBA canvas, and streams raw frames into ffmpeg.
package render

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ScreenshotStore loads and caches reference screenshots (PNG, one per
// screenshot ID). Same cache contract as the manifest resolver: lazy,
// process-lifetime, idempotent under concurrent first access, and failures
// are cached so a missing screenshot warns once and the scene renders on the
// plain backdrop.
type ScreenshotStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewScreenshotStore reads screenshots from dir as <id>.png.
func NewScreenshotStore(dir string, logger *slog.Logger) *ScreenshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenshotStore{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]image.Image),
	}
}

// Get returns the decoded screenshot or nil when it cannot be loaded.
func (s *ScreenshotStore) Get(id string) image.Image {
	s.mu.RLock()
	img, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return img
	}

	img, err := s.load(id)
	if err != nil {
		s.logger.Warn("screenshot: load failed",
			slog.String("screenshot", id),
			slog.String("error", err.Error()))
		img = nil
	}

	s.mu.Lock()
	if existing, ok := s.cache[id]; ok {
		img = existing
	} else {
		s.cache[id] = img
	}
	s.mu.Unlock()

	return img
}

func (s *ScreenshotStore) load(id string) (image.Image, error) {
	path := filepath.Join(s.dir, id+".png")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", id, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("screenshot %s: decode: %w", id, err)
	}
	return img, nil
}
