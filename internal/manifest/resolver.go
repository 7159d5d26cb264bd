package manifest

import (
	"log/slog"
	"sync"

	"github.com/answerline/demoreel/internal/geom"
)

// Resolver caches parsed manifests and answers element lookups. The cache is
// populated lazily on first lookup and never evicted; manifests are immutable
// build artifacts, so a concurrent duplicate load wastes work but cannot go
// wrong. All lookup failures degrade to nil so a scene missing coordinates
// drops the overlay instead of aborting the render.
type Resolver struct {
	loader Loader
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*entry
}

// entry is a cached load result. byName is nil when the load failed; the
// failure is cached too so a broken manifest warns once, not once per frame.
type entry struct {
	byName map[string]Element
}

// NewResolver wraps a loader with a process-lifetime cache.
func NewResolver(loader Loader, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		loader: loader,
		logger: logger,
		cache:  make(map[string]*entry),
	}
}

// Resolve maps (screenshotID, elementName) to a rectangle. It returns nil
// when the manifest is missing, unparsable, or has no element with that
// name; callers treat nil as "skip this overlay".
func (r *Resolver) Resolve(screenshotID, elementName string) *geom.Rect {
	e := r.lookup(screenshotID)
	if e.byName == nil {
		return nil
	}

	el, ok := e.byName[elementName]
	if !ok {
		r.logger.Warn("manifest: element not found",
			slog.String("screenshot", screenshotID),
			slog.String("element", elementName))
		return nil
	}

	rect := el.Rect()
	return &rect
}

func (r *Resolver) lookup(screenshotID string) *entry {
	r.mu.RLock()
	e, ok := r.cache[screenshotID]
	r.mu.RUnlock()
	if ok {
		return e
	}

	// Load outside the lock; a racing goroutine may parse the same file,
	// which is harmless because the result is identical.
	e = &entry{}
	m, err := r.loader.Load(screenshotID)
	if err != nil {
		r.logger.Warn("manifest: load failed",
			slog.String("screenshot", screenshotID),
			slog.String("error", err.Error()))
	} else {
		e.byName = make(map[string]Element, len(m.Elements))
		for _, el := range m.Elements {
			e.byName[el.Name] = el
		}
	}

	r.mu.Lock()
	if existing, ok := r.cache[screenshotID]; ok {
		// Keep the first stored result so repeated lookups stay identical.
		e = existing
	} else {
		r.cache[screenshotID] = e
	}
	r.mu.Unlock()

	return e
}
