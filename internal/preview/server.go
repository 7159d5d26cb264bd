// Package preview serves single composited frames over HTTP so designers
// can scrub the demo without rendering a video. Manifest or screenshot
// edits on disk invalidate the caches automatically.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/answerline/demoreel/internal/render"
	"github.com/answerline/demoreel/internal/scenes"
	"github.com/answerline/demoreel/internal/timeline"
)

// compositorFactory builds a fresh compositor with empty caches. The watcher
// calls it whenever assets change on disk; the engine caches themselves are
// append-only, so replacing the compositor is the only way to refresh.
type compositorFactory func() *render.Compositor

// Server is the preview HTTP server.
type Server struct {
	comp    *scenes.Composition
	factory compositorFactory
	logger  *slog.Logger

	mu         sync.RWMutex
	compositor *render.Compositor
}

// NewServer builds a preview server for the composition. factory must
// return a compositor with freshly constructed resolver and screenshot
// store.
func NewServer(comp *scenes.Composition, factory func() *render.Compositor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		comp:       comp,
		factory:    factory,
		logger:     logger,
		compositor: factory(),
	}
}

// Router returns the preview routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/composition", s.handleComposition)
	r.Get("/frames/{frame}.png", s.handleFrame)
	return r
}

// ListenAndServe runs the server until ctx is cancelled. watchDirs are
// asset directories whose changes drop the caches.
func (s *Server) ListenAndServe(ctx context.Context, addr string, watchDirs ...string) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.watch(watchCtx, watchDirs); err != nil {
		return err
	}

	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("preview: listening", slog.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// invalidate swaps in a fresh compositor with empty caches.
func (s *Server) invalidate() {
	fresh := s.factory()
	s.mu.Lock()
	s.compositor = fresh
	s.mu.Unlock()
	s.logger.Info("preview: caches dropped after asset change")
}

func (s *Server) current() *render.Compositor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compositor
}

func (s *Server) handleFrame(w http.ResponseWriter, req *http.Request) {
	frame, err := strconv.Atoi(chi.URLParam(req, "frame"))
	if err != nil {
		http.Error(w, "frame must be an integer", http.StatusBadRequest)
		return
	}

	img, err := s.current().RenderFrame(frame)
	if err != nil {
		if errors.Is(err, timeline.ErrFrameOutOfRange) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("preview: render failed",
			slog.Int("frame", frame),
			slog.String("error", err.Error()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.logger.Warn("preview: encode failed", slog.String("error", err.Error()))
	}
}

func (s *Server) handleComposition(w http.ResponseWriter, _ *http.Request) {
	type sceneInfo struct {
		ID     string `json:"id"`
		Frames int    `json:"frames"`
		Offset int    `json:"offset"`
	}

	offset := 0
	var list []sceneInfo
	for _, e := range s.comp.Timeline.Entries() {
		list = append(list, sceneInfo{ID: e.SceneID, Frames: e.Duration, Offset: offset})
		offset += e.Duration
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"fps":         s.comp.FPS,
		"width":       s.comp.Width,
		"height":      s.comp.Height,
		"totalFrames": s.comp.Timeline.Duration(),
		"scenes":      list,
	})
}
