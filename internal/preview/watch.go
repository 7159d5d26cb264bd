package preview

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch starts an fsnotify watcher over the asset directories and drops the
// compositor caches on any change. Events are debounced: a screenshot export
// touches the file several times, one invalidation is enough.
func (s *Server) watch(ctx context.Context, dirs []string) error {
	if len(dirs) == 0 {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			s.logger.Warn("preview: watch failed",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
		}
	}

	go func() {
		defer w.Close()

		var debounce *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return

			case <-fire:
				s.invalidate()

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				s.logger.Debug("preview: asset changed", slog.String("path", ev.Name))
				if debounce == nil {
					debounce = time.NewTimer(200 * time.Millisecond)
					fire = debounce.C
				} else {
					debounce.Reset(200 * time.Millisecond)
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("preview: watcher error", slog.String("error", err.Error()))
			}
		}
	}()

	return nil
}
