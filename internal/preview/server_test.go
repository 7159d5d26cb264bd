package preview

import (
	"encoding/json"
	"image/png"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/answerline/demoreel/internal/audio"
	"github.com/answerline/demoreel/internal/manifest"
	"github.com/answerline/demoreel/internal/render"
	"github.com/answerline/demoreel/internal/scenes"
	"github.com/answerline/demoreel/internal/timeline"
)

func testServer(t *testing.T) (*Server, *int) {
	t.Helper()

	track, err := audio.NewTrack(nil)
	require.NoError(t, err)

	comp := &scenes.Composition{
		FPS:    30,
		Width:  160,
		Height: 90,
		Timeline: timeline.Must([]timeline.Entry{
			{SceneID: "one", Duration: 40},
			{SceneID: "two", Duration: 20},
		}),
		Scenes: map[string]*scenes.Scene{
			"one": {ID: "one", Frames: 40},
			"two": {ID: "two", Frames: 20},
		},
		Audio: track,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	builds := 0
	factory := func() *render.Compositor {
		builds++
		resolver := manifest.NewResolver(manifest.DirLoader{Dir: t.TempDir()}, logger)
		screens := render.NewScreenshotStore(t.TempDir(), logger)
		return render.NewCompositor(comp, resolver, screens)
	}
	return NewServer(comp, factory, logger), &builds
}

func TestHandleFrame_ServesPNG(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest("GET", "/frames/0.png", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestHandleFrame_OutOfRangeIs404(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest("GET", "/frames/60.png", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, 404, rec.Code)
}

func TestHandleFrame_NonIntegerIs400(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest("GET", "/frames/abc.png", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestHandleComposition_Summary(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest("GET", "/composition", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		FPS         float64 `json:"fps"`
		Width       int     `json:"width"`
		Height      int     `json:"height"`
		TotalFrames int     `json:"totalFrames"`
		Scenes      []struct {
			ID     string `json:"id"`
			Frames int    `json:"frames"`
			Offset int    `json:"offset"`
		} `json:"scenes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 30.0, body.FPS)
	assert.Equal(t, 60, body.TotalFrames)
	require.Len(t, body.Scenes, 2)
	assert.Equal(t, "one", body.Scenes[0].ID)
	assert.Equal(t, 0, body.Scenes[0].Offset)
	assert.Equal(t, "two", body.Scenes[1].ID)
	assert.Equal(t, 40, body.Scenes[1].Offset)
}

func TestInvalidate_SwapsCompositor(t *testing.T) {
	s, builds := testServer(t)
	require.Equal(t, 1, *builds, "constructor builds the first compositor")

	before := s.current()
	s.invalidate()
	assert.Equal(t, 2, *builds)
	assert.NotSame(t, before, s.current(), "asset changes must drop the caches")
}
