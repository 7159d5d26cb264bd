package render

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/answerline/demoreel/internal/audio"
	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
	"github.com/answerline/demoreel/internal/overlay"
	"github.com/answerline/demoreel/internal/scenes"
	"github.com/answerline/demoreel/internal/timeline"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testComposition builds a two-scene composition backed by temp-dir assets:
// one 400x250 screenshot with a manifest, scaled onto a 320x200 canvas.
func testComposition(t *testing.T) (*scenes.Composition, *Compositor) {
	t.Helper()

	shotDir := t.TempDir()
	manifestDir := t.TempDir()

	shot := image.NewRGBA(image.Rect(0, 0, 400, 250))
	for y := 0; y < 250; y++ {
		for x := 0; x < 400; x++ {
			shot.SetRGBA(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(shotDir, "shot.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, shot))
	require.NoError(t, f.Close())

	manifestJSON := `{
		"screenshotId": "shot",
		"resolutionWidth": 400,
		"resolutionHeight": 250,
		"capturedAt": "2026-08-12T09:30:00Z",
		"elements": [
			{"name": "box", "selector": "#box", "x": 100, "y": 50, "width": 100, "height": 50, "centerX": 150, "centerY": 75}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(manifestDir, "shot.json"), []byte(manifestJSON), 0o644))

	track, err := audio.NewTrack(nil)
	require.NoError(t, err)

	comp := &scenes.Composition{
		FPS:    30,
		Width:  320,
		Height: 200,
		Timeline: timeline.Must([]timeline.Entry{
			{SceneID: "tour", Duration: 100},
			{SceneID: "plain", Duration: 50},
		}),
		Scenes: map[string]*scenes.Scene{
			"tour": {
				ID:         "tour",
				Frames:     100,
				Screenshot: "shot",
				Overlays: []overlay.Overlay{
					overlay.Highlight{
						StartFrame: 0,
						Duration:   80,
						Target:     overlay.AtElement("shot", "box"),
					},
					overlay.Banner{
						StartFrame: 0,
						Duration:   100,
						Text:       "hello",
						Anchor:     overlay.AnchorBottom,
					},
				},
			},
			"plain": {
				ID:     "plain",
				Frames: 50,
				Overlays: []overlay.Overlay{
					overlay.Cursor{
						StartFrame:   0,
						MoveDuration: 20,
						ClickWindow:  10,
						From:         geom.Point{X: 10, Y: 10},
						To:           overlay.AtRect(geom.Rect{X: 150, Y: 90, Width: 20, Height: 20}),
					},
				},
			},
		},
		Audio: track,
	}

	resolver := manifest.NewResolver(manifest.DirLoader{Dir: manifestDir}, quietLogger())
	screens := NewScreenshotStore(shotDir, quietLogger())
	return comp, NewCompositor(comp, resolver, screens)
}

func TestRenderFrame_CanvasSizeAndBackground(t *testing.T) {
	_, c := testComposition(t)

	img, err := c.RenderFrame(10)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 200), img.Bounds())

	// Screenshot fills the canvas: a pixel away from all overlays carries
	// the screenshot gray, not the backdrop.
	px := img.RGBAAt(10, 10)
	assert.InDelta(t, 200, int(px.R), 1)
	assert.InDelta(t, 200, int(px.G), 1)
}

func TestRenderFrame_HighlightDrawnAtScaledManifestRect(t *testing.T) {
	_, c := testComposition(t)

	img, err := c.RenderFrame(40)
	require.NoError(t, err)

	// Manifest box (100,50 100x50) in 400x250 space lands at (80,40) in
	// 320x200 canvas space; the outline stroke sits just inside.
	assert.Equal(t, accentColor, img.RGBAAt(81, 41),
		"highlight outline at the scaled manifest position")
	assert.NotEqual(t, accentColor, img.RGBAAt(120, 65),
		"box interior stays unfilled")
}

func TestRenderFrame_SceneWithoutScreenshotUsesBackdrop(t *testing.T) {
	_, c := testComposition(t)

	img, err := c.RenderFrame(110) // "plain" scene, local frame 10
	require.NoError(t, err)
	assert.Equal(t, backdropColor, img.RGBAAt(5, 5))

	// Cursor is halfway through an ease-in-out move from (10,10) to the
	// target center (160,100): a white disc sits at the midpoint (no
	// screenshot, so coordinates are canvas space).
	assert.Equal(t, cursorColor, img.RGBAAt(85, 55))
}

func TestRenderFrame_MissingScreenshotDegradesToBackdrop(t *testing.T) {
	comp, _ := testComposition(t)
	comp.Scenes["tour"].Screenshot = "never-captured"

	resolver := manifest.NewResolver(manifest.DirLoader{Dir: t.TempDir()}, quietLogger())
	screens := NewScreenshotStore(t.TempDir(), quietLogger())
	c := NewCompositor(comp, resolver, screens)

	img, err := c.RenderFrame(10)
	require.NoError(t, err, "missing assets degrade, never crash the render")
	assert.Equal(t, backdropColor, img.RGBAAt(10, 10))
}

func TestRenderFrame_OutOfDomain(t *testing.T) {
	_, c := testComposition(t)

	_, err := c.RenderFrame(-1)
	assert.ErrorIs(t, err, timeline.ErrFrameOutOfRange)

	_, err = c.RenderFrame(150)
	assert.ErrorIs(t, err, timeline.ErrFrameOutOfRange)
}

func TestRenderFrame_Deterministic(t *testing.T) {
	_, c := testComposition(t)

	a, err := c.RenderFrame(42)
	require.NoError(t, err)
	b, err := c.RenderFrame(42)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix, "same frame renders bit-identically")
}
