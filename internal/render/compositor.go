package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
	"github.com/answerline/demoreel/internal/overlay"
	"github.com/answerline/demoreel/internal/scenes"
)

// Brand palette for backdrop, highlights and banners.
var (
	backdropColor  = color.RGBA{R: 0x12, G: 0x16, B: 0x24, A: 0xff}
	accentColor    = color.RGBA{R: 0xff, G: 0xb0, B: 0x20, A: 0xff}
	bannerBgColor  = color.RGBA{R: 0x1c, G: 0x22, B: 0x36, A: 0xe6}
	bannerFgColor  = color.RGBA{R: 0xf4, G: 0xf6, B: 0xfb, A: 0xff}
	cursorColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	cursorRingGray = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	typedTextColor = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	fieldBgColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Compositor renders a fully determined frame image for any frame number.
// It holds no per-frame state, so frames can be composited concurrently and
// in any order.
type Compositor struct {
	comp     *scenes.Composition
	resolver *manifest.Resolver
	screens  *ScreenshotStore
}

// NewCompositor wires the composition to its manifest resolver and
// screenshot store.
func NewCompositor(comp *scenes.Composition, resolver *manifest.Resolver, screens *ScreenshotStore) *Compositor {
	return &Compositor{comp: comp, resolver: resolver, screens: screens}
}

// Duration returns the composition length in frames.
func (c *Compositor) Duration() int {
	return c.comp.Timeline.Duration()
}

// RenderFrame composites the given absolute frame onto a new canvas.
func (c *Compositor) RenderFrame(frame int) (*image.RGBA, error) {
	cue, err := c.comp.Timeline.Locate(frame)
	if err != nil {
		return nil, err
	}

	scene, ok := c.comp.Scenes[cue.SceneID]
	if !ok {
		return nil, fmt.Errorf("render: timeline references unknown scene %q", cue.SceneID)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, c.comp.Width, c.comp.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backdropColor), image.Point{}, draw.Src)

	// Screenshot space → canvas space scale. Stays 1:1 for scenes without
	// a background; manifests and screenshots share the same pixel space.
	sx, sy := 1.0, 1.0
	if bg := scene.BackgroundAt(cue.LocalFrame); bg != "" {
		if img := c.screens.Get(bg); img != nil {
			b := img.Bounds()
			xdraw.BiLinear.Scale(canvas, canvas.Bounds(), img, b, xdraw.Src, nil)
			sx = float64(c.comp.Width) / float64(b.Dx())
			sy = float64(c.comp.Height) / float64(b.Dy())
		}
	}

	local := float64(cue.LocalFrame)

	for _, still := range scene.Stills {
		if local < still.StartFrame || still.Image == nil {
			continue
		}
		target := still.Image.Bounds().Add(image.Pt(still.X, still.Y).Sub(still.Image.Bounds().Min))
		draw.Draw(canvas, target.Intersect(canvas.Bounds()), still.Image, still.Image.Bounds().Min, draw.Over)
	}

	for _, ov := range scene.Overlays {
		switch o := ov.(type) {
		case overlay.Highlight:
			if st, ok := o.State(local, c.resolver); ok {
				c.drawHighlight(canvas, st, sx, sy)
			}
		case overlay.TypedText:
			if st, ok := o.State(local, c.resolver); ok {
				c.drawTypedText(canvas, st, sx, sy)
			}
		case overlay.Cursor:
			if st, ok := o.State(local, c.resolver); ok {
				c.drawCursor(canvas, st, sx, sy)
			}
		case overlay.Banner:
			if st, ok := o.State(local); ok {
				c.drawBanner(canvas, st)
			}
		}
	}

	return canvas, nil
}

func scaleRect(r geom.Rect, sx, sy float64) image.Rectangle {
	return image.Rect(
		int(r.X*sx), int(r.Y*sy),
		int((r.X+r.Width)*sx), int((r.Y+r.Height)*sy),
	)
}

func (c *Compositor) drawHighlight(dst *image.RGBA, st overlay.HighlightState, sx, sy float64) {
	r := st.Rect
	// Scale the box around its center.
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	w, h := r.Width*st.Scale, r.Height*st.Scale
	scaled := geom.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
	strokeRect(dst, scaleRect(scaled, sx, sy), 3, accentColor, st.Opacity)
}

func (c *Compositor) drawTypedText(dst *image.RGBA, st overlay.TypedTextState, sx, sy float64) {
	field := scaleRect(st.Field, sx, sy)
	fillRect(dst, field, fieldBgColor, st.Opacity)
	strokeRect(dst, field, 1, typedTextColor, st.Opacity*0.5)

	textX := field.Min.X + 8
	textY := field.Min.Y + (field.Dy()-uiFont.Height)/2
	drawText(dst, textX, textY, st.Visible, typedTextColor, st.Opacity)

	if st.CaretOn {
		caretX := textX + textWidth(st.Visible) + 1
		caret := image.Rect(caretX, field.Min.Y+4, caretX+2, field.Max.Y-4)
		fillRect(dst, caret, typedTextColor, st.Opacity)
	}
}

func (c *Compositor) drawCursor(dst *image.RGBA, st overlay.CursorState, sx, sy float64) {
	cx := int(st.Pos.X * sx)
	cy := int(st.Pos.Y * sy)

	if st.RippleOpacity > 0 && st.RippleRadius > 0 {
		strokeCircle(dst, cx, cy, st.RippleRadius, 3, accentColor, st.RippleOpacity*st.Opacity)
	}

	radius := 8 * st.Scale
	fillCircle(dst, cx, cy, radius+1.5, cursorRingGray, st.Opacity)
	fillCircle(dst, cx, cy, radius, cursorColor, st.Opacity)
}

func (c *Compositor) drawBanner(dst *image.RGBA, st overlay.BannerState) {
	const padX, padY = 18, 10

	w := textWidth(st.Text) + padX*2
	h := uiFont.Height + padY*2

	var y int
	switch st.Anchor {
	case overlay.AnchorTop:
		y = 48
	case overlay.AnchorCenter:
		y = (c.comp.Height - h) / 2
	default: // AnchorBottom
		y = c.comp.Height - h - 56
	}
	y += int(st.OffsetY)
	x := (c.comp.Width - w) / 2

	box := image.Rect(x, y, x+w, y+h)
	fillRect(dst, box, bannerBgColor, st.Opacity)
	drawText(dst, x+padX, y+padY, st.Text, bannerFgColor, st.Opacity)
}
