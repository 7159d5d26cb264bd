package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// uiFont renders overlay labels. Pixel fonts keep the renderer dependency
// free of font files and scale acceptably at dashboard screenshot sizes.
var uiFont = basicfont.Face7x13

func withAlpha(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

// fillRect alpha-composites a solid rectangle onto dst.
func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, opacity float64) {
	src := image.NewUniform(withAlpha(c, opacity))
	draw.Draw(dst, r.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
}

// strokeRect draws a rectangle outline of the given thickness.
func strokeRect(dst *image.RGBA, r image.Rectangle, thickness int, c color.RGBA, opacity float64) {
	if thickness < 1 {
		thickness = 1
	}
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness)
	bottom := image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y)
	right := image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y)
	for _, side := range []image.Rectangle{top, bottom, left, right} {
		fillRect(dst, side, c, opacity)
	}
}

// fillCircle draws a filled disc centered at (cx, cy).
func fillCircle(dst *image.RGBA, cx, cy int, radius float64, c color.RGBA, opacity float64) {
	if radius <= 0 {
		return
	}
	cc := withAlpha(c, opacity)
	src := image.NewUniform(cc)
	r := int(radius)
	rr := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= rr {
				row := image.Rect(cx+dx, cy+dy, cx+dx+1, cy+dy+1)
				draw.Draw(dst, row.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
			}
		}
	}
}

// strokeCircle draws a ring of the given width centered at (cx, cy).
func strokeCircle(dst *image.RGBA, cx, cy int, radius, width float64, c color.RGBA, opacity float64) {
	if radius <= 0 {
		return
	}
	cc := withAlpha(c, opacity)
	src := image.NewUniform(cc)
	outer := radius + width/2
	inner := radius - width/2
	if inner < 0 {
		inner = 0
	}
	ro := int(outer) + 1
	outerSq := outer * outer
	innerSq := inner * inner
	for dy := -ro; dy <= ro; dy++ {
		for dx := -ro; dx <= ro; dx++ {
			d := float64(dx*dx + dy*dy)
			if d <= outerSq && d >= innerSq {
				px := image.Rect(cx+dx, cy+dy, cx+dx+1, cy+dy+1)
				draw.Draw(dst, px.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
			}
		}
	}
}

// drawText renders a string with its top-left corner at (x, y).
func drawText(dst *image.RGBA, x, y int, text string, c color.RGBA, opacity float64) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(withAlpha(c, opacity)),
		Face: uiFont,
		Dot:  fixed.P(x, y+uiFont.Ascent),
	}
	d.DrawString(text)
}

// textWidth measures the rendered width of a string in pixels.
func textWidth(text string) int {
	return font.MeasureString(uiFont, text).Ceil()
}
