package overlay

import (
	"math"

	"github.com/answerline/demoreel/internal/anim"
	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
)

// Cursor press/ripple tuning. The press occupies the first part of the click
// window, the ripple ring expands over the whole window.
const (
	cursorPressFraction = 0.4
	cursorPressDip      = 0.15
	cursorRippleRadius  = 34.0
	cursorRippleOpacity = 0.8
)

// Cursor simulates a pointer moving to a target and clicking it. The move
// phase eases from From to the target center over MoveDuration frames; the
// click phase plays a press (scale down, scale up) and an expanding, fading
// ripple ring over ClickWindow frames. ClickWindow of zero disables the
// click.
type Cursor struct {
	StartFrame   float64
	MoveDuration float64
	ClickWindow  float64
	From         geom.Point
	To           Position
	Ease         anim.Easing // defaults to EaseInOutCubic
}

// CursorState is the renderable cursor for one frame.
type CursorState struct {
	Pos           geom.Point
	Scale         float64
	RippleRadius  float64
	RippleOpacity float64
	Opacity       float64
}

// Window reports the frames within which the cursor is visible.
func (c Cursor) Window() (float64, float64) {
	return c.StartFrame, c.StartFrame + c.MoveDuration + c.ClickWindow
}

// State computes the cursor at the given frame. ok is false before the start
// frame, after the click window, or when the target cannot be resolved.
func (c Cursor) State(frame float64, res *manifest.Resolver) (CursorState, bool) {
	start, end := c.Window()
	if frame < start || frame >= end {
		return CursorState{}, false
	}

	target, ok := c.To.Resolve(res)
	if !ok {
		return CursorState{}, false
	}

	local := frame - start
	ease := c.Ease
	if ease == nil {
		ease = anim.EaseInOutCubic
	}

	var progress float64
	if c.MoveDuration > 0 {
		progress = ease(clamp01(local / c.MoveDuration))
	} else {
		progress = 1
	}

	st := CursorState{
		Pos:     geom.LerpPoint(c.From, target.Center(), progress),
		Scale:   1,
		Opacity: exitFade(local, c.MoveDuration+c.ClickWindow, 0),
	}

	click := local - c.MoveDuration
	if click >= 0 && c.ClickWindow > 0 {
		// Press: a half sine dip over the first part of the window.
		pressDur := c.ClickWindow * cursorPressFraction
		if pressDur > 0 && click < pressDur {
			st.Scale = 1 - cursorPressDip*math.Sin(math.Pi*click/pressDur)
		}
		// Ripple: expanding ring fading out over the whole window.
		rippleT := clamp01(click / c.ClickWindow)
		st.RippleRadius = cursorRippleRadius * anim.EaseOutCubic(rippleT)
		st.RippleOpacity = cursorRippleOpacity * (1 - rippleT)
	}

	return st, true
}
