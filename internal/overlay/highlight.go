package overlay

import (
	"github.com/answerline/demoreel/internal/anim"
	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
)

// Highlight draws an attention box around a target: spring scale-in, hold,
// then the shared fade-out over the final frames of its duration. Pop is
// evaluated on the overlay's local frame axis (frame 0 = StartFrame); a nil
// Pop holds scale 1.
type Highlight struct {
	StartFrame float64
	Duration   float64
	Target     Position
	Pop        *anim.Spring
	FadeFrames float64
}

// HighlightState is the renderable box for one frame.
type HighlightState struct {
	Rect    geom.Rect
	Scale   float64
	Opacity float64
}

// Window reports the frames within which the highlight is visible.
func (h Highlight) Window() (float64, float64) {
	return h.StartFrame, h.StartFrame + h.Duration
}

// State computes the highlight at the given frame. ok is false outside
// [StartFrame, StartFrame+Duration) or when the target cannot be resolved.
func (h Highlight) State(frame float64, res *manifest.Resolver) (HighlightState, bool) {
	start, end := h.Window()
	if frame < start || frame >= end {
		return HighlightState{}, false
	}

	target, ok := h.Target.Resolve(res)
	if !ok {
		return HighlightState{}, false
	}

	scale := 1.0
	if h.Pop != nil {
		scale = h.Pop.Value(frame - start)
	}

	return HighlightState{
		Rect:    target,
		Scale:   scale,
		Opacity: exitFade(frame-start, h.Duration, h.FadeFrames),
	}, true
}
