package overlay

import (
	"github.com/answerline/demoreel/internal/anim"
)

// Anchor selects the vertical banner placement preset.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorCenter
	AnchorBottom
)

// defaultBannerFadeIn is the opacity ramp at banner entry, in frames.
const defaultBannerFadeIn = 10

// Banner shows a line of text that slides in via spring, holds, and fades
// out over the final frames of its duration. Slide is evaluated on the local
// frame axis and yields the vertical offset in pixels (typically from an
// off-anchor position to 0); a nil Slide pins the banner in place.
type Banner struct {
	StartFrame float64
	Duration   float64
	Text       string
	Anchor     Anchor
	Slide      *anim.Spring
	FadeIn     float64 // frames, defaults to defaultBannerFadeIn
	FadeFrames float64
}

// BannerState is the renderable banner for one frame.
type BannerState struct {
	Text    string
	Anchor  Anchor
	OffsetY float64
	Opacity float64
}

// Window reports the frames within which the banner is visible.
func (b Banner) Window() (float64, float64) {
	return b.StartFrame, b.StartFrame + b.Duration
}

// State computes the banner at the given frame.
func (b Banner) State(frame float64) (BannerState, bool) {
	start, end := b.Window()
	if frame < start || frame >= end {
		return BannerState{}, false
	}

	local := frame - start

	offset := 0.0
	if b.Slide != nil {
		offset = b.Slide.Value(local)
	}

	fadeIn := b.FadeIn
	if fadeIn == 0 {
		fadeIn = defaultBannerFadeIn
	}
	entry := clamp01(local / fadeIn)

	return BannerState{
		Text:    b.Text,
		Anchor:  b.Anchor,
		OffsetY: offset,
		Opacity: entry * exitFade(local, b.Duration, b.FadeFrames),
	}, true
}
