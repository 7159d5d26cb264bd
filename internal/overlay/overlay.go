// Package overlay provides the stateless visual behaviors layered over scene
// screenshots: cursor movement with click ripples, typed text, highlight
// boxes, and text banners. Every primitive is a pure function of the frame
// number; nothing here keeps state between frames.
package overlay

import (
	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
)

// DefaultExitFadeFrames is the shared fade-out window: every primitive fades
// to zero opacity over the last 15 frames of its duration so scenes get a
// uniform exit behavior.
const DefaultExitFadeFrames = 15

// Overlay is the marker interface shared by the four primitives. Window
// reports the frame range (inclusive start, exclusive end) within which the
// primitive can be visible.
type Overlay interface {
	Window() (start, end float64)
}

// Position addresses a target either by explicit pixel rectangle or by a
// named element in a screenshot manifest. When both are supplied the literal
// rectangle wins.
type Position struct {
	Literal    *geom.Rect
	Screenshot string
	Element    string
}

// AtRect builds a literal position.
func AtRect(r geom.Rect) Position {
	return Position{Literal: &r}
}

// AtElement builds a manifest-resolved position.
func AtElement(screenshotID, elementName string) Position {
	return Position{Screenshot: screenshotID, Element: elementName}
}

// Resolve returns the target rectangle, consulting the manifest resolver for
// named positions. ok is false when the position cannot be resolved; the
// caller skips the overlay.
func (p Position) Resolve(res *manifest.Resolver) (geom.Rect, bool) {
	if p.Literal != nil {
		return *p.Literal, true
	}
	if p.Screenshot == "" || p.Element == "" || res == nil {
		return geom.Rect{}, false
	}
	r := res.Resolve(p.Screenshot, p.Element)
	if r == nil {
		return geom.Rect{}, false
	}
	return *r, true
}

// exitFade returns the shared fade-out multiplier for a primitive at local
// frame offset within the given duration.
func exitFade(local, duration, fadeFrames float64) float64 {
	if fadeFrames <= 0 {
		fadeFrames = DefaultExitFadeFrames
	}
	if fadeFrames > duration {
		fadeFrames = duration
	}
	fadeStart := duration - fadeFrames
	if local <= fadeStart {
		return 1
	}
	if local >= duration {
		return 0
	}
	return 1 - (local-fadeStart)/fadeFrames
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
