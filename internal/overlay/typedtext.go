package overlay

import (
	"math"
	"strings"

	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/manifest"
)

// DefaultBlinkOmega is the caret blink angular rate in radians per frame.
// The caret is on while sin(frame·ω) > 0, a frame-pure pseudo-blink rather
// than a wall-clock timer. Tuned by eye; override per field when a scene
// needs a different cadence.
const DefaultBlinkOmega = 0.25

// TypedText simulates text being typed into a field at a constant rate of
// CharRate frames per character. In masked mode every typed character
// renders as MaskRune (password-style fields).
type TypedText struct {
	StartFrame float64
	Duration   float64
	Text       string
	CharRate   float64
	Masked     bool
	MaskRune   rune    // defaults to '•'
	BlinkOmega float64 // defaults to DefaultBlinkOmega
	Field      Position
}

// TypedTextState is the renderable field content for one frame.
type TypedTextState struct {
	Visible string
	CaretOn bool
	Field   geom.Rect
	Opacity float64
}

// Window reports the frames within which the field overlay is visible.
func (t TypedText) Window() (float64, float64) {
	return t.StartFrame, t.StartFrame + t.Duration
}

// State computes the typed content at the given frame. ok is false outside
// the overlay window or when the field position cannot be resolved.
func (t TypedText) State(frame float64, res *manifest.Resolver) (TypedTextState, bool) {
	start, end := t.Window()
	if frame < start || frame >= end {
		return TypedTextState{}, false
	}

	field, ok := t.Field.Resolve(res)
	if !ok {
		return TypedTextState{}, false
	}

	runes := []rune(t.Text)
	count := len(runes)
	if t.CharRate > 0 {
		count = int((frame - start) / t.CharRate)
		if count < 0 {
			count = 0
		}
		if count > len(runes) {
			count = len(runes)
		}
	}

	visible := string(runes[:count])
	if t.Masked {
		mask := t.MaskRune
		if mask == 0 {
			mask = '•'
		}
		visible = strings.Repeat(string(mask), count)
	}

	omega := t.BlinkOmega
	if omega == 0 {
		omega = DefaultBlinkOmega
	}

	return TypedTextState{
		Visible: visible,
		CaretOn: count < len(runes) && math.Sin(frame*omega) > 0,
		Field:   field,
		Opacity: exitFade(frame-start, t.Duration, 0),
	}, true
}
