package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/answerline/demoreel/internal/geom"
)

func literalField() Position {
	return AtRect(geom.Rect{X: 100, Y: 100, Width: 300, Height: 40})
}

func TestTypedText_CharacterProgression(t *testing.T) {
	tt := TypedText{
		StartFrame: 10,
		Duration:   60,
		Text:       "hi",
		CharRate:   2,
		Field:      literalField(),
	}

	st, ok := tt.State(10, nil)
	require.True(t, ok)
	assert.Equal(t, "", st.Visible, "nothing typed at the start frame")

	st, ok = tt.State(12, nil)
	require.True(t, ok)
	assert.Equal(t, "h", st.Visible)

	st, ok = tt.State(14, nil)
	require.True(t, ok)
	assert.Equal(t, "hi", st.Visible)
	assert.False(t, st.CaretOn, "caret hidden once typing completes")

	st, ok = tt.State(50, nil)
	require.True(t, ok)
	assert.Equal(t, "hi", st.Visible, "count clamps at full text")
	assert.False(t, st.CaretOn)
}

func TestTypedText_InvisibleOutsideWindow(t *testing.T) {
	tt := TypedText{StartFrame: 10, Duration: 60, Text: "hi", CharRate: 2, Field: literalField()}

	_, ok := tt.State(9, nil)
	assert.False(t, ok, "invisible before start")

	_, ok = tt.State(70, nil)
	assert.False(t, ok, "invisible at and after start+duration")
}

func TestTypedText_CaretBlinkIsFramePure(t *testing.T) {
	tt := TypedText{StartFrame: 0, Duration: 1000, Text: "long enough text", CharRate: 50, Field: literalField()}

	sawOn, sawOff := false, false
	for frame := 0.0; frame < 100; frame++ {
		st, ok := tt.State(frame, nil)
		require.True(t, ok)
		if st.CaretOn {
			sawOn = true
		} else {
			sawOff = true
		}

		again, _ := tt.State(frame, nil)
		assert.Equal(t, st.CaretOn, again.CaretOn, "blink must be a pure function of the frame")
	}
	assert.True(t, sawOn, "caret should be on for part of the cycle")
	assert.True(t, sawOff, "caret should be off for part of the cycle")
}

func TestTypedText_MaskedMode(t *testing.T) {
	tt := TypedText{
		StartFrame: 0,
		Duration:   200,
		Text:       "4242",
		CharRate:   1,
		Masked:     true,
		Field:      literalField(),
	}

	st, ok := tt.State(3, nil)
	require.True(t, ok)
	assert.Equal(t, "•••", st.Visible, "masked mode repeats the mask character")

	tt.MaskRune = '*'
	st, ok = tt.State(3, nil)
	require.True(t, ok)
	assert.Equal(t, "***", st.Visible)
}

func TestTypedText_UnresolvableFieldSkipsOverlay(t *testing.T) {
	tt := TypedText{
		StartFrame: 0,
		Duration:   100,
		Text:       "hi",
		CharRate:   2,
		Field:      AtElement("missing", "field"),
	}

	_, ok := tt.State(10, testResolver())
	assert.False(t, ok, "missing coordinates drop the overlay, not the render")
}
