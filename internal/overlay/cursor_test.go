package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/answerline/demoreel/internal/geom"
)

func testCursor() Cursor {
	return Cursor{
		StartFrame:   100,
		MoveDuration: 60,
		ClickWindow:  30,
		From:         geom.Point{X: 0, Y: 0},
		To:           AtRect(geom.Rect{X: 380, Y: 280, Width: 40, Height: 40}),
	}
}

func TestCursor_VisibilityWindow(t *testing.T) {
	c := testCursor()

	_, ok := c.State(99, nil)
	assert.False(t, ok, "invisible before start")

	_, ok = c.State(100, nil)
	assert.True(t, ok, "visible at start")

	_, ok = c.State(189, nil)
	assert.True(t, ok, "visible on the last click frame")

	_, ok = c.State(190, nil)
	assert.False(t, ok, "invisible after move+click window")
}

func TestCursor_MovesFromStartToTargetCenter(t *testing.T) {
	c := testCursor()

	st, ok := c.State(100, nil)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 0, Y: 0}, st.Pos)

	st, ok = c.State(160, nil)
	require.True(t, ok)
	assert.InDelta(t, 400.0, st.Pos.X, 1e-9, "lands on target center X")
	assert.InDelta(t, 300.0, st.Pos.Y, 1e-9, "lands on target center Y")

	// Midway with EaseInOutCubic: exactly half the path.
	st, ok = c.State(130, nil)
	require.True(t, ok)
	assert.InDelta(t, 200.0, st.Pos.X, 1e-9)
	assert.InDelta(t, 150.0, st.Pos.Y, 1e-9)
}

func TestCursor_ClickPressAndRipple(t *testing.T) {
	c := testCursor()

	// During the move there is no press or ripple.
	st, ok := c.State(130, nil)
	require.True(t, ok)
	assert.Equal(t, 1.0, st.Scale)
	assert.Zero(t, st.RippleRadius)

	// Mid-press the cursor dips below full scale.
	st, ok = c.State(166, nil)
	require.True(t, ok)
	assert.Less(t, st.Scale, 1.0)
	assert.Greater(t, st.RippleRadius, 0.0)
	assert.Greater(t, st.RippleOpacity, 0.0)

	// Late in the window the ripple has grown and faded.
	late, ok := c.State(188, nil)
	require.True(t, ok)
	assert.Greater(t, late.RippleRadius, st.RippleRadius)
	assert.Less(t, late.RippleOpacity, st.RippleOpacity)
}

func TestCursor_UnresolvableTargetSkips(t *testing.T) {
	c := testCursor()
	c.To = AtElement("missing", "button")

	_, ok := c.State(130, testResolver())
	assert.False(t, ok)
}

func TestCursor_Deterministic(t *testing.T) {
	c := testCursor()

	for _, frame := range []float64{100, 123.5, 161, 189} {
		first, ok := c.State(frame, nil)
		require.True(t, ok)
		for i := 0; i < 5; i++ {
			again, ok := c.State(frame, nil)
			require.True(t, ok)
			assert.Equal(t, first, again)
		}
	}
}
