package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurve_RejectsBadKeyframes(t *testing.T) {
	_, err := NewCurve(nil)
	assert.Error(t, err, "empty keyframe list should fail")

	_, err = NewCurve([]Keyframe{{Frame: 10, Value: 0}, {Frame: 10, Value: 1}})
	assert.Error(t, err, "duplicate frames should fail")

	_, err = NewCurve([]Keyframe{{Frame: 10, Value: 0}, {Frame: 5, Value: 1}})
	assert.Error(t, err, "decreasing frames should fail")
}

func TestCurve_SingleKeyframeIsConstant(t *testing.T) {
	c, err := NewCurve([]Keyframe{{Frame: 30, Value: 7.5}})
	require.NoError(t, err)

	for _, frame := range []float64{-100, 0, 30, 1e6} {
		assert.Equal(t, 7.5, c.Value(frame))
	}
}

func TestCurve_ClampAtBothEdges(t *testing.T) {
	c, err := NewCurve([]Keyframe{
		{Frame: 10, Value: 100},
		{Frame: 50, Value: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, c.Value(-5), "left of range clamps to first value")
	assert.Equal(t, 100.0, c.Value(10), "first input returns first value exactly")
	assert.Equal(t, 200.0, c.Value(50), "last input returns last value exactly")
	assert.Equal(t, 200.0, c.Value(400), "right of range clamps to last value")
}

func TestCurve_ExtendContinuesBoundarySlope(t *testing.T) {
	c, err := NewCurve([]Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 10, Value: 20},
		{Frame: 20, Value: 20},
	}, WithExtrapolation(Extend, Extend))
	require.NoError(t, err)

	// First segment slope is 2/frame; last segment is flat.
	assert.InDelta(t, -10.0, c.Value(-5), 1e-12)
	assert.InDelta(t, 20.0, c.Value(35), 1e-12)
}

func TestCurve_BoundaryExactForEveryEasing(t *testing.T) {
	easings := map[string]Easing{
		"linear":        Linear,
		"inQuad":        EaseInQuad,
		"outQuad":       EaseOutQuad,
		"inOutQuad":     EaseInOutQuad,
		"outCubic":      EaseOutCubic,
		"inOutCubic":    EaseInOutCubic,
		"inOutSine":     EaseInOutSine,
		"outExpo":       EaseOutExpo,
	}

	for name, ease := range easings {
		t.Run(name, func(t *testing.T) {
			c, err := NewCurve([]Keyframe{
				{Frame: 5, Value: -3},
				{Frame: 25, Value: 11},
			}, WithEasing(ease))
			require.NoError(t, err)

			assert.Equal(t, -3.0, c.Value(5), "value at f0 must be v0 exactly")
			assert.Equal(t, 11.0, c.Value(25), "value at f1 must be v1 exactly")
		})
	}
}

func TestCurve_EasedMidpoint(t *testing.T) {
	c, err := NewCurve([]Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 100, Value: 1},
	}, WithEasing(EaseInOutCubic))
	require.NoError(t, err)

	// EaseInOutCubic is symmetric: midpoint progress stays 0.5.
	assert.InDelta(t, 0.5, c.Value(50), 1e-12)
	// Early frames lag behind linear progress.
	assert.Less(t, c.Value(25), 0.25)
	// Late frames run ahead of linear progress.
	assert.Greater(t, c.Value(75), 0.75)
}

func TestCurve_MultiSegmentBracketing(t *testing.T) {
	c, err := NewCurve([]Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 10, Value: 100},
		{Frame: 30, Value: 50},
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, c.Value(5), 1e-12)
	assert.InDelta(t, 100.0, c.Value(10), 1e-12)
	assert.InDelta(t, 75.0, c.Value(20), 1e-12)
}

func TestCurve_Deterministic(t *testing.T) {
	c, err := NewCurve([]Keyframe{
		{Frame: 0, Value: 3},
		{Frame: 77, Value: -41},
	}, WithEasing(EaseInOutSine))
	require.NoError(t, err)

	for _, frame := range []float64{-1, 0, 13.37, 38.5, 76, 77, 200} {
		first := c.Value(frame)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, c.Value(frame), "frame %v must be bit-identical on every call", frame)
		}
	}
}
