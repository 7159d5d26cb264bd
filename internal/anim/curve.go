// Package anim is the interpolation core: keyframe curves with named easing
// and closed-form spring motion. Every evaluator is a pure function of the
// frame number so frames can be rendered out of order and in parallel.
package anim

import (
	"fmt"
	"sort"
)

// Extrapolation controls curve behavior outside the keyframe range.
type Extrapolation int

const (
	// Clamp holds the boundary value outside the range.
	Clamp Extrapolation = iota
	// Extend continues the slope of the boundary segment.
	Extend
)

// Keyframe is one (frame, value) control point.
type Keyframe struct {
	Frame float64
	Value float64
}

// Curve is a piecewise interpolation function over explicit control points.
// It is immutable after construction; Value is safe for concurrent use.
type Curve struct {
	keys        []Keyframe
	ease        Easing
	left, right Extrapolation
}

// CurveOption configures a Curve at construction time.
type CurveOption func(*Curve)

// WithEasing sets the easing applied within each segment.
func WithEasing(e Easing) CurveOption {
	return func(c *Curve) { c.ease = e }
}

// WithExtrapolation sets the left and right out-of-range behavior.
func WithExtrapolation(left, right Extrapolation) CurveOption {
	return func(c *Curve) { c.left, c.right = left, right }
}

// NewCurve builds a curve from control points. Frames must be strictly
// increasing; violations are an authoring bug and fail here rather than on
// the per-frame path.
func NewCurve(keys []Keyframe, opts ...CurveOption) (*Curve, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("curve: at least one keyframe required")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Frame <= keys[i-1].Frame {
			return nil, fmt.Errorf("curve: keyframe %d at frame %v is not after frame %v", i, keys[i].Frame, keys[i-1].Frame)
		}
	}

	c := &Curve{
		keys:  append([]Keyframe(nil), keys...),
		ease:  Linear,
		left:  Clamp,
		right: Clamp,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustCurve is NewCurve for statically authored scenes; it panics on invalid
// control points before any frame is rendered.
func MustCurve(keys []Keyframe, opts ...CurveOption) *Curve {
	c, err := NewCurve(keys, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Value evaluates the curve at the given frame.
func (c *Curve) Value(frame float64) float64 {
	keys := c.keys
	n := len(keys)
	if n == 1 {
		return keys[0].Value
	}

	if frame <= keys[0].Frame {
		if c.left == Clamp {
			return keys[0].Value
		}
		return extendSegment(keys[0], keys[1], frame)
	}
	if frame >= keys[n-1].Frame {
		if c.right == Clamp {
			return keys[n-1].Value
		}
		return extendSegment(keys[n-2], keys[n-1], frame)
	}

	// First key strictly after frame; the bracket is [i-1, i].
	i := sort.Search(n, func(i int) bool { return keys[i].Frame > frame })
	k0, k1 := keys[i-1], keys[i]

	span := k1.Frame - k0.Frame
	if span == 0 {
		return k0.Value
	}
	t := c.ease((frame - k0.Frame) / span)
	return k0.Value + (k1.Value-k0.Value)*t
}

// extendSegment continues the raw linear slope of a boundary segment. Easing
// is intentionally not applied: the eased slope at the boundary of most
// curves is zero, which would make Extend indistinguishable from Clamp.
func extendSegment(k0, k1 Keyframe, frame float64) float64 {
	span := k1.Frame - k0.Frame
	if span == 0 {
		return k0.Value
	}
	slope := (k1.Value - k0.Value) / span
	return k0.Value + slope*(frame-k0.Frame)
}
