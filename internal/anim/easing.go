package anim

import "math"

// Easing maps normalized progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 { return t }

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 { return t * t }

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

// EaseInOutQuad accelerates then decelerates.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutCubic decelerates with a cubic profile.
func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// EaseInOutCubic applies smooth easing at both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutSine applies a half-cosine profile.
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutExpo decelerates sharply; exact at both boundaries.
func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
