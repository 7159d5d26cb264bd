// Package audio aligns voice-over and sound-effect clips on the frame
// timeline. The aligner only reports which clips are on at a frame and at
// what internal offset and gain; summing and limiting belong to the
// rendering backend.
package audio

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Clip is one audio source placed on the timeline. Clips may overlap; the
// aligner never merges or dedupes, so scene authors own gain staging and
// disjointness where it matters.
type Clip struct {
	Source         string
	StartFrame     int
	DurationFrames int
	Gain           float64
}

// Validate rejects malformed clip placements at composition build time.
func (c Clip) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.StartFrame, validation.Min(0)),
		validation.Field(&c.DurationFrames, validation.Required, validation.Min(1)),
		validation.Field(&c.Gain, validation.Min(0.0)),
	)
}

// ActiveClip is a clip that is on at a queried frame, with the offset the
// audio renderer uses to seek into the source.
type ActiveClip struct {
	Clip        Clip
	LocalOffset int
}

// Track is an immutable set of placed clips.
type Track struct {
	clips []Clip
}

// NewTrack validates all clips. Order is preserved; active-clip queries
// report clips in authoring order.
func NewTrack(clips []Clip) (*Track, error) {
	for i, c := range clips {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("audio: clip %d (%s): %w", i, c.Source, err)
		}
	}
	return &Track{clips: append([]Clip(nil), clips...)}, nil
}

// Clips returns a copy of the placed clips.
func (t *Track) Clips() []Clip {
	return append([]Clip(nil), t.clips...)
}

// End returns the frame after the last clip finishes.
func (t *Track) End() int {
	end := 0
	for _, c := range t.clips {
		if e := c.StartFrame + c.DurationFrames; e > end {
			end = e
		}
	}
	return end
}

// ActiveAt returns every clip active at the frame: those with
// StartFrame <= frame < StartFrame+DurationFrames.
func (t *Track) ActiveAt(frame int) []ActiveClip {
	var active []ActiveClip
	for _, c := range t.clips {
		if frame >= c.StartFrame && frame < c.StartFrame+c.DurationFrames {
			active = append(active, ActiveClip{Clip: c, LocalOffset: frame - c.StartFrame})
		}
	}
	return active
}
