// Package timeline maps absolute frame numbers to the active scene and its
// local frame offset. Entries play back to back; nesting is recursion: a
// scene that hosts its own sub-sequence builds a child Timeline and locates
// into it with the parent's local frame as the new global axis.
package timeline

import (
	"errors"
	"fmt"
)

// ErrFrameOutOfRange reports a Locate call outside [0, Duration). The render
// driver never requests such frames; hitting this is a caller bug, not a
// condition the engine masks.
var ErrFrameOutOfRange = errors.New("timeline: frame out of range")

// Entry is one scene slot: a scene identifier and how many frames it holds.
type Entry struct {
	SceneID  string
	Duration int
}

// Cue is the result of locating a frame: which scene is active and the frame
// offset within it.
type Cue struct {
	SceneID    string
	LocalFrame int
}

// Timeline is an ordered, immutable sequence of entries. Safe for concurrent
// use after construction.
type Timeline struct {
	entries []Entry
	offsets []int
	total   int
}

// New validates the entries and precomputes running offsets. Every entry
// must have a positive duration; zero-length scenes are an authoring bug.
func New(entries []Entry) (*Timeline, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("timeline: at least one entry required")
	}

	t := &Timeline{
		entries: append([]Entry(nil), entries...),
		offsets: make([]int, len(entries)),
	}
	for i, e := range entries {
		if e.Duration <= 0 {
			return nil, fmt.Errorf("timeline: entry %q has non-positive duration %d", e.SceneID, e.Duration)
		}
		t.offsets[i] = t.total
		t.total += e.Duration
	}
	return t, nil
}

// Must is New for statically authored compositions.
func Must(entries []Entry) *Timeline {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Duration returns the total length in frames.
func (t *Timeline) Duration() int {
	return t.total
}

// Entries returns a copy of the entry list in playback order.
func (t *Timeline) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Locate returns the active scene and local frame for an absolute frame.
func (t *Timeline) Locate(frame int) (Cue, error) {
	if frame < 0 || frame >= t.total {
		return Cue{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, frame, t.total)
	}

	// Linear walk: compositions have tens of entries, and the walk keeps
	// the first-match semantics obvious.
	for i, e := range t.entries {
		if frame < t.offsets[i]+e.Duration {
			return Cue{SceneID: e.SceneID, LocalFrame: frame - t.offsets[i]}, nil
		}
	}

	// Unreachable: the range check above covers the domain.
	return Cue{}, ErrFrameOutOfRange
}
