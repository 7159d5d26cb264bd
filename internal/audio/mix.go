package audio

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// InputArgs returns the ffmpeg -i arguments for every clip source, resolved
// against the static asset root, in authoring order.
func (t *Track) InputArgs(assetRoot string) []string {
	args := make([]string, 0, len(t.clips)*2)
	for _, c := range t.clips {
		args = append(args, "-i", filepath.Join(assetRoot, c.Source))
	}
	return args
}

// FilterGraph builds the ffmpeg filter_complex expression that places every
// clip at its start frame with its configured gain and mixes them into one
// [aout] stream. inputOffset is the ffmpeg input index of the first audio
// source (the raw video stream usually occupies index 0).
//
// Per clip: trim to the declared duration, apply gain, delay by the start
// offset. Gains are passed through as configured; amix runs with
// normalize=0 so summing stays the scene author's responsibility.
func (t *Track) FilterGraph(fps float64, inputOffset int) string {
	if len(t.clips) == 0 {
		return ""
	}

	var sb strings.Builder
	labels := make([]string, len(t.clips))
	for i, c := range t.clips {
		durSec := float64(c.DurationFrames) / fps
		delayMS := int(math.Round(float64(c.StartFrame) / fps * 1000))
		gain := c.Gain
		if gain == 0 {
			gain = 1
		}
		labels[i] = fmt.Sprintf("[a%d]", i)
		fmt.Fprintf(&sb, "[%d:a]atrim=0:%.3f,volume=%.3f,adelay=%d|%d%s;",
			inputOffset+i, durSec, gain, delayMS, delayMS, labels[i])
	}

	if len(t.clips) == 1 {
		fmt.Fprintf(&sb, "%sanull[aout]", labels[0])
		return sb.String()
	}

	fmt.Fprintf(&sb, "%samix=inputs=%d:duration=longest:normalize=0[aout]",
		strings.Join(labels, ""), len(t.clips))
	return sb.String()
}
