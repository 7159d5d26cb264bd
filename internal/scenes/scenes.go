// Package scenes holds the concrete demo-video scenes for the Answerline
// dashboard tour. Scenes are declarative consumers of the animation core:
// each one is a screenshot background plus overlay primitives placed on the
// scene's local frame axis, with voice-over clips aligned on the global
// timeline.
package scenes

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/answerline/demoreel/internal/anim"
	"github.com/answerline/demoreel/internal/audio"
	"github.com/answerline/demoreel/internal/geom"
	"github.com/answerline/demoreel/internal/overlay"
	"github.com/answerline/demoreel/internal/timeline"
)

// SignupURL is encoded into the outro QR code.
const SignupURL = "https://answerline.ai/signup"

// Still is a pre-rendered image placed on a scene (the outro QR code).
type Still struct {
	Image      image.Image
	X, Y       int
	StartFrame float64
}

// Scene is one contiguous segment of the demo. Screenshot names the
// background reference screenshot; Screens, when set, is a local timeline of
// screenshot IDs letting the background switch mid-scene (nested sequencing
// on the scene's local frame axis).
type Scene struct {
	ID         string
	Frames     int
	Screenshot string
	Screens    *timeline.Timeline
	Overlays   []overlay.Overlay
	Stills     []Still
}

// BackgroundAt returns the screenshot ID active at the scene-local frame.
func (s *Scene) BackgroundAt(local int) string {
	if s.Screens == nil {
		return s.Screenshot
	}
	cue, err := s.Screens.Locate(local)
	if err != nil {
		return s.Screenshot
	}
	return cue.SceneID
}

// Composition is the full assembled demo: scene sequence, scene bodies, and
// the aligned audio track.
type Composition struct {
	FPS      float64
	Width    int
	Height   int
	Timeline *timeline.Timeline
	Scenes   map[string]*Scene
	Audio    *audio.Track
}

// Build assembles the demo composition for the given frame rate and canvas.
// All curves and springs are constructed (and validated) here, before any
// frame is rendered.
func Build(fps float64, width, height int) (*Composition, error) {
	list := []*Scene{
		intro(fps),
		callsOverview(fps),
		callDetail(fps),
		knowledgeBase(fps),
		knowledgeBaseForm(fps),
		walletTopUp(fps),
	}

	outroScene, err := outro(fps)
	if err != nil {
		return nil, err
	}
	list = append(list, outroScene)

	entries := make([]timeline.Entry, len(list))
	byID := make(map[string]*Scene, len(list))
	for i, s := range list {
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("scenes: duplicate scene id %q", s.ID)
		}
		entries[i] = timeline.Entry{SceneID: s.ID, Duration: s.Frames}
		byID[s.ID] = s
	}

	tl, err := timeline.New(entries)
	if err != nil {
		return nil, err
	}

	track, err := voiceTrack(tl)
	if err != nil {
		return nil, err
	}

	return &Composition{
		FPS:      fps,
		Width:    width,
		Height:   height,
		Timeline: tl,
		Scenes:   byID,
		Audio:    track,
	}, nil
}

// pop is the shared highlight scale-in profile: underdamped, so boxes land
// with a small bounce.
func pop(fps float64) *anim.Spring {
	return anim.MustSpring(anim.SpringConfig{
		DampingRatio: 0.55,
		Stiffness:    170,
		Mass:         1,
		From:         0.6,
		To:           1,
	}, fps)
}

// slideIn is the shared banner entry: slides from 46px below the anchor and
// settles without overshoot.
func slideIn(fps float64) *anim.Spring {
	return anim.MustSpring(anim.SpringConfig{
		DampingRatio: 1,
		Stiffness:    120,
		Mass:         1,
		From:         46,
		To:           0,
	}, fps)
}

func intro(fps float64) *Scene {
	return &Scene{
		ID:     "intro",
		Frames: 120,
		Overlays: []overlay.Overlay{
			overlay.Banner{
				StartFrame: 10,
				Duration:   105,
				Text:       "Meet Answerline, the receptionist that never sleeps",
				Anchor:     overlay.AnchorCenter,
				Slide:      slideIn(fps),
			},
			overlay.Banner{
				StartFrame: 45,
				Duration:   70,
				Text:       "A two-minute tour of the dashboard",
				Anchor:     overlay.AnchorBottom,
				Slide:      slideIn(fps),
			},
		},
	}
}

func callsOverview(fps float64) *Scene {
	return &Scene{
		ID:         "calls-overview",
		Frames:     240,
		Screenshot: "dashboard-calls",
		Overlays: []overlay.Overlay{
			overlay.Banner{
				StartFrame: 0,
				Duration:   90,
				Text:       "Every call answered, transcribed, and filed",
				Anchor:     overlay.AnchorTop,
				Slide:      slideIn(fps),
			},
			overlay.Highlight{
				StartFrame: 30,
				Duration:   100,
				Target:     overlay.AtElement("dashboard-calls", "calls-table"),
				Pop:        pop(fps),
			},
			overlay.Cursor{
				StartFrame:   130,
				MoveDuration: 45,
				ClickWindow:  30,
				From:         geom.Point{X: 200, Y: 640},
				To:           overlay.AtElement("dashboard-calls", "call-row-1"),
			},
		},
	}
}

func callDetail(fps float64) *Scene {
	return &Scene{
		ID:         "call-detail",
		Frames:     240,
		Screenshot: "call-detail",
		Overlays: []overlay.Overlay{
			overlay.Cursor{
				StartFrame:   20,
				MoveDuration: 40,
				ClickWindow:  30,
				From:         geom.Point{X: 320, Y: 160},
				To:           overlay.AtElement("call-detail", "play-button"),
			},
			overlay.Highlight{
				StartFrame: 95,
				Duration:   110,
				Target:     overlay.AtElement("call-detail", "transcript-panel"),
				Pop:        pop(fps),
			},
			overlay.Banner{
				StartFrame: 100,
				Duration:   120,
				Text:       "Full transcripts with caller intent, instantly",
				Anchor:     overlay.AnchorBottom,
				Slide:      slideIn(fps),
			},
		},
	}
}

func knowledgeBase(fps float64) *Scene {
	return &Scene{
		ID:         "knowledge-base",
		Frames:     200,
		Screenshot: "knowledge-base",
		Overlays: []overlay.Overlay{
			overlay.Banner{
				StartFrame: 0,
				Duration:   80,
				Text:       "Teach it your business once",
				Anchor:     overlay.AnchorTop,
				Slide:      slideIn(fps),
			},
			overlay.Highlight{
				StartFrame: 35,
				Duration:   120,
				Target:     overlay.AtElement("knowledge-base", "article-list"),
				Pop:        pop(fps),
			},
		},
	}
}

func knowledgeBaseForm(fps float64) *Scene {
	return &Scene{
		ID:         "knowledge-base-form",
		Frames:     260,
		Screenshot: "knowledge-base-editor",
		Overlays: []overlay.Overlay{
			overlay.Cursor{
				StartFrame:   10,
				MoveDuration: 40,
				ClickWindow:  25,
				From:         geom.Point{X: 980, Y: 120},
				To:           overlay.AtElement("knowledge-base-editor", "add-article-button"),
			},
			overlay.TypedText{
				StartFrame: 80,
				Duration:   170,
				Text:       "Do you offer weekend appointments?",
				CharRate:   3,
				Field:      overlay.AtElement("knowledge-base-editor", "article-title-input"),
			},
			overlay.Banner{
				StartFrame: 120,
				Duration:   130,
				Text:       "The AI answers from your own words",
				Anchor:     overlay.AnchorBottom,
				Slide:      slideIn(fps),
			},
		},
	}
}

func walletTopUp(fps float64) *Scene {
	// Background flips to the post-payment screenshot once the card form is
	// submitted: a local timeline on the scene's own frame axis.
	screens := timeline.Must([]timeline.Entry{
		{SceneID: "wallet", Duration: 190},
		{SceneID: "wallet-topped-up", Duration: 70},
	})

	return &Scene{
		ID:      "wallet-topup",
		Frames:  260,
		Screens: screens,
		Overlays: []overlay.Overlay{
			overlay.Cursor{
				StartFrame:   15,
				MoveDuration: 35,
				ClickWindow:  25,
				From:         geom.Point{X: 640, Y: 520},
				To:           overlay.AtElement("wallet", "top-up-button"),
			},
			overlay.TypedText{
				StartFrame: 85,
				Duration:   95,
				Text:       "4242424242424242",
				CharRate:   4,
				Masked:     true,
				Field:      overlay.AtElement("wallet", "card-number-input"),
			},
			overlay.Highlight{
				StartFrame: 195,
				Duration:   60,
				Target:     overlay.AtElement("wallet-topped-up", "balance-card"),
				Pop:        pop(fps),
			},
			overlay.Banner{
				StartFrame: 195,
				Duration:   60,
				Text:       "Pay as you go, top up in seconds",
				Anchor:     overlay.AnchorBottom,
				Slide:      slideIn(fps),
			},
		},
	}
}

func outro(fps float64) (*Scene, error) {
	qr, err := qrcode.New(SignupURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("scenes: outro qr: %w", err)
	}

	return &Scene{
		ID:     "outro",
		Frames: 150,
		Stills: []Still{
			{Image: qr.Image(256), X: 512, Y: 180, StartFrame: 20},
		},
		Overlays: []overlay.Overlay{
			overlay.Banner{
				StartFrame: 10,
				Duration:   135,
				Text:       "answerline.ai: your AI receptionist",
				Anchor:     overlay.AnchorBottom,
				Slide:      slideIn(fps),
			},
		},
	}, nil
}

// voiceTrack aligns the narration and click SFX with the scene sequence.
// Voice-overs start a beat after each scene begins; clicks land on the
// cursor click moments.
func voiceTrack(tl *timeline.Timeline) (*audio.Track, error) {
	offsets := make(map[string]int)
	offset := 0
	for _, e := range tl.Entries() {
		offsets[e.SceneID] = offset
		offset += e.Duration
	}

	clips := []audio.Clip{
		{Source: "vo/intro.wav", StartFrame: offsets["intro"] + 8, DurationFrames: 110, Gain: 1.0},
		{Source: "vo/calls.wav", StartFrame: offsets["calls-overview"] + 10, DurationFrames: 220, Gain: 1.0},
		{Source: "sfx/click.wav", StartFrame: offsets["calls-overview"] + 175, DurationFrames: 12, Gain: 0.6},
		{Source: "vo/call-detail.wav", StartFrame: offsets["call-detail"] + 10, DurationFrames: 220, Gain: 1.0},
		{Source: "sfx/click.wav", StartFrame: offsets["call-detail"] + 60, DurationFrames: 12, Gain: 0.6},
		{Source: "vo/knowledge.wav", StartFrame: offsets["knowledge-base"] + 10, DurationFrames: 380, Gain: 1.0},
		{Source: "sfx/typing.wav", StartFrame: offsets["knowledge-base-form"] + 80, DurationFrames: 110, Gain: 0.45},
		{Source: "vo/wallet.wav", StartFrame: offsets["wallet-topup"] + 10, DurationFrames: 230, Gain: 1.0},
		{Source: "sfx/typing.wav", StartFrame: offsets["wallet-topup"] + 85, DurationFrames: 70, Gain: 0.45},
		{Source: "vo/outro.wav", StartFrame: offsets["outro"] + 8, DurationFrames: 130, Gain: 1.0},
	}

	return audio.NewTrack(clips)
}
