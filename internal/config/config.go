// Package config loads and validates the composition configuration: frame
// rate, canvas resolution, asset roots, and render/preview settings.
package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config is the full application configuration.
type Config struct {
	Video   VideoConfig   `yaml:"video"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Preview PreviewConfig `yaml:"preview"`
}

// NewDefault returns the configuration used when no file overrides it.
func NewDefault() *Config {
	return &Config{
		Video: VideoConfig{
			FPS:    30,
			Width:  1280,
			Height: 720,
		},
		Assets: AssetsConfig{
			Screenshots: "assets/screenshots",
			Manifests:   "assets/manifests",
			Audio:       "assets/audio",
		},
		Render: RenderConfig{
			Output:  "",
			Workers: 0, // sized from the machine at startup
			Quality: 0, // picked per encoder at startup
		},
		Preview: PreviewConfig{
			Port: 8787,
		},
	}
}

// Validate validates all sections.
func (c *Config) Validate() error {
	if err := c.Video.Validate(); err != nil {
		return err
	}
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	return c.Preview.Validate()
}

// VideoConfig holds the composition parameters: a fixed frame rate and
// canvas resolution, supplied once per rendered composition.
type VideoConfig struct {
	FPS    int `yaml:"fps"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate validates the video parameters. Width and height must be even
// for yuv420p output.
func (c *VideoConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.FPS, validation.Required, validation.Min(1), validation.Max(120)),
		validation.Field(&c.Width, validation.Required, validation.Min(16)),
		validation.Field(&c.Height, validation.Required, validation.Min(16)),
	); err != nil {
		return err
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("video: resolution %dx%d must have even dimensions", c.Width, c.Height)
	}
	return nil
}

// AssetsConfig holds the static asset roots.
type AssetsConfig struct {
	Screenshots string `yaml:"screenshots"`
	Manifests   string `yaml:"manifests"`
	Audio       string `yaml:"audio"`
}

// Validate validates the asset roots.
func (c *AssetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Screenshots, validation.Required),
		validation.Field(&c.Manifests, validation.Required),
		validation.Field(&c.Audio, validation.Required),
	)
}

// RenderConfig holds render-job settings. Zero values mean "pick at
// startup": workers from the machine, encoder by hardware probe, quality by
// encoder.
type RenderConfig struct {
	Output  string `yaml:"output"`
	Workers int    `yaml:"workers"`
	Encoder string `yaml:"encoder"`
	Quality int    `yaml:"quality"`
	Stats   bool   `yaml:"stats"`
}

// Validate validates the render settings.
func (c *RenderConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.Quality, validation.Min(0), validation.Max(7500)),
	)
}

// PreviewConfig holds the preview server settings.
type PreviewConfig struct {
	Port int `yaml:"port"`
}

// Validate validates the preview settings.
func (c *PreviewConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}
