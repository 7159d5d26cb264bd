package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/answerline/demoreel/internal/config"
	"github.com/answerline/demoreel/internal/manifest"
	"github.com/answerline/demoreel/internal/preview"
	"github.com/answerline/demoreel/internal/render"
	"github.com/answerline/demoreel/internal/scenes"
	"github.com/answerline/demoreel/internal/system"
)

func main() {
	cmd := &cli.Command{
		Name:  "demoreel",
		Usage: "Deterministic demo-video generator for the Answerline dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				Value:       "config/config.yaml",
				DefaultText: "config/config.yaml",
				Sources:     cli.EnvVars("DEMOREEL_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Render the full demo composition to MP4",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output video path (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "Print a performance report after the render",
					},
				},
				Action: runRender,
			},
			{
				Name:   "preview",
				Usage:  "Serve single frames over HTTP for scrubbing",
				Action: runPreview,
			},
			{
				Name:   "probe",
				Usage:  "Check declared audio clip durations against the source files",
				Action: runProbe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("demoreel failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setup loads the config, configures logging, and builds the composition.
func setup(cmd *cli.Command) (*config.Config, *scenes.Composition, *slog.Logger, error) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	comp, err := scenes.Build(float64(cfg.Video.FPS), cfg.Video.Width, cfg.Video.Height)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build composition: %w", err)
	}

	return cfg, comp, logger, nil
}

func newCompositor(cfg *config.Config, comp *scenes.Composition, logger *slog.Logger) *render.Compositor {
	resolver := manifest.NewResolver(manifest.DirLoader{Dir: cfg.Assets.Manifests}, logger)
	screens := render.NewScreenshotStore(cfg.Assets.Screenshots, logger)
	return render.NewCompositor(comp, resolver, screens)
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, comp, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	system.InitResourceLimits(logger)

	encoder := cfg.Render.Encoder
	if encoder == "" {
		encoder = system.DetectEncoder()
		if encoder != "libx264" {
			logger.Info("render: hardware encoder detected", slog.String("encoder", encoder))
		}
	}
	quality := cfg.Render.Quality
	if quality == 0 {
		quality = system.DefaultQuality(encoder)
	}

	output := cmd.String("output")
	if output == "" {
		output = cfg.Render.Output
	}
	if output == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		output = filepath.Join("output", fmt.Sprintf("demoreel_%s.mp4", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}

	driver := render.NewDriver(newCompositor(cfg, comp, logger), render.Options{
		Output:    output,
		AudioRoot: cfg.Assets.Audio,
		Workers:   system.RenderWorkers(cfg.Render.Workers, cfg.Video.Width, cfg.Video.Height),
		Encoder:   encoder,
		Quality:   quality,
		Stats:     cfg.Render.Stats || cmd.Bool("stats"),
	}, logger)

	return driver.Render(ctx)
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	cfg, comp, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	srv := preview.NewServer(comp, func() *render.Compositor {
		return newCompositor(cfg, comp, logger)
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.Preview.Port)
	return srv.ListenAndServe(ctx, addr, cfg.Assets.Manifests, cfg.Assets.Screenshots)
}

// runProbe ffprobes every audio source and reports clips whose declared
// frame duration does not fit the real file.
func runProbe(_ context.Context, cmd *cli.Command) error {
	cfg, comp, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	fps := float64(cfg.Video.FPS)
	mismatches := 0
	durations := make(map[string]float64)

	for _, clip := range comp.Audio.Clips() {
		actual, ok := durations[clip.Source]
		if !ok {
			actual, err = system.AudioDuration(filepath.Join(cfg.Assets.Audio, clip.Source))
			if err != nil {
				logger.Warn("probe: source unreadable",
					slog.String("source", clip.Source),
					slog.String("error", err.Error()))
				mismatches++
				continue
			}
			durations[clip.Source] = actual
		}

		declared := float64(clip.DurationFrames) / fps
		if declared > actual {
			logger.Warn("probe: declared duration exceeds source",
				slog.String("source", clip.Source),
				slog.Float64("declared_sec", declared),
				slog.Float64("actual_sec", actual))
			mismatches++
			continue
		}
		logger.Info("probe: ok",
			slog.String("source", clip.Source),
			slog.Float64("declared_sec", declared),
			slog.Float64("actual_sec", actual))
	}

	if mismatches > 0 {
		return fmt.Errorf("probe: %d clip(s) need attention", mismatches)
	}
	return nil
}
