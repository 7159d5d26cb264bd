package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options configures one render job.
type Options struct {
	Output    string
	AudioRoot string
	Workers   int
	Encoder   string
	Quality   int
	Stats     bool
}

// Driver renders the whole composition to an MP4. Frames are composited in
// parallel (every frame is independently computable) and streamed to ffmpeg
// in order as raw RGBA.
type Driver struct {
	compositor *Compositor
	opts       Options
	logger     *slog.Logger
}

// NewDriver builds a render driver.
func NewDriver(compositor *Compositor, opts Options, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Driver{compositor: compositor, opts: opts, logger: logger}
}

// Render runs the full job: parallel frame composition, ordered raw-RGBA
// streaming into ffmpeg, and the audio mix attached via filter graph.
func (d *Driver) Render(ctx context.Context) error {
	total := d.compositor.Duration()
	start := time.Now()

	args := d.ffmpegArgs()
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var ffLog bytes.Buffer
	cmd.Stdout = &ffLog
	cmd.Stderr = &ffLog

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("render: stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("render: ffmpeg start: %w", err)
	}

	d.logger.Info("render: started",
		slog.Int("frames", total),
		slog.Int("workers", d.opts.Workers),
		slog.String("encoder", d.opts.Encoder),
		slog.String("output", d.opts.Output))

	if err := d.streamFrames(ctx, stdin, total); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("render: %w\nffmpeg log: %s", err, ffLog.String())
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("render: ffmpeg: %w\nffmpeg log: %s", err, ffLog.String())
	}

	elapsed := time.Since(start)
	if d.opts.Stats {
		d.logger.Info("render: performance report",
			slog.Int("frames", total),
			slog.Duration("total", elapsed),
			slog.Float64("effective_fps", float64(total)/elapsed.Seconds()))
	}

	d.logger.Info("render: done",
		slog.String("output", d.opts.Output),
		slog.Duration("elapsed", elapsed))
	return nil
}

// streamFrames composites frames in worker-pool chunks and writes them to w
// in frame order. Chunking bounds memory: only workers*4 canvases are alive
// at once.
func (d *Driver) streamFrames(ctx context.Context, w io.Writer, total int) error {
	chunk := d.opts.Workers * 4
	if chunk < 1 {
		chunk = 1
	}
	buf := make([]*image.RGBA, chunk)

	for base := 0; base < total; base += chunk {
		n := chunk
		if base+n > total {
			n = total - base
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.opts.Workers)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := d.compositor.RenderFrame(base + i)
				if err != nil {
					return fmt.Errorf("frame %d: %w", base+i, err)
				}
				buf[i] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := 0; i < n; i++ {
			if _, err := w.Write(buf[i].Pix); err != nil {
				return fmt.Errorf("frame %d: write: %w", base+i, err)
			}
			buf[i] = nil
		}

		d.logger.Debug("render: progress",
			slog.Int("done", base+n),
			slog.Int("total", total))
	}

	return nil
}

func (d *Driver) ffmpegArgs() []string {
	comp := d.compositor.comp
	duration := float64(d.compositor.Duration()) / comp.FPS

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", comp.Width, comp.Height),
		"-framerate", fmt.Sprintf("%g", comp.FPS),
		"-i", "-",
	}

	hasAudio := len(comp.Audio.Clips()) > 0
	if hasAudio {
		args = append(args, comp.Audio.InputArgs(d.opts.AudioRoot)...)
		args = append(args,
			"-filter_complex", comp.Audio.FilterGraph(comp.FPS, 1),
			"-map", "0:v",
			"-map", "[aout]",
			"-c:a", "aac",
		)
	}

	args = append(args, "-c:v", d.opts.Encoder)
	args = append(args, qualityArgs(d.opts.Encoder, d.opts.Quality)...)
	args = append(args,
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%g", comp.FPS),
		"-t", fmt.Sprintf("%f", duration),
		d.opts.Output,
	)
	return args
}

// qualityArgs maps the configured quality onto encoder-specific flags.
// VideoToolbox has no stable -q:v across versions, so quality becomes a
// bitrate there.
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
