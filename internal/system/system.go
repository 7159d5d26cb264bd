// Package system probes the machine a render runs on: file-descriptor
// limits, hardware H.264 encoders, audio file durations, and worker-pool
// sizing from CPU and memory headroom.
package system

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file soft limit; a render keeps the
// ffmpeg pipe plus every screenshot and audio source open at once.
func InitResourceLimits(logger *slog.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("system: get file limit failed", slog.String("error", err.Error()))
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("system: set file limit failed", slog.String("error", err.Error()))
		return
	}
	logger.Debug("system: file limit raised", slog.Uint64("limit", rLimit.Cur))
}

// DetectEncoder returns the best available H.264 encoder, preferring
// hardware (VideoToolbox on macOS, NVENC on NVIDIA) over libx264.
func DetectEncoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// DefaultQuality picks a sensible quality for the encoder when the config
// leaves it at zero. x264/NVENC values are CRF-like; VideoToolbox quality is
// a bitrate multiplier (quality*100 kbit/s).
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// AudioDuration returns the duration of an audio file in seconds via
// ffprobe.
func AudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, fmt.Errorf("ffprobe %s: parse: %w", path, err)
	}
	return duration, nil
}

// RenderWorkers sizes the frame-render pool. requested > 0 wins; otherwise
// the pool is sized from physical cores, capped so that in-flight canvases
// (workers*4 per chunk) fit comfortably in available memory.
func RenderWorkers(requested, width, height int) int {
	if requested > 0 {
		return requested
	}

	workers, err := cpu.Counts(false)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available > 0 {
		frameBytes := uint64(width) * uint64(height) * 4
		// Half of available memory across the chunk of in-flight frames.
		budget := vm.Available / 2
		if maxByMem := int(budget / (frameBytes * 4)); maxByMem >= 1 && maxByMem < workers {
			workers = maxByMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}
