package acrcloud

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// SampleExtractor cuts a short mono sample starting at the offset with ffmpeg.
// With no ffmpeg path configured the content passes through unchanged.
type SampleExtractor struct {
	ffmpegPath string
	seconds    int
	logger     zerolog.Logger
}

// NewSampleExtractor creates a new SampleExtractor
func NewSampleExtractor(ffmpegPath string, seconds int, logger zerolog.Logger) *SampleExtractor {
	return &SampleExtractor{
		ffmpegPath: ffmpegPath,
		seconds:    seconds,
		logger:     logger,
	}
}

// Enabled reports whether ffmpeg is configured
func (e *SampleExtractor) Enabled() bool {
	return e.ffmpegPath != ""
}

// Extract returns a wav sample of data beginning offset seconds in.
// On ffmpeg failure the unmodified content is returned so recognition can still be attempted.
func (e *SampleExtractor) Extract(ctx context.Context, data []byte, offset int) []byte {
	if !e.Enabled() {
		return data
	}

	args := []string{"-hide_banner", "-loglevel", "error"}
	if offset > 0 {
		args = append(args, "-ss", strconv.Itoa(offset))
	}
	args = append(args, "-i", "pipe:0")
	if e.seconds > 0 {
		args = append(args, "-t", strconv.Itoa(e.seconds))
	}
	args = append(args, "-vn", "-ac", "1", "-ar", "8000", "-f", "wav", "pipe:1")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil || stdout.Len() == 0 {
		e.logger.Warn().
			Err(err).
			Str("stderr", stderr.String()).
			Msg("ffmpeg sample extraction failed, sending raw content")
		return data
	}

	e.logger.Debug().
		Int("input_bytes", len(data)).
		Int("sample_bytes", stdout.Len()).
		Int("offset", offset).
		Msg("Sample extracted")

	return stdout.Bytes()
}
