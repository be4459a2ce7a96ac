package audio

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
	"github.com/minutia-lab/minutia/pkg/utils/safe"
)

// DefaultTimeout bounds one ffmpeg invocation
const DefaultTimeout = 5 * time.Minute

// stderrLimit caps how much encoder output is preserved in error values
const stderrLimit = 200

// audioExtensions are formats the transcription API accepts directly,
// so extraction can be skipped for them.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".flac": true,
}

// IsAudioFile reports whether the path already points at an audio file
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extractor invokes the external ffmpeg encoder to pull a mono 16kHz MP3
// audio track out of a media file.
type Extractor struct {
	ffmpegPath string
	timeout    time.Duration
}

var _ interfaces.AudioExtractor = &Extractor{}

// Option is a functional option for Extractor configuration
type Option func(*Extractor)

// WithFFmpegPath overrides the encoder binary path
func WithFFmpegPath(path string) Option {
	return func(x *Extractor) {
		x.ffmpegPath = path
	}
}

// WithTimeout overrides the extraction timeout
func WithTimeout(d time.Duration) Option {
	return func(x *Extractor) {
		x.timeout = d
	}
}

func New(opts ...Option) *Extractor {
	x := &Extractor{
		ffmpegPath: "ffmpeg",
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract converts the media file into a temporary MP3 file and returns its
// path. The caller owns the returned file and must remove it when done.
func (x *Extractor) Extract(ctx context.Context, mediaPath string) (string, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return "", goerr.Wrap(model.ErrNotFound, "media file not found", goerr.V("path", mediaPath))
	}

	out, err := os.CreateTemp("", "minutia-audio-*.mp3")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary audio file")
	}
	outPath := out.Name()
	safe.Close(ctx, out)

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	// -vn skips the video stream; mono 16kHz is sufficient for speech
	cmd := exec.CommandContext(ctx, x.ffmpegPath,
		"-i", mediaPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "128k",
		"-y",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.From(ctx).Info("extracting audio", "input", mediaPath, "output", outPath)

	if err := cmd.Run(); err != nil {
		safe.Remove(ctx, outPath)

		if ctx.Err() == context.DeadlineExceeded {
			return "", goerr.Wrap(model.ErrExternalService, "audio extraction timed out",
				goerr.V("path", mediaPath), goerr.V("timeout", x.timeout))
		}
		return "", goerr.Wrap(model.ErrExternalService, "audio extraction failed",
			goerr.V("path", mediaPath), goerr.V("stderr", truncate(stderr.String())))
	}

	return outPath, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrLimit {
		return s[:stderrLimit]
	}
	return s
}
