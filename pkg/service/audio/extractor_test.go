package audio_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/service/audio"
)

func TestIsAudioFile(t *testing.T) {
	cases := map[string]bool{
		"meeting.mp3":        true,
		"meeting.WAV":        true,
		"voice.m4a":          true,
		"notes.ogg":          true,
		"raw.flac":           true,
		"recording.mp4":      false,
		"recording.mov":      false,
		"/tmp/deep/clip.avi": false,
		"no-extension":       false,
		"archive.mp3.tar.gz": false,
	}

	for path, want := range cases {
		gt.V(t, audio.IsAudioFile(path)).Equal(want)
	}
}

func TestExtractMissingFile(t *testing.T) {
	x := audio.New()

	_, err := x.Extract(context.Background(), "/nonexistent/video.mp4")
	gt.Error(t, err)
	gt.B(t, errors.Is(err, model.ErrNotFound)).True()
}

func TestExtractEncoderFailure(t *testing.T) {
	// A text file is not a decodable media container, so a real encoder
	// exits nonzero. Use /bin/false as the encoder to avoid requiring
	// ffmpeg on the test host.
	mediaPath := filepath.Join(t.TempDir(), "not-a-video.mp4")
	gt.NoError(t, os.WriteFile(mediaPath, []byte("plain text"), 0o600)).Required()

	x := audio.New(audio.WithFFmpegPath("/bin/false"), audio.WithTimeout(10*time.Second))

	_, err := x.Extract(context.Background(), mediaPath)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, model.ErrExternalService)).True()
}

func TestExtractTimeout(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "video.mp4")
	gt.NoError(t, os.WriteFile(mediaPath, []byte("x"), 0o600)).Required()

	// Encoder that never finishes within the configured timeout
	encoder := filepath.Join(dir, "slow-encoder.sh")
	gt.NoError(t, os.WriteFile(encoder, []byte("#!/bin/sh\nsleep 10\n"), 0o700)).Required()

	x := audio.New(audio.WithFFmpegPath(encoder), audio.WithTimeout(100*time.Millisecond))

	_, err := x.Extract(context.Background(), mediaPath)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, model.ErrExternalService)).True()
}
