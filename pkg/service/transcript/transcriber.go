package transcript

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// DefaultModel is the Whisper model used for speech-to-text
const DefaultModel = "whisper-large-v3"

// MaxFileSizeBytes is the upload limit of the hosted Whisper API (25 MB)
const MaxFileSizeBytes = 25 * 1024 * 1024

// Transcriber converts audio files to text via an OpenAI-compatible
// transcription API.
type Transcriber struct {
	client *openai.Client
	model  string
}

var _ interfaces.Transcriber = &Transcriber{}

// Option is a functional option for Transcriber configuration
type Option func(*Transcriber)

// WithModel overrides the transcription model
func WithModel(model string) Option {
	return func(t *Transcriber) {
		t.model = model
	}
}

// New creates a Transcriber. baseURL may point at any OpenAI-compatible
// endpoint; empty means the default OpenAI API.
func New(apiKey, baseURL string, opts ...Option) (*Transcriber, error) {
	if apiKey == "" {
		return nil, goerr.New("transcription API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	t := &Transcriber{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Transcribe sends the audio file to the Whisper API and returns the
// transcript text with the detected (or declared) language and duration.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, language string) (*model.Transcript, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, goerr.Wrap(model.ErrNotFound, "audio file not found", goerr.V("path", audioPath))
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, goerr.Wrap(model.ErrInvalidInput, "audio file exceeds transcription API size limit",
			goerr.V("path", audioPath), goerr.V("size", info.Size()), goerr.V("limit", MaxFileSizeBytes))
	}

	logging.From(ctx).Info("transcribing audio", "path", audioPath, "size", info.Size(), "model", t.model)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "transcription failed",
			goerr.V("path", audioPath), goerr.V("cause", err.Error()))
	}

	result := &model.Transcript{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
	}
	if result.Language == "" {
		result.Language = language
	}

	logging.From(ctx).Info("transcription complete",
		"chars", len(result.Text), "language", result.Language, "duration", result.Duration)

	return result, nil
}
