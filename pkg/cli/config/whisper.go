package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/service/transcript"
)

// Whisper holds configuration for the speech-to-text API
type Whisper struct {
	apiKey  string
	baseURL string
	model   string
}

// Flags returns CLI flags for transcription configuration
func (x *Whisper) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "whisper-api-key",
			Usage:       "API key for the Whisper transcription API",
			Sources:     cli.EnvVars("MINUTIA_WHISPER_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "whisper-base-url",
			Usage:       "Base URL of an OpenAI-compatible transcription API (empty for api.openai.com)",
			Sources:     cli.EnvVars("MINUTIA_WHISPER_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "whisper-model",
			Usage:       "Whisper model for transcription",
			Value:       transcript.DefaultModel,
			Sources:     cli.EnvVars("MINUTIA_WHISPER_MODEL"),
			Destination: &x.model,
		},
	}
}

// LogAttrs returns log attributes for the Whisper configuration. The API
// key itself is never logged.
func (x *Whisper) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("api_key_set", x.apiKey != ""),
		slog.String("base_url", x.baseURL),
		slog.String("model", x.model),
	}
}

// Configure creates a transcription client from the configured flags
func (x *Whisper) Configure() (*transcript.Transcriber, error) {
	if x.apiKey == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "whisper-api-key is required")
	}

	return transcript.New(x.apiKey, x.baseURL, transcript.WithModel(x.model))
}
