package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the Gemini LLM client used for
// summarization, answer generation and embeddings.
type Gemini struct {
	projectID   string
	location    string
	answerModel string
}

// Flags returns CLI flags for Gemini configuration
func (x *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("MINUTIA_GEMINI_PROJECT"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("MINUTIA_GEMINI_LOCATION"),
			Destination: &x.location,
		},
		&cli.StringFlag{
			Name:        "answer-model",
			Usage:       "Model name reported in answer responses",
			Value:       "gemini-2.0-flash",
			Sources:     cli.EnvVars("MINUTIA_ANSWER_MODEL"),
			Destination: &x.answerModel,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (x *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", x.projectID),
		slog.String("location", x.location),
		slog.String("answer_model", x.answerModel),
	}
}

// AnswerModel returns the model name reported in answers
func (x *Gemini) AnswerModel() string {
	return x.answerModel
}

// Configure creates a new Gemini LLM client from the configured flags
func (x *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if x.projectID == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "gemini-project is required")
	}

	client, err := gemini.New(ctx, x.projectID, x.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}
