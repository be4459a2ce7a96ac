package summary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// minTranscriptChars rejects transcripts too short to summarize meaningfully
const minTranscriptChars = 20

// Service generates structured meeting summaries through an LLM session
// with a JSON response schema.
type Service struct {
	llmClient gollem.LLMClient
}

var _ interfaces.Summarizer = &Service{}

// New creates a new summarization service with the provided LLM client
func New(llmClient gollem.LLMClient) (*Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &Service{llmClient: llmClient}, nil
}

// Summarize analyzes a transcript and returns a structured summary. The
// extra context string (e.g. meeting title and date) is prepended to the
// transcript when present.
func (s *Service) Summarize(ctx context.Context, transcript, extraContext string) (*model.Summary, error) {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "transcript is empty, nothing to summarize")
	}
	if len(trimmed) < minTranscriptChars {
		return nil, goerr.Wrap(model.ErrInvalidInput, "transcript is too short to summarize",
			goerr.V("chars", len(trimmed)))
	}

	session, err := s.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "failed to create LLM session", goerr.V("cause", err.Error()))
	}

	logging.From(ctx).Info("summarizing transcript", "chars", len(trimmed))

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(trimmed, extraContext)))
	if err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "summarization failed", goerr.V("cause", err.Error()))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(model.ErrExternalService, "summarization returned no content")
	}

	result, err := parseResponse(resp.Texts[0])
	if err != nil {
		return nil, err
	}

	return result, nil
}

// llmSummary is the structured output shape expected from the LLM
type llmSummary struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
}

func parseResponse(raw string) (*model.Summary, error) {
	// Missing keys would decode to zero values silently, so check
	// key presence first.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "failed to parse summary JSON",
			goerr.V("response", raw))
	}
	for _, required := range []string{"summary", "key_points", "action_items", "decisions"} {
		if _, ok := keys[required]; !ok {
			return nil, goerr.Wrap(model.ErrExternalService, "summary response missing required key",
				goerr.V("key", required), goerr.V("response", raw))
		}
	}

	var parsed llmSummary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "failed to parse summary JSON",
			goerr.V("response", raw))
	}

	return &model.Summary{
		Overview:    parsed.Summary,
		KeyPoints:   parsed.KeyPoints,
		ActionItems: parsed.ActionItems,
		Decisions:   parsed.Decisions,
	}, nil
}

const systemPrompt = `You are an expert meeting assistant. Your task is to analyze meeting transcripts and produce structured summaries.

Always respond with a valid JSON object using exactly these keys:
- "summary": a concise 2-4 sentence overview of the meeting
- "key_points": the most important 3-7 discussion topics
- "action_items": tasks with owners when mentioned, as "<task> (owner: <name>)"
- "decisions": key decisions made

Rules:
- If no action items were discussed, return an empty list for "action_items".
- If no decisions were made, return an empty list for "decisions".
- Be concise and factual. Do not invent information not in the transcript.`

func buildUserPrompt(transcript, extraContext string) string {
	var sb strings.Builder
	if c := strings.TrimSpace(extraContext); c != "" {
		sb.WriteString("Context: ")
		sb.WriteString(c)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Transcript:\n")
	sb.WriteString(transcript)
	return sb.String()
}

func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "MeetingSummary",
		Description: "Structured summary of one meeting transcript",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "Concise paragraph overview of the meeting",
				Required:    true,
			},
			"key_points": {
				Type:        gollem.TypeArray,
				Description: "Main discussion topics",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
			"action_items": {
				Type:        gollem.TypeArray,
				Description: "Tasks with owners when mentioned",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
			"decisions": {
				Type:        gollem.TypeArray,
				Description: "Key decisions made in the meeting",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
		},
	}
}
