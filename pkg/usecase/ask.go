package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// FallbackAnswer is returned verbatim when retrieval yields nothing, and is
// the phrase the model is instructed to emit when the context is not enough.
const FallbackAnswer = "I don't have enough information in the provided meeting transcripts to answer that."

const askSystemPrompt = `You are a helpful meeting assistant that answers questions based ONLY on the
meeting transcript excerpts provided below.

Rules:
- Answer in 1-3 clear sentences.
- If the answer is present, quote or paraphrase the relevant part.
- Always end your answer with a "Sources:" line that lists each meeting title
  and date you used, e.g.: Sources: Sprint Review (2026-02-15)
- If the answer cannot be found in the provided excerpts, reply with exactly:
  "` + FallbackAnswer + `"
- Do NOT make up facts beyond what is in the excerpts.`

// Ask answers a question grounded in retrieved transcript chunks. A
// non-empty meetingID restricts retrieval to that meeting. contextLimit
// bounds how many chunks ground the answer; non-positive means the default.
func (uc *UseCases) Ask(ctx context.Context, question string, contextLimit int, meetingID types.MeetingID) (*model.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "question is empty")
	}

	if contextLimit < 1 {
		contextLimit = uc.contextLimit
	}

	chunks, err := uc.meetingIndex.Search(ctx, question, contextLimit, meetingID)
	if err != nil {
		return nil, goerr.Wrap(err, "context retrieval failed", goerr.V("meetingID", meetingID))
	}

	if len(chunks) == 0 {
		logging.From(ctx).Info("no relevant chunks found, returning fallback answer",
			"meetingID", meetingID)
		return &model.Answer{
			Question:  question,
			Answer:    FallbackAnswer,
			Citations: []model.Citation{},
			Model:     uc.answerModel,
		}, nil
	}

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(askSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "failed to create LLM session",
			goerr.V("cause", err.Error()))
	}

	userPrompt := fmt.Sprintf("Context from meeting transcripts:\n\n%s\n\nQuestion: %s",
		buildContextBlock(chunks), strings.TrimSpace(question))

	logging.From(ctx).Info("answering question", "chunks", len(chunks), "meetingID", meetingID)

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt))
	if err != nil {
		return nil, goerr.Wrap(model.ErrExternalService, "answer generation failed",
			goerr.V("cause", err.Error()))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(model.ErrExternalService, "answer generation returned no content")
	}

	return &model.Answer{
		Question:  question,
		Answer:    strings.TrimSpace(resp.Texts[0]),
		Citations: model.DedupCitations(chunks),
		Model:     uc.answerModel,
	}, nil
}

// buildContextBlock formats chunks as a numbered list in rank order
func buildContextBlock(chunks []model.ScoredChunk) string {
	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = fmt.Sprintf("[%d] Meeting: %s (%s)\n    %s",
			i+1, chunk.Title, chunk.Date, chunk.Text)
	}
	return strings.Join(blocks, "\n\n")
}
