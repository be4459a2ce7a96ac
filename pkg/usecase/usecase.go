package usecase

import (
	"github.com/m-mizutani/gollem"

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/service/chunker"
)

// DefaultContextLimit is how many chunks are retrieved for one question
// when the caller does not specify a limit.
const DefaultContextLimit = 5

type UseCases struct {
	extractor    interfaces.AudioExtractor
	transcriber  interfaces.Transcriber
	summarizer   interfaces.Summarizer
	meetingIndex interfaces.MeetingIndex
	llmClient    gollem.LLMClient

	answerModel  string
	chunkSize    int
	overlap      int
	contextLimit int
}

type Option func(*UseCases)

// WithChunking overrides the transcript chunking window
func WithChunking(chunkSize, overlap int) Option {
	return func(uc *UseCases) {
		uc.chunkSize = chunkSize
		uc.overlap = overlap
	}
}

// WithContextLimit overrides the default retrieval depth for questions
func WithContextLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.contextLimit = limit
	}
}

// WithAnswerModel records the model identifier reported in answers
func WithAnswerModel(name string) Option {
	return func(uc *UseCases) {
		uc.answerModel = name
	}
}

func New(
	extractor interfaces.AudioExtractor,
	transcriber interfaces.Transcriber,
	summarizer interfaces.Summarizer,
	meetingIndex interfaces.MeetingIndex,
	llmClient gollem.LLMClient,
	opts ...Option,
) *UseCases {
	uc := &UseCases{
		extractor:    extractor,
		transcriber:  transcriber,
		summarizer:   summarizer,
		meetingIndex: meetingIndex,
		llmClient:    llmClient,

		chunkSize:    chunker.DefaultChunkSize,
		overlap:      chunker.DefaultOverlap,
		contextLimit: DefaultContextLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
