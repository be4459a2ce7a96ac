package interfaces

import (
	"context"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// AudioExtractor extracts a mono 16kHz audio file from a media file and
// returns the path of the extracted file.
type AudioExtractor interface {
	Extract(ctx context.Context, mediaPath string) (string, error)
}

// Transcriber converts an audio file into transcript text. The language
// hint is an optional ISO-639-1 code; empty means auto-detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*model.Transcript, error)
}

// Summarizer generates a structured summary from transcript text. The
// context string carries extra hints such as meeting title and date.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, context string) (*model.Summary, error)
}

// MeetingIndex is the vector store adapter: a persistent, queryable index of
// transcript chunks with per-meeting isolation.
type MeetingIndex interface {
	// AddMeeting replaces all indexed chunks of the meeting with the given
	// chunk set and returns the number of chunks stored.
	AddMeeting(ctx context.Context, ref *model.MeetingRef, chunks []model.Chunk) (int, error)

	// Search ranks stored chunks against the query by ascending cosine
	// distance. An empty index yields an empty result, not an error.
	Search(ctx context.Context, query string, limit int, meetingID types.MeetingID) ([]model.ScoredChunk, error)

	// DeleteMeeting removes all chunks of the meeting (idempotent).
	DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error

	// ListMeetings returns distinct indexed meetings in first-seen order.
	ListMeetings(ctx context.Context) ([]*model.MeetingRef, error)
}
