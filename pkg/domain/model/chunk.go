package model

import (
	"fmt"

	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// EmbeddingDimension is the dimension of chunk embedding vectors
const EmbeddingDimension = 768

// Chunk is a contiguous overlapping word-window segment of a transcript.
// Indices are contiguous from 0 within a meeting; EndWord is exclusive.
type Chunk struct {
	Index     int    `json:"chunk_index"`
	Text      string `json:"text"`
	StartWord int    `json:"start_word"`
	EndWord   int    `json:"end_word"`
}

// ChunkKey builds the composite index key for one chunk of a meeting
func ChunkKey(meetingID types.MeetingID, chunkIndex int) string {
	return fmt.Sprintf("%s__chunk_%d", meetingID, chunkIndex)
}

// IndexedChunk is a chunk with its embedding vector and meeting metadata,
// as stored in the chunk index.
type IndexedChunk struct {
	Key       string
	MeetingID types.MeetingID
	Title     string
	Date      string
	Chunk     Chunk
	Embedding []float64
}

// ScoredChunk is one retrieval result. Distance is cosine distance
// (lower = more relevant), rounded to 4 decimals.
type ScoredChunk struct {
	Text       string          `json:"text"`
	MeetingID  types.MeetingID `json:"meeting_id"`
	Title      string          `json:"title"`
	Date       string          `json:"date"`
	ChunkIndex int             `json:"chunk_index"`
	Distance   float64         `json:"distance"`
}
