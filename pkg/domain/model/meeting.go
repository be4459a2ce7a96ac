package model

import (
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// Meeting is the top-level indexed unit: one processed recording with its
// transcript, structured summary and chunk set. A meeting is immutable once
// indexed; re-processing replaces the whole chunk set.
type Meeting struct {
	ID         types.MeetingID `json:"meeting_id"`
	Title      string          `json:"title"`
	Date       string          `json:"date"`
	Transcript string          `json:"transcript"`
	Summary    Summary         `json:"summary"`
}

// Summary is the structured summary generated from a transcript
type Summary struct {
	Overview    string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
}

// MeetingRef is the listing view of an indexed meeting
type MeetingRef struct {
	ID    types.MeetingID `json:"meeting_id"`
	Title string          `json:"title"`
	Date  string          `json:"date"`
}

// ProcessResult is the aggregate outcome of a full pipeline run
type ProcessResult struct {
	MeetingID    types.MeetingID `json:"meeting_id"`
	Title        string          `json:"title"`
	Date         string          `json:"date"`
	Transcript   string          `json:"transcript"`
	Summary      Summary         `json:"summary"`
	ChunksStored int             `json:"chunks_stored"`
}

// Transcript is the result of the transcription stage
type Transcript struct {
	Text     string
	Language string
	Duration float64
}
