package interfaces

import (
	"context"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// IndexHit is one raw nearest-neighbor result from a ChunkIndex backend
type IndexHit struct {
	Entry    *model.IndexedChunk
	Distance float64
}

// ChunkIndex defines raw persistence for embedded transcript chunks.
// Implementations must be safe for concurrent read and write, and must rank
// Search results by ascending cosine distance with deterministic tie order
// (insertion order) given identical stored state.
type ChunkIndex interface {
	// Upsert stores entries keyed by their composite chunk key, replacing
	// any entry with the same key.
	Upsert(ctx context.Context, entries []*model.IndexedChunk) error

	// Search returns up to limit entries nearest to vector. A non-empty
	// meetingID restricts candidates to that meeting before ranking.
	Search(ctx context.Context, vector []float64, limit int, meetingID types.MeetingID) ([]*IndexHit, error)

	// DeleteMeeting removes all entries for the meeting. Absence of
	// matching entries is not an error.
	DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error

	// ListMeetings returns one entry per distinct meeting ID in
	// first-seen (insertion) order.
	ListMeetings(ctx context.Context) ([]*model.MeetingRef, error)

	// Count returns the total number of stored entries.
	Count(ctx context.Context) (int, error)

	Close() error
}
