package index

import (
	"context"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

const (
	// DefaultSearchLimit is used when the caller passes a non-positive limit
	DefaultSearchLimit = 5

	// MaxSearchLimit caps how many chunks one search may return
	MaxSearchLimit = 20

	// embeddingBatchSize bounds one embedding API call
	embeddingBatchSize = 100
)

// Service implements the meeting index on top of an embedding model and a
// raw chunk index backend.
type Service struct {
	llmClient gollem.LLMClient
	store     interfaces.ChunkIndex
}

var _ interfaces.MeetingIndex = &Service{}

// New creates a meeting index service
func New(llmClient gollem.LLMClient, store interfaces.ChunkIndex) (*Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if store == nil {
		return nil, goerr.New("chunk index backend is required")
	}
	return &Service{llmClient: llmClient, store: store}, nil
}

// AddMeeting embeds and stores all chunks of one meeting, replacing any
// previously indexed chunks for the same meeting ID.
func (s *Service) AddMeeting(ctx context.Context, ref *model.MeetingRef, chunks []model.Chunk) (int, error) {
	if ref == nil {
		return 0, goerr.Wrap(model.ErrInvalidInput, "meeting reference is required")
	}
	if err := ref.ID.Validate(); err != nil {
		return 0, goerr.Wrap(model.ErrInvalidInput, "invalid meeting ID", goerr.V("cause", err.Error()))
	}
	if len(chunks) == 0 {
		return 0, goerr.Wrap(model.ErrInvalidInput, "no chunks to index", goerr.V("meetingID", ref.ID))
	}

	// Re-processing the same meeting replaces its chunks wholesale, so a
	// shorter transcript never leaves stale trailing chunks behind.
	if err := s.store.DeleteMeeting(ctx, ref.ID); err != nil {
		return 0, goerr.Wrap(err, "failed to clear previous chunks", goerr.V("meetingID", ref.ID))
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := s.embedBatched(ctx, texts)
	if err != nil {
		return 0, err
	}

	entries := make([]*model.IndexedChunk, len(chunks))
	for i, chunk := range chunks {
		entries[i] = &model.IndexedChunk{
			Key:       model.ChunkKey(ref.ID, chunk.Index),
			MeetingID: ref.ID,
			Title:     ref.Title,
			Date:      ref.Date,
			Chunk:     chunk,
			Embedding: embeddings[i],
		}
	}

	if err := s.store.Upsert(ctx, entries); err != nil {
		return 0, goerr.Wrap(err, "failed to store chunks", goerr.V("meetingID", ref.ID))
	}

	logging.From(ctx).Info("indexed meeting chunks",
		"meetingID", ref.ID, "title", ref.Title, "chunks", len(entries))

	return len(entries), nil
}

// Search embeds the query and returns the nearest stored chunks by ascending
// cosine distance. A non-empty meetingID scopes retrieval to that meeting.
// Out-of-range limits are clamped: values below 1 fall back to
// DefaultSearchLimit and values above MaxSearchLimit return at most
// MaxSearchLimit chunks.
func (s *Service) Search(ctx context.Context, query string, limit int, meetingID types.MeetingID) ([]model.ScoredChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "search query is empty")
	}

	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	// Skip the embedding call entirely when nothing is indexed
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count indexed chunks")
	}
	if total == 0 {
		return []model.ScoredChunk{}, nil
	}

	embeddings, err := s.embedBatched(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	hits, err := s.store.Search(ctx, embeddings[0], limit, meetingID)
	if err != nil {
		return nil, goerr.Wrap(err, "chunk search failed", goerr.V("meetingID", meetingID))
	}

	results := make([]model.ScoredChunk, len(hits))
	for i, hit := range hits {
		results[i] = model.ScoredChunk{
			Text:       hit.Entry.Chunk.Text,
			MeetingID:  hit.Entry.MeetingID,
			Title:      hit.Entry.Title,
			Date:       hit.Entry.Date,
			ChunkIndex: hit.Entry.Chunk.Index,
			Distance:   roundDistance(hit.Distance),
		}
	}

	return results, nil
}

// DeleteMeeting removes all indexed chunks of the meeting. Deleting a
// meeting that was never indexed is not an error.
func (s *Service) DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error {
	if err := meetingID.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "invalid meeting ID", goerr.V("cause", err.Error()))
	}

	if err := s.store.DeleteMeeting(ctx, meetingID); err != nil {
		return goerr.Wrap(err, "failed to delete meeting chunks", goerr.V("meetingID", meetingID))
	}

	logging.From(ctx).Info("deleted meeting from index", "meetingID", meetingID)
	return nil
}

// ListMeetings returns distinct indexed meetings in first-seen order
func (s *Service) ListMeetings(ctx context.Context) ([]*model.MeetingRef, error) {
	refs, err := s.store.ListMeetings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list indexed meetings")
	}
	return refs, nil
}

func (s *Service) embedBatched(ctx context.Context, texts []string) ([][]float64, error) {
	results := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += embeddingBatchSize {
		end := min(start+embeddingBatchSize, len(texts))

		embeddings, err := s.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, texts[start:end])
		if err != nil {
			return nil, goerr.Wrap(model.ErrExternalService, "embedding generation failed",
				goerr.V("batch", start/embeddingBatchSize), goerr.V("cause", err.Error()))
		}
		if len(embeddings) != end-start {
			return nil, goerr.Wrap(model.ErrExternalService, "embedding count mismatch",
				goerr.V("want", end-start), goerr.V("got", len(embeddings)))
		}

		results = append(results, embeddings...)
	}

	return results, nil
}

func roundDistance(d float64) float64 {
	return math.Round(d*10000) / 10000
}
