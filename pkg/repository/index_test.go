package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/repository/memory"
	"github.com/minutia-lab/minutia/pkg/repository/sqlite"
)

func newEntry(meetingID types.MeetingID, title, date string, chunkIndex int, text string, embedding []float64) *model.IndexedChunk {
	return &model.IndexedChunk{
		Key:       model.ChunkKey(meetingID, chunkIndex),
		MeetingID: meetingID,
		Title:     title,
		Date:      date,
		Chunk: model.Chunk{
			Index:     chunkIndex,
			Text:      text,
			StartWord: chunkIndex * 10,
			EndWord:   (chunkIndex + 1) * 10,
		},
		Embedding: embedding,
	}
}

func runChunkIndexTest(t *testing.T, newIndex func(t *testing.T) interfaces.ChunkIndex) {
	t.Helper()

	t.Run("search on empty index returns no hits", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		hits, err := idx.Search(ctx, []float64{1, 0}, 5, "")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(0)

		count, err := idx.Count(ctx)
		gt.NoError(t, err).Required()
		gt.N(t, count).Equal(0)
	})

	t.Run("search ranks by ascending cosine distance", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Sprint Review", "2026-02-15", 0, "far away topic", []float64{0, 1}),
			newEntry("m1", "Sprint Review", "2026-02-15", 1, "close topic", []float64{1, 0.1}),
			newEntry("m1", "Sprint Review", "2026-02-15", 2, "exact topic", []float64{1, 0}),
		})
		gt.NoError(t, err).Required()

		hits, err := idx.Search(ctx, []float64{1, 0}, 3, "")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(3)
		gt.N(t, hits[0].Entry.Chunk.Index).Equal(2)
		gt.N(t, hits[1].Entry.Chunk.Index).Equal(1)
		gt.N(t, hits[2].Entry.Chunk.Index).Equal(0)
		gt.B(t, hits[0].Distance <= hits[1].Distance).True()
		gt.B(t, hits[1].Distance <= hits[2].Distance).True()
	})

	t.Run("search limit truncates results", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "alpha", []float64{1, 0}),
			newEntry("m1", "Planning", "2026-03-01", 1, "beta", []float64{0.9, 0.1}),
			newEntry("m1", "Planning", "2026-03-01", 2, "gamma", []float64{0.8, 0.2}),
		})
		gt.NoError(t, err).Required()

		hits, err := idx.Search(ctx, []float64{1, 0}, 2, "")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(2)
	})

	t.Run("search with meeting filter excludes other meetings", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "from m1", []float64{1, 0}),
			newEntry("m2", "Retro", "2026-03-08", 0, "from m2", []float64{1, 0}),
		})
		gt.NoError(t, err).Required()

		hits, err := idx.Search(ctx, []float64{1, 0}, 10, "m2")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(1)
		gt.V(t, hits[0].Entry.MeetingID).Equal("m2")
	})

	t.Run("upsert replaces entry with same key", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		gt.NoError(t, idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "old text", []float64{1, 0}),
		})).Required()
		gt.NoError(t, idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "new text", []float64{1, 0}),
		})).Required()

		count, err := idx.Count(ctx)
		gt.NoError(t, err).Required()
		gt.N(t, count).Equal(1)

		hits, err := idx.Search(ctx, []float64{1, 0}, 1, "")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(1)
		gt.V(t, hits[0].Entry.Chunk.Text).Equal("new text")
	})

	t.Run("upsert rejects empty key", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{{MeetingID: "m1", Embedding: []float64{1}}})
		gt.Error(t, err)
	})

	t.Run("delete meeting removes only that meeting", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "m1 c0", []float64{1, 0}),
			newEntry("m1", "Planning", "2026-03-01", 1, "m1 c1", []float64{0, 1}),
			newEntry("m2", "Retro", "2026-03-08", 0, "m2 c0", []float64{1, 1}),
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, idx.DeleteMeeting(ctx, "m1")).Required()

		count, err := idx.Count(ctx)
		gt.NoError(t, err).Required()
		gt.N(t, count).Equal(1)

		hits, err := idx.Search(ctx, []float64{1, 0}, 10, "")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(1)
		gt.V(t, hits[0].Entry.MeetingID).Equal("m2")
	})

	t.Run("delete of unknown meeting is a no-op", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		gt.NoError(t, idx.DeleteMeeting(ctx, "never-indexed"))
	})

	t.Run("list meetings returns distinct meetings in first-seen order", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		err := idx.Upsert(ctx, []*model.IndexedChunk{
			newEntry("m1", "Planning", "2026-03-01", 0, "a", []float64{1, 0}),
			newEntry("m1", "Planning", "2026-03-01", 1, "b", []float64{0, 1}),
			newEntry("m2", "Retro", "2026-03-08", 0, "c", []float64{1, 1}),
		})
		gt.NoError(t, err).Required()

		refs, err := idx.ListMeetings(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, refs).Length(2)
		gt.V(t, refs[0].ID).Equal("m1")
		gt.V(t, refs[0].Title).Equal("Planning")
		gt.V(t, refs[0].Date).Equal("2026-03-01")
		gt.V(t, refs[1].ID).Equal("m2")
	})

	t.Run("list meetings on empty index is empty", func(t *testing.T) {
		idx := newIndex(t)
		ctx := context.Background()

		refs, err := idx.ListMeetings(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, refs).Length(0)
	})
}

func TestMemoryChunkIndex(t *testing.T) {
	runChunkIndexTest(t, func(t *testing.T) interfaces.ChunkIndex {
		return memory.New()
	})
}

func TestSQLiteChunkIndex(t *testing.T) {
	var serial int
	runChunkIndexTest(t, func(t *testing.T) interfaces.ChunkIndex {
		serial++
		idx, err := sqlite.New(t.TempDir(), fmt.Sprintf("meetings-%d", serial))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, idx.Close())
		})
		return idx
	})
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := sqlite.New(dir, "meetings")
	gt.NoError(t, err).Required()
	gt.S(t, idx.Path()).Contains(dir)
	_, statErr := os.Stat(idx.Path())
	gt.NoError(t, statErr)
	gt.NoError(t, idx.Upsert(ctx, []*model.IndexedChunk{
		newEntry("m1", "Kickoff", "2026-01-05", 0, "persisted chunk", []float64{1, 0}),
	})).Required()
	gt.NoError(t, idx.Close()).Required()

	reopened, err := sqlite.New(dir, "meetings")
	gt.NoError(t, err).Required()
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	gt.NoError(t, err).Required()
	gt.N(t, count).Equal(1)

	refs, err := reopened.ListMeetings(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, refs).Length(1)
	gt.V(t, refs[0].Title).Equal("Kickoff")
}
