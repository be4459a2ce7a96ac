package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// Memory is an in-memory ChunkIndex for development and testing. Entries are
// kept in insertion order so that ranking ties are deterministic.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*model.IndexedChunk
	order   []string
}

var _ interfaces.ChunkIndex = &Memory{}

func New() *Memory {
	return &Memory{
		entries: make(map[string]*model.IndexedChunk),
	}
}

// copyEntry creates a deep copy of an indexed chunk
func copyEntry(e *model.IndexedChunk) *model.IndexedChunk {
	copied := &model.IndexedChunk{
		Key:       e.Key,
		MeetingID: e.MeetingID,
		Title:     e.Title,
		Date:      e.Date,
		Chunk:     e.Chunk,
	}
	if e.Embedding != nil {
		copied.Embedding = make([]float64, len(e.Embedding))
		copy(copied.Embedding, e.Embedding)
	}
	return copied
}

func (m *Memory) Upsert(ctx context.Context, entries []*model.IndexedChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if e.Key == "" {
			return goerr.New("index entry key must not be empty", goerr.V("meeting_id", e.MeetingID))
		}
		if _, exists := m.entries[e.Key]; !exists {
			m.order = append(m.order, e.Key)
		}
		m.entries[e.Key] = copyEntry(e)
	}

	return nil
}

func (m *Memory) Search(ctx context.Context, vector []float64, limit int, meetingID types.MeetingID) ([]*interfaces.IndexHit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]*interfaces.IndexHit, 0, len(m.order))
	for _, key := range m.order {
		e := m.entries[key]
		if meetingID != "" && e.MeetingID != meetingID {
			continue
		}
		hits = append(hits, &interfaces.IndexHit{
			Entry:    copyEntry(e),
			Distance: cosineDistance(vector, e.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *Memory) DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := m.order[:0]
	for _, key := range m.order {
		if m.entries[key].MeetingID == meetingID {
			delete(m.entries, key)
			continue
		}
		remaining = append(remaining, key)
	}
	m.order = remaining

	return nil
}

func (m *Memory) ListMeetings(ctx context.Context) ([]*model.MeetingRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[types.MeetingID]bool, len(m.order))
	var refs []*model.MeetingRef
	for _, key := range m.order {
		e := m.entries[key]
		if seen[e.MeetingID] {
			continue
		}
		seen[e.MeetingID] = true
		refs = append(refs, &model.MeetingRef{
			ID:    e.MeetingID,
			Title: e.Title,
			Date:  e.Date,
		})
	}

	return refs, nil
}

func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order), nil
}

func (m *Memory) Close() error {
	return nil
}

// cosineDistance is 1 - cosine similarity. Zero vectors yield the maximum
// distance so that broken embeddings never rank first.
func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
