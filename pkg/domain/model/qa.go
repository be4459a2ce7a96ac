package model

import "github.com/minutia-lab/minutia/pkg/domain/types"

// Citation is a deduplicated pointer to one retrieved chunk, used to ground
// an answer. It carries no embedding or distance.
type Citation struct {
	Text       string          `json:"text"`
	MeetingID  types.MeetingID `json:"meeting_id"`
	Title      string          `json:"title"`
	Date       string          `json:"date"`
	ChunkIndex int             `json:"chunk_index"`
}

// Answer is the response of the QA engine
type Answer struct {
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Model     string     `json:"model"`
}

// DedupCitations converts retrieval results into citations, dropping
// duplicates by (meeting_id, chunk_index) and preserving first-seen order.
// Colliding citations from different ranks keep the earlier rank's position;
// the list is not re-sorted by distance.
func DedupCitations(chunks []ScoredChunk) []Citation {
	type key struct {
		meetingID  types.MeetingID
		chunkIndex int
	}

	seen := make(map[key]struct{}, len(chunks))
	citations := make([]Citation, 0, len(chunks))
	for _, c := range chunks {
		k := key{meetingID: c.MeetingID, chunkIndex: c.ChunkIndex}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		citations = append(citations, Citation{
			Text:       c.Text,
			MeetingID:  c.MeetingID,
			Title:      c.Title,
			Date:       c.Date,
			ChunkIndex: c.ChunkIndex,
		})
	}

	return citations
}
