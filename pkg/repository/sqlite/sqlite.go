package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	collection  TEXT NOT NULL,
	key         TEXT NOT NULL,
	meeting_id  TEXT NOT NULL,
	title       TEXT NOT NULL,
	date        TEXT NOT NULL,
	chunk_index INTEGER NOT NULL,
	text        TEXT NOT NULL,
	start_word  INTEGER NOT NULL,
	end_word    INTEGER NOT NULL,
	embedding   BLOB NOT NULL,
	PRIMARY KEY (collection, key)
);
CREATE INDEX IF NOT EXISTS idx_chunks_meeting ON chunks(collection, meeting_id);
`

// Store is a persistent on-disk ChunkIndex backed by SQLite. Entries of
// multiple collections share one database file under the data directory;
// all operations are scoped to the collection given at construction.
type Store struct {
	db         *sql.DB
	collection string
	path       string
}

var _ interfaces.ChunkIndex = &Store{}

// New opens (or creates) the index database under dataDir. The directory is
// created if it does not exist. WAL mode keeps concurrent search and upsert
// calls from different requests safe.
func New(dataDir, collection string) (*Store, error) {
	if collection == "" {
		return nil, goerr.New("collection name must not be empty")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create index directory", goerr.V("dir", dataDir))
	}

	dbPath := filepath.Join(dataDir, "index.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index database", goerr.V("path", dbPath))
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to initialize index schema", goerr.V("path", dbPath))
	}

	return &Store{
		db:         db,
		collection: collection,
		path:       dbPath,
	}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Upsert(ctx context.Context, entries []*model.IndexedChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (collection, key, meeting_id, title, date, chunk_index, text, start_word, end_word, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, key) DO UPDATE SET
			meeting_id = excluded.meeting_id,
			title = excluded.title,
			date = excluded.date,
			chunk_index = excluded.chunk_index,
			text = excluded.text,
			start_word = excluded.start_word,
			end_word = excluded.end_word,
			embedding = excluded.embedding
	`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare upsert")
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.Key == "" {
			return goerr.New("index entry key must not be empty", goerr.V("meeting_id", e.MeetingID))
		}

		embedding, err := json.Marshal(e.Embedding)
		if err != nil {
			return goerr.Wrap(err, "failed to encode embedding", goerr.V("key", e.Key))
		}

		if _, err := stmt.ExecContext(ctx,
			s.collection, e.Key, string(e.MeetingID), e.Title, e.Date,
			e.Chunk.Index, e.Chunk.Text, e.Chunk.StartWord, e.Chunk.EndWord, embedding,
		); err != nil {
			return goerr.Wrap(err, "failed to upsert chunk", goerr.V("key", e.Key))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit upsert")
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float64, limit int, meetingID types.MeetingID) ([]*interfaces.IndexHit, error) {
	query := `
		SELECT key, meeting_id, title, date, chunk_index, text, start_word, end_word, embedding
		FROM chunks WHERE collection = ?`
	args := []any{s.collection}
	if meetingID != "" {
		query += ` AND meeting_id = ?`
		args = append(args, string(meetingID))
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query chunks")
	}
	defer rows.Close()

	var hits []*interfaces.IndexHit
	for rows.Next() {
		e := &model.IndexedChunk{}
		var meetingID string
		var embedding []byte
		if err := rows.Scan(&e.Key, &meetingID, &e.Title, &e.Date,
			&e.Chunk.Index, &e.Chunk.Text, &e.Chunk.StartWord, &e.Chunk.EndWord, &embedding); err != nil {
			return nil, goerr.Wrap(err, "failed to scan chunk row")
		}
		e.MeetingID = types.MeetingID(meetingID)
		if err := json.Unmarshal(embedding, &e.Embedding); err != nil {
			return nil, goerr.Wrap(err, "failed to decode embedding", goerr.V("key", e.Key))
		}

		hits = append(hits, &interfaces.IndexHit{
			Entry:    e,
			Distance: cosineDistance(vector, e.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate chunk rows")
	}

	// Stable sort keeps rowid (insertion) order for ties
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *Store) DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM chunks WHERE collection = ? AND meeting_id = ?`,
		s.collection, string(meetingID),
	); err != nil {
		return goerr.Wrap(err, "failed to delete meeting chunks", goerr.V("meeting_id", meetingID))
	}
	return nil
}

func (s *Store) ListMeetings(ctx context.Context) ([]*model.MeetingRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT meeting_id, title, date FROM chunks
		WHERE collection = ? GROUP BY meeting_id ORDER BY MIN(rowid)`,
		s.collection,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query meetings")
	}
	defer rows.Close()

	var refs []*model.MeetingRef
	for rows.Next() {
		var id string
		ref := &model.MeetingRef{}
		if err := rows.Scan(&id, &ref.Title, &ref.Date); err != nil {
			return nil, goerr.Wrap(err, "failed to scan meeting row")
		}
		ref.ID = types.MeetingID(id)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate meeting rows")
	}

	return refs, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE collection = ?`, s.collection,
	).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count chunks")
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

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
