package ratings

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/agentdir/agent-directory/model"
)

// Compile-time interface guard.
var _ Backend = (*SQLiteBackend)(nil)

// SQLiteBackend stores the rating log in a SQLite database. Rating IDs are
// the primary key, so persisting the append-only log only ever inserts the
// rows that are new.
type SQLiteBackend struct {
	db *sql.DB
}

// created_at holds unix nanoseconds; integer ordering is what keeps the
// reloaded log in submission order.
const ratingsSchema = `
CREATE TABLE IF NOT EXISTS ratings (
	id         TEXT PRIMARY KEY,
	agent_slug TEXT NOT NULL,
	score      INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
	feedback   TEXT NOT NULL DEFAULT '',
	submitter  TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ratings_agent_slug ON ratings (agent_slug);
`

// NewSQLiteBackend opens (or creates) the ratings database at the given path
// and applies the pragmas SQLite wants for a single-writer workload.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if _, err := db.Exec(ratingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ratings schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// LoadAll reads the full log in submission order.
func (b *SQLiteBackend) LoadAll() ([]model.Rating, error) {
	rows, err := b.db.Query(`SELECT id, agent_slug, score, feedback, submitter, created_at FROM ratings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var r model.Rating
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.AgentSlug, &r.Score, &r.Feedback, &r.Submitter, &createdAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		r.Timestamp = time.Unix(0, createdAt).UTC()
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// PersistAll inserts any ratings not yet stored. Existing rows are left
// untouched; the log never rewrites history.
func (b *SQLiteBackend) PersistAll(ratings []model.Rating) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO ratings (id, agent_slug, score, feedback, submitter, created_at)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ratings {
		if _, err := stmt.Exec(r.ID, r.AgentSlug, r.Score, r.Feedback, r.Submitter, r.Timestamp.UnixNano()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert rating %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
