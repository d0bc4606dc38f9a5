package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/zatsuon-dev/zatsuon/internal/model"
)

// Journal persists one row per hop to a SQLite database, giving the
// operator an audit trail of exactly what decoy traffic a run generated.
// The walk never reads the journal back; it is strictly write-ahead
// evidence, so losing it cannot change what the walk does.
type Journal struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Open opens or creates a Journal in the given directory.
// The directory is created if it does not exist.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, "zatsuon.db")

	// modernc.org/sqlite connection string; mode=rwc creates the file
	// on first open.
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer, and the session flow is the only
	// writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	j := &Journal{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := j.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Path returns the journal database file path.
func (j *Journal) Path() string {
	return j.dbPath
}

// createTables creates the schema if it doesn't exist.
func (j *Journal) createTables() error {
	schema := `
	-- One row per hop of the random walk
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		url TEXT NOT NULL,
		depth INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		links INTEGER NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_visits_session ON visits(session_id);
	CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
	`

	_, err := j.db.ExecContext(context.Background(), schema)
	return err
}

// Record appends one hop to the journal.
func (j *Journal) Record(ctx context.Context, v model.Visit) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO visits (session_id, url, depth, outcome, links, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.SessionID, v.URL, v.Depth, string(v.Outcome), v.Links, v.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// Visits returns the recorded hops for a session, oldest first.
// Pass an empty sessionID for all sessions.
func (j *Journal) Visits(ctx context.Context, sessionID string) ([]model.Visit, error) {
	query := `SELECT session_id, url, depth, outcome, links, timestamp
		FROM visits`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []model.Visit
	for rows.Next() {
		var v model.Visit
		var outcome string
		if err := rows.Scan(&v.SessionID, &v.URL, &v.Depth, &outcome, &v.Links, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.Outcome = model.VisitOutcome(outcome)
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// Count returns the total number of recorded hops.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return n, nil
}
