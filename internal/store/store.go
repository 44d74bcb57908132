// Package store persists study sessions, their documents, quizzes and quiz
// results in SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

var (
	// ErrNotFound is returned when a session, quiz or result does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a session ID is already taken.
	ErrConflict = errors.New("already exists")
)

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Store struct {
	db     *sql.DB
	driver Driver
}

// New opens the database and ensures the schema exists. An empty dsn
// selects a local thinkora.db file or a localhost PostgreSQL database.
func New(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite:
		drvName, schema = "sqlite", schemaSQLite
		if dsn == "" {
			dsn = "thinkora.db"
		}
		if dsn != ":memory:" && !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
	case DriverPostgres:
		drvName, schema = "pgx", schemaPostgres
		if dsn == "" {
			dsn = "postgres://localhost:5432/thinkora?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite && dsn == ":memory:" {
		// each pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context, schema string) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS study_sessions (
	id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	subject TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	questions_json TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	document_type TEXT NOT NULL,
	content TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	uploaded_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id);

CREATE TABLE IF NOT EXISTS quizzes (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	items_json TEXT NOT NULL,
	time_limit INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_session ON quizzes(session_id);

CREATE TABLE IF NOT EXISTS quiz_results (
	id TEXT PRIMARY KEY,
	quiz_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	percentage REAL NOT NULL DEFAULT 0,
	result_json TEXT NOT NULL,
	submitted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quiz_results_session ON quiz_results(session_id, user_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS study_sessions (
	id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	subject TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	questions_json TEXT,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id BIGSERIAL PRIMARY KEY,
	session_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	document_type TEXT NOT NULL,
	content TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	uploaded_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id);

CREATE TABLE IF NOT EXISTS quizzes (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	items_json TEXT NOT NULL,
	time_limit INTEGER NOT NULL,
	created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_session ON quizzes(session_id);

CREATE TABLE IF NOT EXISTS quiz_results (
	id TEXT PRIMARY KEY,
	quiz_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
	result_json TEXT NOT NULL,
	submitted_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quiz_results_session ON quiz_results(session_id, user_id);
`

// Timestamps are stored as unix seconds so both backends share one layout.
func unix(t time.Time) int64 { return t.Unix() }

func fromUnix(sec int64) time.Time { return time.Unix(sec, 0).UTC() }
