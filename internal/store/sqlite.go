package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore is the on-device Repository implementation.
type SQLiteStore struct {
	db *sql.DB
}

var _ Repository = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the SQLite database at dsn,
// applies the recommended pragmas, and ensures the schema exists.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		duration INTEGER NOT NULL,
		instructor TEXT,
		location TEXT,
		weather_conditions TEXT,
		general_notes TEXT,
		skills_json TEXT NOT NULL,
		focus_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// List returns all sessions, most recent date first. Sessions sharing
// a date come back newest insertion first.
func (s *SQLiteStore) List(ctx context.Context) ([]session.Session, error) {
	query := `
		SELECT id, date, duration, instructor, location, weather_conditions,
		       general_notes, skills_json, focus_json
		FROM sessions
		ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &RepositoryError{Op: "list", Err: err}
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, &RepositoryError{Op: "list", Err: err}
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{Op: "list", Err: err}
	}
	return sessions, nil
}

// Create persists a session.
func (s *SQLiteStore) Create(ctx context.Context, sess session.Session) error {
	skillsJSON, err := json.Marshal(sess.Skills)
	if err != nil {
		return &RepositoryError{Op: "create", Err: fmt.Errorf("encode skills: %w", err)}
	}
	focusJSON, err := json.Marshal(sess.FocusSkills)
	if err != nil {
		return &RepositoryError{Op: "create", Err: fmt.Errorf("encode focus skills: %w", err)}
	}

	query := `
		INSERT INTO sessions (
			id, date, duration, instructor, location, weather_conditions,
			general_notes, skills_json, focus_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		sess.ID, sess.Date, sess.Duration,
		nullable(sess.Instructor), nullable(sess.Location), nullable(sess.Weather),
		nullable(sess.GeneralNotes),
		string(skillsJSON), string(focusJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return &RepositoryError{Op: "create", Err: err}
	}
	return nil
}

// Delete removes a session by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return &RepositoryError{Op: "delete", Err: err}
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return &RepositoryError{Op: "delete", Err: err}
	}
	if rowsDeleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &RepositoryError{Op: "ping", Err: err}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for raw queries in tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func scanSession(rows *sql.Rows) (session.Session, error) {
	var sess session.Session
	var instructor, location, weather, notes sql.NullString
	var skillsJSON, focusJSON string

	err := rows.Scan(
		&sess.ID, &sess.Date, &sess.Duration,
		&instructor, &location, &weather, &notes,
		&skillsJSON, &focusJSON,
	)
	if err != nil {
		return session.Session{}, fmt.Errorf("scan session row: %w", err)
	}

	sess.Instructor = instructor.String
	sess.Location = location.String
	sess.Weather = weather.String
	sess.GeneralNotes = notes.String

	if err := json.Unmarshal([]byte(skillsJSON), &sess.Skills); err != nil {
		return session.Session{}, fmt.Errorf("decode skills for %s: %w", sess.ID, err)
	}
	if err := json.Unmarshal([]byte(focusJSON), &sess.FocusSkills); err != nil {
		return session.Session{}, fmt.Errorf("decode focus skills for %s: %w", sess.ID, err)
	}
	return sess, nil
}

// nullable maps empty optional text to NULL so absent stays absent.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
