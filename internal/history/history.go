// Package history persists a ledger of completed merge runs in SQLite,
// so past outcomes survive across invocations and can be listed later.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Entry is one recorded merge outcome.
type Entry struct {
	ID        int64
	Date      string // YYYY-MM-DD
	Camera    string
	State     string // success, partial-salvage, failed
	Method    string // copy, reencode, or empty on failure
	Output    string
	Files     int
	Bytes     int64
	Error     string
	CreatedAt time.Time
}

// Filter specifies criteria for listing entries.
type Filter struct {
	Date   *string
	Camera *string
	State  *string
	Limit  int
}

// Store persists merge records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new entry and fills in its ID and CreatedAt.
func (s *Store) Add(e *Entry) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO merges (date, camera, state, method, output, files, bytes, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date, e.Camera, e.State, e.Method, e.Output, e.Files, e.Bytes, e.Error, now,
	)
	if err != nil {
		return fmt.Errorf("insert merge record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	return nil
}

// List returns entries matching the filter, most recent first.
func (s *Store) List(f Filter) ([]*Entry, error) {
	var conditions []string
	var args []any

	if f.Date != nil {
		conditions = append(conditions, "date = ?")
		args = append(args, *f.Date)
	}
	if f.Camera != nil {
		conditions = append(conditions, "camera = ?")
		args = append(args, *f.Camera)
	}
	if f.State != nil {
		conditions = append(conditions, "state = ?")
		args = append(args, *f.State)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, date, camera, state, method, output, files, bytes, error, created_at
		FROM merges ` + whereClause + ` ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list merge records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Camera, &e.State, &e.Method,
			&e.Output, &e.Files, &e.Bytes, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merge record: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merge records: %w", err)
	}

	return results, nil
}
