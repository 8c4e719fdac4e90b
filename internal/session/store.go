package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nahcub/call-bot/internal/db"
)

// Session is one conversation's persisted order state.
type Session struct {
	ID        string     `json:"id"`
	Fields    FieldState `json:"fields"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Store persists session field state. Concurrent extraction passes against
// the same session must be serialized by the caller; the store itself only
// guarantees that each write is atomic.
type Store struct {
	db *db.DB
}

// NewStore creates a session store on the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new session with all fields unset.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	sess.UpdatedAt = sess.CreatedAt

	data, err := json.Marshal(sess.Fields)
	if err != nil {
		return nil, fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, fields, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sess.ID, string(data), sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// Get retrieves a session by ID. Returns nil, nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var fields string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fields, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &fields, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &sess.Fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	return &sess, nil
}

// SaveFields overwrites the stored field state for a session.
func (s *Store) SaveFields(ctx context.Context, id string, f FieldState) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET fields = ?, updated_at = ? WHERE id = ?`,
		string(data), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// List returns all sessions, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields, created_at, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var fields string
		if err := rows.Scan(&sess.ID, &fields, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &sess.Fields); err != nil {
			return nil, fmt.Errorf("unmarshalling fields: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
