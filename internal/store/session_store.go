package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/agendai/agendai/internal/agent"
	"github.com/agendai/agendai/internal/domain"
	"github.com/agendai/agendai/internal/llm"
)

// SQLiteSessionStore implements agent.SessionStore backed by SQLite, so
// chat history survives process restarts.
type SQLiteSessionStore struct {
	db *DB
}

var _ agent.SessionStore = (*SQLiteSessionStore)(nil)

// NewSQLiteSessionStore creates a session store using the given database.
func NewSQLiteSessionStore(db *DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// GetOrCreate finds an existing session by key or creates a new one.
func (s *SQLiteSessionStore) GetOrCreate(key string) *domain.Session {
	var sess domain.Session
	var createdAt, updatedAt string
	err := s.db.sql.QueryRow(
		`SELECT id, key_str, created_at, updated_at FROM sessions WHERE key_str = ?`, key,
	).Scan(&sess.ID, &sess.Key, &createdAt, &updatedAt)

	if err == nil {
		sess.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		sess.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		sess.Messages = s.loadMessages(sess.ID)
		return &sess
	}

	sess = domain.Session{
		ID:        uuid.New().String(),
		Key:       key,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = s.db.sql.Exec(
		`INSERT INTO sessions (id, key_str, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sess.ID, key,
		sess.CreatedAt.Format(time.DateTime), sess.UpdatedAt.Format(time.DateTime),
	)
	if err != nil {
		s.db.log.Error().Err(err).Str("key", key).Msg("creating session failed")
	}
	return &sess
}

// Get returns a session by ID with its messages, or nil if not found.
func (s *SQLiteSessionStore) Get(id string) *domain.Session {
	var sess domain.Session
	var createdAt, updatedAt string
	err := s.db.sql.QueryRow(
		`SELECT id, key_str, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Key, &createdAt, &updatedAt)
	if err != nil {
		return nil
	}

	sess.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	sess.Messages = s.loadMessages(id)
	return &sess
}

// Append adds a message to a session.
func (s *SQLiteSessionStore) Append(sessionID string, msg domain.Message) {
	var toolCalls sql.NullString
	if len(msg.ToolCalls) > 0 {
		if data, err := json.Marshal(msg.ToolCalls); err == nil {
			toolCalls = sql.NullString{String: string(data), Valid: true}
		}
	}

	var toolCallID sql.NullString
	if msg.ToolCallID != "" {
		toolCallID = sql.NullString{String: msg.ToolCallID, Valid: true}
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.sql.Exec(
		`INSERT INTO messages (session_id, role, content, tool_calls, tool_call_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, msg.Role, msg.Content, toolCalls, toolCallID, ts.Format(time.DateTime),
	)
	if err != nil {
		s.db.log.Error().Err(err).Str("sessionId", sessionID).Msg("appending message failed")
		return
	}

	_, err = s.db.sql.Exec(
		`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		time.Now().Format(time.DateTime), sessionID,
	)
	if err != nil {
		s.db.log.Error().Err(err).Str("sessionId", sessionID).Msg("touching session failed")
	}
}

// History returns the message history for a session as LLM messages.
func (s *SQLiteSessionStore) History(sessionID string) []llm.Message {
	msgs := s.loadMessages(sessionID)
	if len(msgs) == 0 {
		return nil
	}
	return agent.HistoryMessages(msgs)
}

// List returns all session IDs.
func (s *SQLiteSessionStore) List() []string {
	rows, err := s.db.sql.Query(`SELECT id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		s.db.log.Error().Err(err).Msg("listing sessions failed")
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *SQLiteSessionStore) loadMessages(sessionID string) []domain.Message {
	rows, err := s.db.sql.Query(
		`SELECT role, content, tool_calls, tool_call_id, created_at
		 FROM messages WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		s.db.log.Error().Err(err).Str("sessionId", sessionID).Msg("loading messages failed")
		return nil
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		var toolCalls, toolCallID sql.NullString
		var createdAt string
		if err := rows.Scan(&m.Role, &m.Content, &toolCalls, &toolCallID, &createdAt); err != nil {
			continue
		}
		if toolCalls.Valid {
			_ = json.Unmarshal([]byte(toolCalls.String), &m.ToolCalls)
		}
		m.ToolCallID = toolCallID.String
		m.Timestamp, _ = time.Parse(time.DateTime, createdAt)
		msgs = append(msgs, m)
	}
	return msgs
}
