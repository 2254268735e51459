package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendai/agendai/internal/domain"
	"github.com/agendai/agendai/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.New(nil, "silent", "json"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agendai.db")
	db, err := Open(path, logging.New(nil, "silent", "json"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := testDB(t)
	// A second migrate pass must be a no-op.
	require.NoError(t, db.migrate())
}

func TestSessionGetOrCreate(t *testing.T) {
	s := NewSQLiteSessionStore(testDB(t))

	first := s.GetOrCreate("cli:chat")
	require.NotNil(t, first)
	second := s.GetOrCreate("cli:chat")
	assert.Equal(t, first.ID, second.ID)

	other := s.GetOrCreate("cli:other")
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, s.List(), 2)
}

func TestSessionRoundTripWithToolCalls(t *testing.T) {
	s := NewSQLiteSessionStore(testDB(t))
	sess := s.GetOrCreate("cli:chat")

	s.Append(sess.ID, domain.Message{
		Role:      domain.RoleUser,
		Content:   "a agenda está livre?",
		Timestamp: time.Now(),
	})
	s.Append(sess.ID, domain.Message{
		Role: domain.RoleAssistant,
		ToolCalls: []domain.ToolCall{{
			ID:        "call_1",
			Name:      "checkAvailability",
			Arguments: `{"dataHora":"2025-04-04 15:00"}`,
		}},
		Timestamp: time.Now(),
	})
	s.Append(sess.ID, domain.Message{
		Role:       domain.RoleTool,
		Content:    "A agenda está livre em 2025-04-04 15:00.",
		ToolCallID: "call_1",
		Timestamp:  time.Now(),
	})

	history := s.History(sess.ID)
	require.Len(t, history, 3)
	require.Len(t, history[1].ToolCalls, 1)
	assert.Equal(t, "call_1", history[1].ToolCalls[0].ID)
	assert.Equal(t, "checkAvailability", history[1].ToolCalls[0].Name)
	assert.Equal(t, "call_1", history[2].ToolCallID)

	reloaded := s.Get(sess.ID)
	require.NotNil(t, reloaded)
	assert.Len(t, reloaded.Messages, 3)
}

func TestSessionHistoryEmpty(t *testing.T) {
	s := NewSQLiteSessionStore(testDB(t))
	assert.Nil(t, s.History("missing"))
	assert.Nil(t, s.Get("missing"))
}
