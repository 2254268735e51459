package schedule

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendai/agendai/internal/logging"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda.json")
	return NewStore(path, logging.New(nil, "silent", "json"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-04-04 15:00", "2025-04-04 15:00"},
		{"2025-04-04T15:00", "2025-04-04 15:00"},
		{"2025-04-04 15:00:30", "2025-04-04 15:00"},
		{"04/04/2025 15:00", "2025-04-04 15:00"},
		{"04/04/2025 15h00", "2025-04-04 15:00"},
		{"  2025-04-04 15:00  ", "2025-04-04 15:00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"2025-04-04T15:00", "04/04/2025 15h00", "2025-12-31 23:59"}
	for _, in := range inputs {
		first, err := Normalize(in)
		require.NoError(t, err)
		second, err := Normalize(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, in := range []string{"", "amanhã às 15h", "2025-13-40 99:99", "15:00"} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := testStore(t)
	appts, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestLoadCorruptFile(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not an array"), 0o600))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrStoreRead)
}

func TestBookAssignsMonotonicIDs(t *testing.T) {
	s := testStore(t)

	for i := 1; i <= 3; i++ {
		appt, err := s.Book("2025-04-04 15:00", "teste")
		require.NoError(t, err)
		assert.Equal(t, i, appt.ID)
	}

	appts, err := s.Load()
	require.NoError(t, err)
	require.Len(t, appts, 3)
	for i, a := range appts {
		assert.Equal(t, i+1, a.ID, "ids follow insertion order")
	}
}

func TestBookPersistsWireFormat(t *testing.T) {
	s := testStore(t)
	_, err := s.Book("2025-04-04 15:00", "reunião")
	require.NoError(t, err)

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, float64(1), raw[0]["id"])
	assert.Equal(t, "2025-04-04 15:00", raw[0]["data_hora"])
	assert.Equal(t, "reunião", raw[0]["descricao"])
}

func TestBookDoesNotEnforceConflicts(t *testing.T) {
	// The write path accepts a booking at an occupied timestamp; only the
	// check path and the orchestration policy decide whether to proceed.
	s := testStore(t)

	first, err := s.Book("2025-04-04 15:00", "primeira")
	require.NoError(t, err)
	second, err := s.Book("2025-04-04 15:00", "segunda")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	appts, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, appts, 2)
}

func TestIsOccupied(t *testing.T) {
	s := testStore(t)
	_, err := s.Book("2025-04-04 15:00", "teste")
	require.NoError(t, err)

	occupied, err := s.IsOccupied("2025-04-04 15:00")
	require.NoError(t, err)
	assert.True(t, occupied)

	free, err := s.IsOccupied("2025-04-04 16:00")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsOccupiedReadFailure(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("[[[["), 0o600))

	_, err := s.IsOccupied("2025-04-04 15:00")
	assert.ErrorIs(t, err, ErrStoreRead)
}
