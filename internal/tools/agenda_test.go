package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendai/agendai/internal/schedule"
)

func testAgenda(t *testing.T) (*schedule.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda.json")
	return schedule.NewStore(path, silentLog()), path
}

func TestCheckAvailabilityFree(t *testing.T) {
	store, _ := testAgenda(t)
	tool := NewCheckAvailabilityTool(store, silentLog())

	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "2025-04-04 15:00"})
	require.NoError(t, err)
	assert.Contains(t, out, FreeSlotPhrase)
	assert.Contains(t, out, "2025-04-04 15:00")
}

func TestCheckAvailabilityOccupied(t *testing.T) {
	store, _ := testAgenda(t)
	_, err := store.Book("2025-04-04 15:00", "teste")
	require.NoError(t, err)

	tool := NewCheckAvailabilityTool(store, silentLog())
	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "2025-04-04 15:00"})
	require.NoError(t, err)
	assert.Contains(t, out, "ocupada")
	assert.NotContains(t, out, FreeSlotPhrase)
}

func TestCheckAvailabilityNormalizesInput(t *testing.T) {
	store, _ := testAgenda(t)
	_, err := store.Book("2025-04-04 15:00", "teste")
	require.NoError(t, err)

	tool := NewCheckAvailabilityTool(store, silentLog())
	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "2025-04-04T15:00"})
	require.NoError(t, err)
	assert.Contains(t, out, "ocupada")
}

func TestCheckAvailabilityInvalidDate(t *testing.T) {
	store, path := testAgenda(t)
	tool := NewCheckAvailabilityTool(store, silentLog())

	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "amanhã de tarde"})
	require.NoError(t, err)
	assert.Contains(t, out, "inválido")
	assert.NotContains(t, out, FreeSlotPhrase)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "check path must not mutate the store")
}

func TestCheckAvailabilityCorruptStoreAborts(t *testing.T) {
	store, path := testAgenda(t)
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))

	tool := NewCheckAvailabilityTool(store, silentLog())
	_, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "2025-04-04 15:00"})
	assert.ErrorIs(t, err, schedule.ErrStoreRead)
}

func TestScheduleAppointment(t *testing.T) {
	store, _ := testAgenda(t)
	tool := NewScheduleAppointmentTool(store, silentLog())

	out, err := tool.Execute(context.Background(), map[string]any{
		ArgDataHora:  "2025-04-04 15:00",
		ArgDescricao: "reunião de equipe",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "agendado")
	assert.Contains(t, out, "reunião de equipe")
	assert.Contains(t, out, "id 1")

	appts, err := store.Load()
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "2025-04-04 15:00", appts[0].Timestamp)
}

func TestScheduleAppointmentDefaultDescription(t *testing.T) {
	store, _ := testAgenda(t)
	tool := NewScheduleAppointmentTool(store, silentLog())

	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "2025-04-04 15:00"})
	require.NoError(t, err)
	assert.Contains(t, out, DefaultDescription)
}

func TestScheduleAppointmentInvalidDate(t *testing.T) {
	store, path := testAgenda(t)
	tool := NewScheduleAppointmentTool(store, silentLog())

	out, err := tool.Execute(context.Background(), map[string]any{ArgDataHora: "sexta que vem"})
	require.NoError(t, err)
	assert.Contains(t, out, "inválido")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid date must not create a booking")
}
