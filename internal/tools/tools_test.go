package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendai/agendai/internal/logging"
)

func silentLog() *logging.Logger {
	return logging.New(nil, "silent", "json")
}

func TestWeatherTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Brasília", r.URL.Path)
		w.Write([]byte("Ensolarado +28°C\n"))
	}))
	defer srv.Close()

	tool := NewWeatherTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), map[string]any{"city": "Brasília"})
	require.NoError(t, err)
	assert.Equal(t, "O clima em Brasília é Ensolarado +28°C.", out)
}

func TestWeatherToolDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tool := NewWeatherTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), map[string]any{"city": "Brasília"})
	require.NoError(t, err, "handler failures must fold into the result string")
	assert.Contains(t, out, "Não consegui obter o clima")
}

func TestWeatherToolMissingCity(t *testing.T) {
	tool := NewWeatherTool(silentLog())
	out, err := tool.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "Não entendi")
}

func TestSpaceXTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/launches/upcoming", r.URL.Path)
		w.Write([]byte(`[{"name":"Starlink 99","date_local":"2026-09-10T14:30:00-04:00"}]`))
	}))
	defer srv.Close()

	tool := NewSpaceXTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "O próximo lançamento da SpaceX será Starlink 99 em 10/09/2026 14:30.", out)
}

func TestSpaceXToolEmptySchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tool := NewSpaceXTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, spaceXFailureReply, out)
}

func TestCountryTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/Brasil", r.URL.Path)
		w.Write([]byte(`[{"capital":["Brasília"],"population":212559417}]`))
	}))
	defer srv.Close()

	tool := NewCountryTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), map[string]any{"country": "Brasil"})
	require.NoError(t, err)
	assert.Equal(t, "Brasil tem como capital Brasília e uma população de aproximadamente 212.559.417 habitantes.", out)
}

func TestCountryToolNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tool := NewCountryTool(silentLog())
	tool.BaseURL = srv.URL

	out, err := tool.Execute(context.Background(), map[string]any{"country": "Atlantis"})
	require.NoError(t, err)
	assert.Contains(t, out, "Não encontrei informações sobre Atlantis")
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{212559417, "212.559.417"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.in))
	}
}
