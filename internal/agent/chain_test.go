package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendai/agendai/internal/tools"
)

func TestWantsBooking(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"se estiver livre agende uma reunião", true},
		{"AGENDE um horário para mim", true},
		{"pode marcar amanhã às 15h?", true},
		{"please book it if free", true},
		{"a agenda está livre em 2025-04-04 15:00?", false},
		{"qual o clima em Brasília?", false},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, wantsBooking(tt.utterance))
		})
	}
}

func TestSlotReportedFree(t *testing.T) {
	assert.True(t, slotReportedFree("A agenda está livre em 2025-04-04 15:00."))
	assert.False(t, slotReportedFree("A agenda já está ocupada em 2025-04-04 15:00."))
	assert.False(t, slotReportedFree("Formato de data e hora inválido."))
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{
			"portuguese pattern",
			"agende uma reunião com descrição: alinhamento semanal",
			"alinhamento semanal",
		},
		{
			"unaccented pattern",
			"agende com descricao: revisão",
			"revisão",
		},
		{
			"english pattern",
			"book it with description: weekly sync",
			"weekly sync",
		},
		{
			"no pattern falls back to placeholder",
			"agende uma reunião amanhã",
			tools.DefaultDescription,
		},
		{
			"empty capture falls back to placeholder",
			"agende com descrição:   ",
			tools.DefaultDescription,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDescription(tt.utterance))
		})
	}
}
