package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendai/agendai/internal/logging"
	"github.com/agendai/agendai/internal/schedule"
)

// Capability and argument names shared with the orchestration layer's
// chaining policy.
const (
	NameCheckAvailability   = "checkAvailability"
	NameScheduleAppointment = "scheduleAppointment"

	ArgDataHora  = "dataHora"
	ArgDescricao = "descricao"
)

// FreeSlotPhrase appears in a checkAvailability result exactly when the
// slot is free. The chaining policy matches on this substring, so the
// occupied and invalid-format replies must never contain it.
const FreeSlotPhrase = "está livre"

// DefaultDescription is used when a booking request carries no description.
const DefaultDescription = "Compromisso"

const invalidFormatReply = "Formato de data e hora inválido. Use AAAA-MM-DD HH:MM, por exemplo 2025-04-04 15:00."

// CheckAvailabilityTool reports whether a time slot is free in the agenda.
type CheckAvailabilityTool struct {
	store *schedule.Store
	log   *logging.Logger
}

// NewCheckAvailabilityTool creates the occupancy-check capability.
func NewCheckAvailabilityTool(store *schedule.Store, log *logging.Logger) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{store: store, log: log.Sub("tools.agenda")}
}

func (t *CheckAvailabilityTool) Name() string { return NameCheckAvailability }

func (t *CheckAvailabilityTool) Description() string {
	return "Verifica se a agenda está livre em uma data e hora."
}

func (t *CheckAvailabilityTool) InputSchema() string {
	return `{
	  "type": "object",
	  "properties": {
	    "dataHora": {"type": "string", "description": "Data e hora no formato AAAA-MM-DD HH:MM"}
	  },
	  "required": ["dataHora"]
	}`
}

func (t *CheckAvailabilityTool) Execute(_ context.Context, args map[string]any) (string, error) {
	timestamp, err := schedule.Normalize(stringArg(args, ArgDataHora))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidFormat) {
			return invalidFormatReply, nil
		}
		return "", err
	}

	occupied, err := t.store.IsOccupied(timestamp)
	if err != nil {
		// Corrupt agenda file: this must abort the turn, not degrade to text.
		return "", err
	}

	if occupied {
		return fmt.Sprintf("A agenda já está ocupada em %s.", timestamp), nil
	}
	return fmt.Sprintf("A agenda %s em %s.", FreeSlotPhrase, timestamp), nil
}

// ScheduleAppointmentTool books a new appointment. It does not check
// occupancy: the conflict decision belongs to the caller.
type ScheduleAppointmentTool struct {
	store *schedule.Store
	log   *logging.Logger
}

// NewScheduleAppointmentTool creates the booking capability.
func NewScheduleAppointmentTool(store *schedule.Store, log *logging.Logger) *ScheduleAppointmentTool {
	return &ScheduleAppointmentTool{store: store, log: log.Sub("tools.agenda")}
}

func (t *ScheduleAppointmentTool) Name() string { return NameScheduleAppointment }

func (t *ScheduleAppointmentTool) Description() string {
	return "Agenda um compromisso em uma data e hora com uma descrição."
}

func (t *ScheduleAppointmentTool) InputSchema() string {
	return `{
	  "type": "object",
	  "properties": {
	    "dataHora": {"type": "string", "description": "Data e hora no formato AAAA-MM-DD HH:MM"},
	    "descricao": {"type": "string", "description": "Descrição do compromisso"}
	  },
	  "required": ["dataHora"]
	}`
}

func (t *ScheduleAppointmentTool) Execute(_ context.Context, args map[string]any) (string, error) {
	timestamp, err := schedule.Normalize(stringArg(args, ArgDataHora))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidFormat) {
			return invalidFormatReply, nil
		}
		return "", err
	}

	description := strings.TrimSpace(stringArg(args, ArgDescricao))
	if description == "" {
		description = DefaultDescription
	}

	appt, err := t.store.Book(timestamp, description)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Compromisso agendado para %s com descrição: %s (id %d).",
		appt.Timestamp, appt.Description, appt.ID,
	), nil
}
