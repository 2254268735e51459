package cli

import (
	"fmt"

	"github.com/agendai/agendai/internal/config"
	"github.com/agendai/agendai/internal/schedule"
	"github.com/spf13/cobra"
)

func newAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Inspect the appointment book",
	}

	cmd.AddCommand(newAgendaListCmd())
	cmd.AddCommand(newAgendaCheckCmd())

	return cmd
}

// openAgenda builds the appointment store without requiring an API key,
// so agenda inspection works offline.
func openAgenda() (*schedule.Store, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}
	path := cfg.Agenda.Path
	if path == "" {
		path = paths.Agenda
	}
	return schedule.NewStore(path, log), nil
}

func newAgendaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all booked appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agenda, err := openAgenda()
			if err != nil {
				return err
			}

			appts, err := agenda.Load()
			if err != nil {
				return err
			}

			if len(appts) == 0 {
				fmt.Println("Nenhum compromisso agendado.")
				return nil
			}

			for _, a := range appts {
				fmt.Printf("  %3d  %s  %s\n", a.ID, a.Timestamp, a.Description)
			}

			return nil
		},
	}
}

func newAgendaCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <data-hora>",
		Short: "Check whether a slot is free (e.g. \"2025-04-04 15:00\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := schedule.Normalize(args[0])
			if err != nil {
				return fmt.Errorf("formato inválido: use AAAA-MM-DD HH:MM")
			}

			agenda, err := openAgenda()
			if err != nil {
				return err
			}

			occupied, err := agenda.IsOccupied(normalized)
			if err != nil {
				return err
			}

			if occupied {
				fmt.Printf("A agenda já está ocupada em %s.\n", normalized)
			} else {
				fmt.Printf("A agenda está livre em %s.\n", normalized)
			}

			return nil
		},
	}
}
