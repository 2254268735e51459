package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation with the assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("%s — digite sua mensagem (/sair para encerrar)\n\n", rt.cfg.Agent.Name)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				if ctx.Err() != nil {
					break
				}

				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if text == "/sair" || text == "/quit" || text == "/exit" {
					break
				}

				result := rt.runner.Run(ctx, session, text)
				fmt.Printf("\n%s\n\n", result.Reply)
			}

			fmt.Println("Até logo!")
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&session, "session", "chat", "session key to converse under")

	return cmd
}
