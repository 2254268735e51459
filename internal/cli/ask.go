package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send one message to the assistant and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			rt, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result := rt.runner.Run(ctx, session, message)
			fmt.Println(result.Reply)
			if result.Model != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n[model=%s tool=%s tokens=%d+%d]\n",
					result.Model, toolLabel(result.ToolUsed),
					result.Usage.InputTokens, result.Usage.OutputTokens)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "cli", "session key to converse under")

	return cmd
}

func toolLabel(name string) string {
	if name == "" {
		return "none"
	}
	return name
}
