package cli

import (
	"fmt"
	"os"

	"github.com/agendai/agendai/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

const starterConfig = `# Agendai configuration.
openai:
  apiKey: ${OPENAI_API_KEY}
  model: gpt-4o-mini
agent:
  name: Agendai
session:
  store: memory # or sqlite to persist conversations
logging:
  level: info
  style: pretty
`

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(paths.Config); err == nil {
				return fmt.Errorf("config already exists at %s", paths.Config)
			}
			if err := paths.EnsureDirs(); err != nil {
				return err
			}
			if err := os.WriteFile(paths.Config, []byte(starterConfig), 0o600); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", paths.Config)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			// Never print the expanded credential.
			if cfg.OpenAI.APIKey != "" {
				cfg.OpenAI.APIKey = "***"
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(paths.Config)
		},
	}
}
