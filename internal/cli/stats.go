package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Productivity statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TaskStats

			if err := client.Get("/api/v1/tasks/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(newStatsTrendCmd())

	return cmd
}

func newStatsTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show created/completed counts for the last seven days",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []TrendDay

			if err := client.Get("/api/v1/tasks/trend", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
