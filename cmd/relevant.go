package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRelevantCmd(app *app) *cobra.Command {
	var agentName string
	var filePath string

	cmd := &cobra.Command{
		Use:   "relevant",
		Short: "Show other agents' context for a file they annotated",
		RunE: func(cmd *cobra.Command, _ []string) error {
			relevant, err := app.relevance.RelevantContext(cmd.Context(), agentName, filePath)
			if err != nil {
				return err
			}

			if len(relevant) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No relevant context for %s\n", filePath)
				return nil
			}

			for _, entry := range relevant {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (task: %s)\n", entry.Agent, entry.Task)
				if entry.Notes != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  notes: %s\n", entry.Notes)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", entry.Message.Timestamp, entry.Message.Role, entry.Message.Content)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Requesting agent name")
	cmd.Flags().StringVar(&filePath, "file", "", "File path to look up")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
