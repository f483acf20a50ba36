package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrimCmd(app *app) *cobra.Command {
	var agentName string

	cmd := &cobra.Command{
		Use:   "trim",
		Short: "Trim an agent's context toward its token budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.Trim(cmd.Context(), agentName)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Trimmed %s: removed %d messages, now %d tokens\n", agentName, result.Removed, result.CurrentTokens)
			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Agent name")
	_ = cmd.MarkFlagRequired("agent")

	return cmd
}
