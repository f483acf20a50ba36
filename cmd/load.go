package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/spf13/cobra"
)

func newLoadCmd(app *app) *cobra.Command {
	var agentName string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print an agent's persisted context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agentContext, err := app.service.Load(cmd.Context(), agentName)
			if err != nil {
				if errors.Is(err, domain.ErrContextNotFound) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No context found for agent %s\n", agentName)
					return nil
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(agentContext)
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Agent name")
	_ = cmd.MarkFlagRequired("agent")

	return cmd
}
