package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var agentName string
	var taskFile string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an agent with a fresh, empty context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agentContext, err := app.service.Register(cmd.Context(), agentName, taskFile)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered agent %s (task: %s)\n", agentContext.AgentName, agentContext.TaskFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Agent name")
	cmd.Flags().StringVar(&taskFile, "task", "", "Task file reference")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}
