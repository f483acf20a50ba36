package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAppendCmd(app *app) *cobra.Command {
	var agentName string
	var role string
	var content string
	var tokens int

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append a message to an agent's context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.AppendMessage(cmd.Context(), agentName, role, content, tokens)
			if err != nil {
				return err
			}

			if result.Trimmed > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Trimmed %d messages from %s\n", result.Trimmed, agentName)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d messages, %d tokens\n", agentName, result.MessageCount, result.CurrentTokens)
			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Agent name")
	cmd.Flags().StringVar(&role, "role", "user", "Message role")
	cmd.Flags().StringVar(&content, "content", "", "Message content")
	cmd.Flags().IntVar(&tokens, "tokens", 0, "Token cost of the message")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
