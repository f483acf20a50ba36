package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy all context files and the annotation index to a timestamped backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			backupDir, err := app.backup.BackupAll(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backed up contexts to %s\n", backupDir)
			return nil
		},
	}
}
