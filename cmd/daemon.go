package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newDaemonCmd(app *app) *cobra.Command {
	var intervalSeconds int

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Periodically back up contexts, rescan annotations and report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval := app.daemonInterval
			if cmd.Flags().Changed("interval") {
				interval = time.Duration(intervalSeconds) * time.Second
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Starting coordinator daemon (interval: %s)\n", interval)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				if err := runDaemonCycle(ctx, cmd, app); err != nil {
					if ctx.Err() != nil {
						_, _ = fmt.Fprintln(out, "Daemon stopped")
						return nil
					}
					return err
				}

				select {
				case <-ctx.Done():
					_, _ = fmt.Fprintln(out, "Daemon stopped")
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().IntVar(&intervalSeconds, "interval", 300, "Cycle interval in seconds")

	return cmd
}

// runDaemonCycle performs one backup + rescan + summary pass. Cycles never
// overlap: the next one is not scheduled until this one returns.
func runDaemonCycle(ctx context.Context, cmd *cobra.Command, app *app) error {
	out := cmd.OutOrStdout()

	backupDir, err := app.backup.BackupAll(ctx)
	if err != nil {
		return fmt.Errorf("backup contexts: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Backed up contexts to %s\n", backupDir)

	files, total, err := rebuildAnnotationIndex(ctx, app, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("rescan annotations: %w", err)
	}

	contexts, err := app.contexts.List(ctx)
	if err != nil {
		return fmt.Errorf("list agent contexts: %w", err)
	}

	_, _ = fmt.Fprintf(out, "%s agents=%d annotations=%d files=%d\n",
		app.now().Format(time.RFC3339), len(contexts), total, files)

	return nil
}
