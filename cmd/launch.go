package cmd

import (
	"fmt"

	"github.com/charlpcronje/fxd-coordinator/internal/launch"
	"github.com/spf13/cobra"
)

func newLaunchCmd(app *app) *cobra.Command {
	var phase2 bool
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Write instruction files for the agent launch phases",
		Long:  "launch writes per-agent instruction files for externally run sessions. Phase 1 covers the blocking critical-path agent; --phase2 writes the remaining agents once the critical path's signal file exists.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := launch.LoadRoster(rosterPath)
			if err != nil {
				return err
			}

			launcher := launch.NewLauncher(roster, app.agentsDir, app.tasksDir)
			out := cmd.OutOrStdout()

			if phase2 {
				paths, err := launcher.Phase2()
				if err != nil {
					return err
				}

				for _, path := range paths {
					_, _ = fmt.Fprintf(out, "Instructions written to %s\n", path)
				}
				_, _ = fmt.Fprintf(out, "All %d phase-2 agent instruction files generated.\n", len(paths))
				return nil
			}

			path, err := launcher.Phase1()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Instructions written to %s\n", path)
			if launcher.SignalExists() {
				_, _ = fmt.Fprintln(out, "Signal file exists: critical path complete, ready for --phase2.")
			} else {
				_, _ = fmt.Fprintf(out, "Waiting for signal file %s before phase 2.\n", launcher.SignalPath())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&phase2, "phase2", false, "Write instruction files for the parallel agents")
	cmd.Flags().StringVar(&rosterPath, "roster", app.rosterPath, "Roster file (falls back to the built-in roster)")

	return cmd
}
