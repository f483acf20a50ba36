package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charlpcronje/fxd-coordinator/internal/adapters/scan"
	"github.com/spf13/cobra"
)

func newScanCmd(app *app) *cobra.Command {
	var noSpinner bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rebuild the code annotation index from source files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var files, total int

			rebuild := func(ctx context.Context) error {
				var err error
				files, total, err = rebuildAnnotationIndex(ctx, app, cmd.ErrOrStderr())
				return err
			}

			var err error
			if noSpinner {
				err = rebuild(cmd.Context())
			} else {
				err = runScanSpinner(cmd.Context(), cmd.OutOrStdout(), rebuild)
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Found %d annotations in %d files\n", total, files)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Disable the progress spinner")

	return cmd
}

// rebuildAnnotationIndex walks the project root and replaces the persisted
// annotation index wholesale.
func rebuildAnnotationIndex(ctx context.Context, app *app, warn io.Writer) (files, total int, err error) {
	scanner := scan.NewScanner(warn)
	walker := scan.NewWalker(scanner, app.scanExtensions, app.scanSkip)

	index, err := walker.RebuildIndex(app.root)
	if err != nil {
		return 0, 0, err
	}

	if err := app.annotations.Replace(ctx, index); err != nil {
		return 0, 0, fmt.Errorf("replace annotation index: %w", err)
	}

	return len(index), index.Total(), nil
}
