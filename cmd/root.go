package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fxdc",
		Short:         "FXD agent coordinator: context budgets, annotations and launch sequencing",
		Long:          "fxdc persists per-agent conversation contexts with token-budget trimming, indexes @agent annotations left in source files, reports task progress, and writes instruction files for externally run agent sessions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newAppendCmd(app),
		newLoadCmd(app),
		newTrimCmd(app),
		newBackupCmd(app),
		newScanCmd(app),
		newStatusCmd(app),
		newRelevantCmd(app),
		newLaunchCmd(app),
		newDaemonCmd(app),
	)

	return rootCmd
}
