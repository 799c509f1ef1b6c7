package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qi",
		Short:         "QA inspector (qi): review documents, mark them up and record audit verdicts",
		Long:          "qi (QA inspector) registers paginated documents, replays markup sessions onto their pages, and records the delivery, documental and physical audit verdicts with supporting evidence.",
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

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.flush()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newDocumentCmd(app),
		newVerdictCmd(app),
		newEvidenceCmd(app),
		newMarkupCmd(app),
		newAuditCmd(app),
	)

	return rootCmd
}
