package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aicalc",
		Short:         "aicalc: scientific calculator with AI explanations and log export",
		Long:          "aicalc evaluates restricted arithmetic expressions, asks an OpenAI-compatible endpoint for narrative explanations (AICSE), keeps an append-only calculation log, and exports it to CSV or XLSX.",
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
		newEvalCmd(app),
		newExplainCmd(app),
		newReplCmd(app),
		newConstCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
