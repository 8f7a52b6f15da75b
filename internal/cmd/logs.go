package cmd

import (
	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var logsCmd = &cobra.Command{
	Use:    "logs",
	Short:  "Display logs from the deployed function",
	PreRun: initializePreRun,
	Run:    runLogs,
}

var (
	logsStage string
	logsTail  bool
)

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().StringVar(&logsStage, "stage", "", "deployment stage")
	logsCmd.Flags().BoolVarP(&logsTail, "tail", "t", false, "keep streaming new log events until interrupted")
}

func runLogs(cmd *cobra.Command, args []string) {
	// Run rather than Text: tailing runs until interrupted, so output has to
	// reach the terminal as it arrives. The subprocess's exit code becomes
	// ours either way.
	shelley.ExitIfError(shelley.Command(toolArgs("logs", serverless.Options{
		Function: serverless.MainFunction,
		Stage:    stageOrDefault(logsStage),
		Tail:     logsTail,
	})...).Run())
}
