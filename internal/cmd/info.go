package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var infoCmd = &cobra.Command{
	Use:    "info",
	Short:  "Display information about the deployed application",
	PreRun: initializePreRun,
	Run:    runInfo,
}

var infoStage string

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoStage, "stage", "", "deployment stage")
}

func runInfo(cmd *cobra.Command, args []string) {
	text, err := shelley.Command(toolArgs("info", serverless.Options{
		Stage: stageOrDefault(infoStage),
	})...).Text()
	shelley.ExitIfError(err)

	if text != "" {
		fmt.Println(text)
	}
}
