package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var removeCmd = &cobra.Command{
	Use:    "remove",
	Short:  "Tear down the deployed application and its resources",
	PreRun: initializePreRun,
	Run:    runRemove,
}

var removeStage string

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVar(&removeStage, "stage", "", "deployment stage")
}

func runRemove(cmd *cobra.Command, args []string) {
	text, err := shelley.Command(toolArgs("remove", serverless.Options{
		Stage: stageOrDefault(removeStage),
	})...).Text()
	shelley.ExitIfError(err)

	if text != "" {
		fmt.Println(text)
	}
}
