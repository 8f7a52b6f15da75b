package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var invokeCmd = &cobra.Command{
	Use:    "invoke [flags] [-- extra args]",
	Short:  "Invoke the deployed function through the deployment tool",
	Args:   cobra.ArbitraryArgs,
	PreRun: initializePreRun,
	Run:    runInvoke,
}

var invokeStage string

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVar(&invokeStage, "stage", "", "deployment stage")
}

func runInvoke(cmd *cobra.Command, args []string) {
	text, err := shelley.Command(toolArgs("invoke", serverless.Options{
		Function: serverless.MainFunction,
		Stage:    stageOrDefault(invokeStage),
	}, args...)...).Text()
	shelley.ExitIfError(err)

	if text != "" {
		fmt.Println(text)
	}
}
