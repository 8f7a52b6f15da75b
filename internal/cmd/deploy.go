package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var deployCmd = &cobra.Command{
	Use:    "deploy",
	Short:  "Package and deploy the application",
	PreRun: initializePreRun,
	Run:    runDeploy,
}

var (
	deployStage  string
	deployDryRun bool
)

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().StringVar(&deployStage, "stage", "", "deployment stage")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "package the application without deploying it")
}

func runDeploy(cmd *cobra.Command, args []string) {
	text, err := shelley.Command(toolArgs("deploy", serverless.Options{
		Stage:  stageOrDefault(deployStage),
		DryRun: deployDryRun,
	})...).Text()
	shelley.ExitIfError(err)

	if text != "" {
		fmt.Println(text)
	}
}
