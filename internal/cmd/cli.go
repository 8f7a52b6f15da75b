package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/remote"
)

var cliCmd = &cobra.Command{
	Use:   "cli [flags] args...",
	Short: "Run a command inside the deployed function",
	Long: `Run a command inside the deployed function

The cli command executes its arguments inside the deployed function and
prints the remote output, exiting with the exit code the remote command
reported. It calls the Lambda Invoke API directly instead of going through
the deployment tool, whose invoke action mixes logs into the output stream
and cannot carry a structured response.

The region and function name are discovered from the deployment tool's info
output, so the application must already be deployed to the target stage.
`,
	Args:   cobra.MinimumNArgs(1),
	PreRun: initializePreRun,
	Run:    runCLI,
}

var cliStage string

func init() {
	rootCmd.AddCommand(cliCmd)
	cliCmd.Flags().StringVar(&cliStage, "stage", "", "deployment stage")
	// Only leading flags belong to slv; everything after the first positional
	// argument is part of the remote command line.
	cliCmd.Flags().SetInterspersed(false)
}

func runCLI(cmd *cobra.Command, args []string) {
	status := resolveStatus(stageOrDefault(cliStage))

	awsConfig := mustLoadAWSConfig(cmd.Context(), status.Region)
	client := lambda.NewFromConfig(awsConfig)

	result, err := remote.Invoke(cmd.Context(), client, status.FunctionName(), args)
	if err != nil {
		log.Fatal(err)
	}

	if result.Output == nil {
		log.Print("remote command produced no output, showing its logs instead:")
		fmt.Fprintln(os.Stderr, result.LogTail)
		fmt.Fprintln(os.Stderr, result.PrettyPayload())
		os.Exit(1)
	}

	fmt.Print(*result.Output)
	os.Exit(result.Code())
}
