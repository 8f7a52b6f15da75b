package cmd

import (
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/spf13/cobra"
)

var outputsCmd = &cobra.Command{
	Use:    "outputs",
	Short:  "Display the CloudFormation outputs of the deployed stack",
	PreRun: initializePreRun,
	Run:    runOutputs,
}

var outputsStage string

func init() {
	rootCmd.AddCommand(outputsCmd)
	outputsCmd.Flags().StringVar(&outputsStage, "stage", "", "deployment stage")
}

func runOutputs(cmd *cobra.Command, args []string) {
	status := resolveStatus(stageOrDefault(outputsStage))

	awsConfig := mustLoadAWSConfig(cmd.Context(), status.Region)
	cfnClient := cloudformation.NewFromConfig(awsConfig)
	description, err := cfnClient.DescribeStacks(cmd.Context(), &cloudformation.DescribeStacksInput{
		StackName: aws.String(status.Stack),
	})
	if err != nil {
		log.Fatal("unable to read stack info: ", err)
	}

	outputs := description.Stacks[0].Outputs
	if len(outputs) == 0 {
		log.Printf("stack %s has no outputs", status.Stack)
		return
	}

	for _, output := range outputs {
		log.Printf("%s (%s):\n\t%s", aws.ToString(output.Description), *output.OutputKey, *output.OutputValue)
	}
}
