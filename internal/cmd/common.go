package cmd

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/config"
	"go.alexhamlin.co/slv/internal/serverless"
	"go.alexhamlin.co/slv/internal/shelley"
)

var rootConfig config.Config

func initializePreRun(cmd *cobra.Command, args []string) {
	var err error
	rootConfig, err = config.Load()
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
}

// stageOrDefault resolves the stage to pass through to the deployment tool:
// the command's flag value if set, otherwise the configured default, which
// may itself be empty (the tool then applies its own default).
func stageOrDefault(stage string) string {
	if stage != "" {
		return stage
	}
	return rootConfig.Serverless.Stage
}

// toolArgs constructs the argument list for one deployment tool action using
// the configured binary.
func toolArgs(action string, opts serverless.Options, extra ...string) []string {
	return serverless.Args(rootConfig.Binary(serverless.DefaultBinary), action, opts, extra...)
}

// resolveStatus runs the deployment tool's info action and parses the region
// and stack out of its output, exiting on any failure.
func resolveStatus(stage string) serverless.Status {
	text, err := shelley.Command(toolArgs("info", serverless.Options{Stage: stage})...).Text()
	shelley.ExitIfError(err)

	status, err := serverless.ParseInfo(text)
	if err != nil {
		log.Fatal(err)
	}
	return status
}

func mustLoadAWSConfig(ctx context.Context, region string) aws.Config {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatal("unable to load AWS configuration: ", err)
	}
	return awsConfig
}
