package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"go.alexhamlin.co/slv/internal/scaffold"
	"go.alexhamlin.co/slv/internal/serverless"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a new serverless application in the current directory",
	Long: `Scaffold a new serverless application in the current directory

The init command checks that the Serverless Framework CLI is installed and
that AWS credentials are discoverable, then creates starter template files
for a new application. Existing files are never overwritten. When run inside
a git work tree the new files are staged and the framework's artifacts
directory is added to .gitignore.
`,
	PreRun: initializePreRun,
	Run:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	binary := rootConfig.Binary(serverless.DefaultBinary)
	if _, err := exec.LookPath(binary); err != nil {
		log.Fatalf("%s is not installed; see %s", binary, serverless.InstallDocsURL)
	}

	if err := checkCredentials(cmd); err != nil {
		log.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	created, err := scaffold.Provision(cwd)
	if err != nil {
		log.Fatal(err)
	}
	scaffold.SetupGit(cwd, created)

	log.Print(`project ready; run "slv deploy" to ship it`)
}

// checkCredentials makes sure an invocation of the deployment tool would be
// able to sign AWS requests, either from the well-known environment
// variables or from whatever the SDK's default chain can dig up (shared
// credentials file, SSO cache, instance metadata, and so on).
func checkCredentials(cmd *cobra.Command) error {
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" && os.Getenv("AWS_SECRET_ACCESS_KEY") != "" {
		return nil
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(cmd.Context())
	if err == nil {
		_, err = awsConfig.Credentials.Retrieve(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("no AWS credentials found; set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY or configure a credentials file (%w)", err)
	}
	return nil
}
