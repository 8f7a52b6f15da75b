package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go.alexhamlin.co/slv/internal/serverless"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old deployment artifacts from the artifact bucket",
	Long: `Remove old deployment artifacts from the artifact bucket

The deployment tool keeps the artifacts of every past deployment in its S3
bucket. The clean command deletes the artifacts of all but the most recent
deployment of the target stage.

The bucket name comes from the [artifacts] section of slv.toml. If the
configured prefix does not match the deployment tool's layout, clean may
delete unrelated objects from the bucket.

The command prints the keys of objects to be deleted and requests
confirmation before proceeding.
`,
	PreRun: initializePreRun,
	Run:    runClean,
}

var cleanStage string

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanStage, "stage", "", "deployment stage")
}

func runClean(cmd *cobra.Command, args []string) {
	bucket := rootConfig.Artifacts.Bucket
	if bucket == "" {
		log.Fatal("no artifact bucket configured; set bucket under [artifacts] in slv.toml")
	}

	status := resolveStatus(stageOrDefault(cleanStage))
	prefix, err := artifactPrefix(status)
	if err != nil {
		log.Fatal(err)
	}

	awsConfig := mustLoadAWSConfig(cmd.Context(), status.Region)
	cfnClient := cloudformation.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	group, ctx := errgroup.WithContext(cmd.Context())

	var allKeys []string
	group.Go(goGetArtifactKeys(ctx, s3Client, bucket, prefix, &allKeys))
	// The stack must still exist before any of its artifacts are touched.
	group.Go(goCheckStackExists(ctx, cfnClient, status.Stack))

	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}

	deployments := mapset.NewThreadUnsafeSet[string]()
	for _, key := range allKeys {
		deployments.Add(path.Dir(key))
	}
	deploymentDirs := deployments.ToSlice()
	sort.Strings(deploymentDirs)

	if len(deploymentDirs) < 2 {
		log.Print("Bucket is clean enough, no objects to delete.")
		return
	}

	// The framework prefixes each deployment directory with a Unix timestamp,
	// so the lexicographically greatest directory is the live deployment.
	currentDir := deploymentDirs[len(deploymentDirs)-1]

	var (
		candidateKeys = mapset.NewThreadUnsafeSet(allKeys...)
		currentKeys   = mapset.NewThreadUnsafeSet(lo.Filter(allKeys, func(key string, _ int) bool {
			return strings.HasPrefix(key, currentDir+"/")
		})...)

		keepKeys   = candidateKeys.Intersect(currentKeys).ToSlice()
		deleteKeys = candidateKeys.Difference(currentKeys).ToSlice()
	)
	sort.Strings(keepKeys)
	sort.Strings(deleteKeys)

	if len(keepKeys) > 0 {
		log.Print("Will keep the following in-use objects:\n\n")
		for _, key := range keepKeys {
			fmt.Fprintf(log.Writer(), "\t%s\n", key)
		}
		fmt.Fprint(log.Writer(), "\n")
	}

	log.Print("Will delete the following unused objects:\n\n")
	for _, key := range deleteKeys {
		fmt.Fprintf(log.Writer(), "\t%s\n", key)
	}
	fmt.Fprint(log.Writer(), "\n"+log.Prefix()+"Press Enter to continue...")
	fmt.Scanln()

	deleteIdentifiers := lo.Map(deleteKeys, func(key string, _ int) types.ObjectIdentifier {
		return types.ObjectIdentifier{Key: aws.String(key)}
	})
	output, err := s3Client.DeleteObjects(cmd.Context(), &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: deleteIdentifiers,
			Quiet:   true,
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	if len(output.Errors) > 0 {
		for _, e := range output.Errors {
			log.Printf("failed to delete %s: %s", *e.Key, *e.Message)
		}
		os.Exit(1)
	}

	log.Print("Deleted all unused objects.")
}

func goGetArtifactKeys(ctx context.Context, s3Client *s3.Client, bucket, prefix string, keys *[]string) func() error {
	return func() error {
		// This will only allow us to delete up to 1,000 objects at a time...
		// which is probably enough.
		listing, err := s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
			Prefix: aws.String(prefix),
		})
		if err != nil {
			return err
		}

		*keys = lo.Map(listing.Contents, func(object types.Object, _ int) string {
			return *object.Key
		})
		return nil
	}
}

func goCheckStackExists(ctx context.Context, cfnClient *cloudformation.Client, stackName string) func() error {
	return func() error {
		_, err := cfnClient.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
			StackName: aws.String(stackName),
		})
		if err != nil {
			return fmt.Errorf("stack %s is not deployed, refusing to clean its artifacts: %w", stackName, err)
		}
		return nil
	}
}

// artifactPrefix returns the key prefix the deployment tool uploads this
// stage's artifacts under: the configured prefix when one is set, otherwise
// the framework's serverless/<service>/<stage>/ convention derived from the
// parsed status.
func artifactPrefix(status serverless.Status) (string, error) {
	if prefix := rootConfig.Artifacts.Prefix; prefix != "" {
		return prefix, nil
	}

	if status.Stage == "" || !strings.HasSuffix(status.Stack, "-"+status.Stage) {
		return "", fmt.Errorf("cannot derive an artifact prefix from stack %q; set prefix under [artifacts] in slv.toml", status.Stack)
	}
	service := strings.TrimSuffix(status.Stack, "-"+status.Stage)
	return path.Join("serverless", service, status.Stage) + "/", nil
}
