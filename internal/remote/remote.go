// Package remote runs commands inside a deployed function through the AWS
// Lambda Invoke API.
//
// The deployment tool's own invoke action interleaves function logs with
// function output on a single stream, which makes it useless for carrying a
// structured payload back to the caller. Calling the Invoke API directly
// keeps the response payload intact and lets the remote command control the
// local exit code.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// API is the subset of the Lambda client used by this package.
type API interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Result holds one decoded invocation response.
type Result struct {
	// Payload is the raw JSON response payload.
	Payload []byte
	// LogTail is the decoded tail of the function's execution log.
	LogTail string
	// Output is the remote command's output, or nil if the response carried
	// none. A nil Output means the invocation failed.
	Output *string
	// ExitCode is the exit code the remote command reported, if any.
	ExitCode *int
}

type request struct {
	CLI string `json:"cli"`
}

// Invoke runs the provided command line inside the named function and
// decodes the response. The arguments are joined with spaces, exactly as the
// remote side expects to split them.
func Invoke(ctx context.Context, client API, functionName string, cliArgs []string) (Result, error) {
	payload, err := json.Marshal(request{CLI: strings.Join(cliArgs, " ")})
	if err != nil {
		return Result{}, err
	}

	output, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(functionName),
		LogType:      types.LogTypeTail,
		Payload:      payload,
	})
	if err != nil {
		return Result{}, fmt.Errorf("invoking %s: %w", functionName, err)
	}

	result := Result{Payload: output.Payload}
	if output.LogResult != nil {
		if tail, err := base64.StdEncoding.DecodeString(*output.LogResult); err == nil {
			result.LogTail = string(tail)
		}
	}

	var response struct {
		Output   *string `json:"output"`
		ExitCode *int    `json:"exitCode"`
	}
	if err := json.Unmarshal(output.Payload, &response); err != nil {
		return Result{}, fmt.Errorf("decoding response from %s: %w", functionName, err)
	}
	result.Output = response.Output
	result.ExitCode = response.ExitCode

	return result, nil
}

// Code returns the exit code the local process should finish with: the
// remote command's reported code, or 1 when the response did not include
// one.
func (r Result) Code() int {
	if r.ExitCode != nil {
		return *r.ExitCode
	}
	return 1
}

// PrettyPayload renders the raw response payload with indentation for
// diagnostic display.
func (r Result) PrettyPayload() string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, r.Payload, "", "  "); err != nil {
		return string(r.Payload)
	}
	return pretty.String()
}
