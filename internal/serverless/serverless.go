// Package serverless builds command lines for the Serverless Framework CLI
// and parses the text output of its info action.
//
// The framework owns all packaging and deployment behavior; this package is
// limited to constructing argv slices for it and scraping the few values slv
// needs back out of its human-readable output.
package serverless

import "golang.org/x/exp/slices"

// DefaultBinary is the executable name used when no binary is configured.
const DefaultBinary = "serverless"

// InstallDocsURL points to the framework's own setup instructions, for error
// messages when the binary is missing from PATH.
const InstallDocsURL = "https://www.serverless.com/framework/docs/getting-started"

// MainFunction is the function every slv application defines; logs, invoke,
// and remote command execution all address it.
const MainFunction = "main"

// Options carries the per-invocation flags that lifecycle actions accept.
// Zero values mean the corresponding flag is omitted.
type Options struct {
	// Stage is the named deployment environment, passed through unchanged.
	Stage string
	// DryRun packages the application without deploying it (deploy only).
	DryRun bool
	// Tail keeps the logs action attached to the remote log stream.
	Tail bool
	// Function names the function to address (logs and invoke).
	Function string
}

// Args constructs the full argument list for one lifecycle action, starting
// with the binary name so the result can be handed directly to shelley.
func Args(binary, action string, opts Options, extra ...string) []string {
	args := []string{binary, action}
	if opts.Function != "" {
		args = append(args, "--function", opts.Function)
	}
	if opts.Stage != "" {
		args = append(args, "--stage", opts.Stage)
	}
	if opts.DryRun {
		args = append(args, "--noDeploy")
	}
	if opts.Tail {
		args = append(args, "--tail")
	}
	return append(args, slices.Clone(extra)...)
}
