// The slv tool wraps the Serverless Framework CLI to deploy and operate
// serverless applications, and can run commands inside a deployed function
// through the AWS Lambda Invoke API.
package main

import "go.alexhamlin.co/slv/internal/cmd"

func main() {
	cmd.Execute()
}
