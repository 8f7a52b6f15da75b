package serverless

import (
	"fmt"
	"strings"
)

const (
	regionPrefix = "region: "
	stackPrefix  = "stack: "
	stagePrefix  = "stage: "
)

// Status holds the values scraped from the info action's output.
type Status struct {
	Region string
	Stack  string
	// Stage is informational only; unlike the other fields it may be empty.
	Stage string
}

// ParseInfo scans the info action's human-readable output for the region,
// stack, and stage lines. When a prefix appears more than once the last
// occurrence wins. Region and stack must be present; otherwise ParseInfo
// returns an error naming the first missing one, so callers can fail before
// attempting a remote call.
func ParseInfo(text string) (Status, error) {
	var status Status
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, regionPrefix); ok {
			status.Region = value
		}
		if value, ok := strings.CutPrefix(line, stackPrefix); ok {
			status.Stack = value
		}
		if value, ok := strings.CutPrefix(line, stagePrefix); ok {
			status.Stage = value
		}
	}

	switch {
	case status.Region == "":
		return Status{}, fmt.Errorf("no %q line in info output; has this stage been deployed?", strings.TrimSpace(regionPrefix))
	case status.Stack == "":
		return Status{}, fmt.Errorf("no %q line in info output; has this stage been deployed?", strings.TrimSpace(stackPrefix))
	}
	return status, nil
}

// FunctionName returns the deployed name of the function that executes
// remote commands for this stack. The framework names deployed functions
// <stack>-<function>.
func (s Status) FunctionName() string {
	return s.Stack + "-" + MainFunction
}
