package config

// Config represents a full configuration.
//
// Every field is optional: a project with no slv.toml at all gets working
// defaults, and flags override whatever the file provides.
type Config struct {
	Project    ProjectConfig    `toml:"project"`
	Serverless ServerlessConfig `toml:"serverless"`
	Artifacts  ArtifactsConfig  `toml:"artifacts"`
}

// ProjectConfig represents the configuration for this project, which is
// expected to be common across all possible deployments.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// ServerlessConfig represents the configuration for invoking the Serverless
// Framework CLI.
type ServerlessConfig struct {
	// Binary overrides the executable name, for projects that pin the
	// framework locally (e.g. "node_modules/.bin/serverless").
	Binary string `toml:"binary"`
	// Stage is the default deployment stage when no --stage flag is given.
	Stage string `toml:"stage"`
}

// ArtifactsConfig represents the configuration of the S3 bucket the
// deployment tool uploads packaging artifacts to, used by the clean command.
type ArtifactsConfig struct {
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
}
