package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// chdir stands in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad(t *testing.T) {
	want := Config{
		Project: ProjectConfig{
			Name: "myapp",
		},
		Serverless: ServerlessConfig{
			Binary: "node_modules/.bin/serverless",
			Stage:  "sandbox",
		},
		Artifacts: ArtifactsConfig{
			Bucket: "myapp-deployments",
			Prefix: "serverless/myapp/",
		},
	}

	chdir(t, "testdata")

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(Config{}, got); diff != "" {
		t.Errorf("expected a zero config (-want +got):\n%s", diff)
	}
}

func TestBinary(t *testing.T) {
	var config Config
	if got := config.Binary("serverless"); got != "serverless" {
		t.Errorf("unexpected fallback binary: %q", got)
	}

	config.Serverless.Binary = "sls"
	if got := config.Binary("serverless"); got != "sls" {
		t.Errorf("unexpected configured binary: %q", got)
	}
}
