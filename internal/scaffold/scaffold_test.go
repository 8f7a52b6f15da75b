package scaffold

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProvision(t *testing.T) {
	dir := t.TempDir()

	created, err := Provision(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Filenames, created); diff != "" {
		t.Errorf("unexpected created files (-want +got):\n%s", diff)
	}

	for _, name := range Filenames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if len(data) == 0 {
			t.Errorf("%s was created empty", name)
		}
	}
}

func TestProvisionNeverOverwrites(t *testing.T) {
	dir := t.TempDir()

	marker := filepath.Join(dir, Filenames[0])
	if err := os.WriteFile(marker, []byte("mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	created, err := Provision(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Filenames[1:], created); diff != "" {
		t.Errorf("unexpected created files (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mine\n" {
		t.Errorf("existing file was overwritten: %q", data)
	}

	// A second run has nothing left to create.
	created, err = Provision(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 0 {
		t.Errorf("second run created files: %v", created)
	}
}

func TestSetupGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available")
	}

	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput(); err != nil {
		t.Skipf("cannot create a git repository here: %v (%s)", err, out)
	}

	created, err := Provision(dir)
	if err != nil {
		t.Fatal(err)
	}
	SetupGit(dir, created)

	staged, err := exec.Command("git", "-C", dir, "diff", "--cached", "--name-only").Output()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range Filenames {
		if !strings.Contains(string(staged), name) {
			t.Errorf("%s was not staged; staged files:\n%s", name, staged)
		}
	}

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ignore), ArtifactsDirname+"/") {
		t.Errorf("ignore file does not cover %s/: %q", ArtifactsDirname, ignore)
	}
}

func TestSetupGitOutsideWorkTree(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available")
	}

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", dir)

	SetupGit(dir, []string{"serverless.yml"})

	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); err == nil {
		t.Error("SetupGit touched a directory with no git repository")
	}
}

func TestEnsureIgnoredCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")

	if err := ensureIgnored(path, ArtifactsDirname); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ".serverless/\n" {
		t.Errorf("unexpected ignore file contents: %q", data)
	}
}

func TestEnsureIgnoredAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ensureIgnored(path, ArtifactsDirname); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "node_modules/\n\n.serverless/\n" {
		t.Errorf("unexpected ignore file contents: %q", data)
	}
}

func TestEnsureIgnoredMatchesExistingRules(t *testing.T) {
	existing := []string{
		".serverless\n",
		".serverless/\n",
		"/.serverless/\n",
		"node_modules/\n.serverless/\nvendor/\n",
	}

	for _, contents := range existing {
		path := filepath.Join(t.TempDir(), ".gitignore")
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}

		if err := ensureIgnored(path, ArtifactsDirname); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != contents {
			t.Errorf("ignore file %q was modified to %q", contents, data)
		}
	}
}
