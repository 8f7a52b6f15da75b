// Package scaffold provisions the template files for a new slv project.
package scaffold

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.alexhamlin.co/slv/internal/shelley"
)

//go:embed templates
var templates embed.FS

// Filenames lists the template files provisioned into a project directory,
// in the order they are created.
var Filenames = []string{"serverless.yml", "handler.js"}

// ArtifactsDirname is the directory the deployment tool generates its
// packaging artifacts into. It belongs in the ignore file, not the
// repository.
const ArtifactsDirname = ".serverless"

// Provision copies each template file into dir unless a file of the same
// name already exists, and returns the names of the files it created.
// Existing files are never touched, so running Provision repeatedly is safe.
func Provision(dir string) ([]string, error) {
	var created []string
	for _, name := range Filenames {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			log.Printf("%s already exists, leaving it alone", name)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, err
		}

		if err := copyTemplate(name, target); err != nil {
			return created, fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("created %s", name)
		created = append(created, name)
	}
	return created, nil
}

func copyTemplate(name, target string) error {
	source, err := templates.Open("templates/" + name)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	_, err = io.Copy(destination, source)
	if closeErr := destination.Close(); err == nil {
		err = closeErr
	}
	return err
}

// SetupGit stages the provided files and makes sure the artifacts directory
// is ignored, when dir is inside a git work tree. Every step is best-effort;
// a project without git (or without a usable git binary) is not an error.
func SetupGit(dir string, created []string) {
	git := &shelley.Context{Stdout: io.Discard, Stderr: io.Discard}

	if git.Command("git", "-C", dir, "rev-parse", "--is-inside-work-tree").Run() != nil {
		return
	}

	if len(created) > 0 {
		addArgs := append([]string{"git", "-C", dir, "add", "--"}, created...)
		if err := git.Command(addArgs...).Run(); err != nil {
			log.Printf("could not stage new files: %v", err)
		}
	}

	if err := ensureIgnored(filepath.Join(dir, ".gitignore"), ArtifactsDirname); err != nil {
		log.Printf("could not update .gitignore: %v", err)
	}
}

// ensureIgnored appends an ignore rule for dirname to the named ignore file
// unless an existing line already covers it.
func ensureIgnored(path, dirname string) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	var lastLine string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lastLine = scanner.Text()
		switch strings.TrimSpace(lastLine) {
		case dirname, dirname + "/", "/" + dirname, "/" + dirname + "/":
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	rule := dirname + "/\n"
	if lastLine != "" {
		rule = "\n" + rule
	}

	if _, err := file.WriteString(rule); err != nil {
		return err
	}
	log.Printf("added %s/ to .gitignore", dirname)
	return nil
}
