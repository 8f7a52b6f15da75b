package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
)

const (
	// Filename is the base name of the configuration file.
	Filename = "slv.toml"
	// LocalFilename is the base name of the local configuration file, whose
	// values are deeply merged with the base configuration.
	LocalFilename = "slv.local.toml"
)

// ErrNotFound indicates that no configuration file exists in the current
// directory or any of its parents.
var ErrNotFound = errors.New("could not find " + Filename)

// Load automatically loads the full configuration by finding, loading, and
// merging the base and local configurations. A project with no configuration
// file at all yields the zero Config with no error; slv works fine without
// one.
func Load() (Config, error) {
	baseConfigPath, err := FindPath()
	if errors.Is(err, ErrNotFound) {
		return Config{}, nil
	} else if err != nil {
		return Config{}, err
	}

	baseConfig, err := LoadFile(baseConfigPath)
	if err != nil {
		return Config{}, err
	}

	var localConfig Config
	localConfigPath := filepath.Join(filepath.Dir(baseConfigPath), LocalFilename)
	if stat, err := os.Stat(localConfigPath); err == nil && !stat.IsDir() {
		localConfig, err = LoadFile(localConfigPath)
		if err != nil {
			return Config{}, err
		}
	}

	return Merge(baseConfig, localConfig), nil
}

// FindPath returns the rooted path to the configuration file in the current
// directory or its parents, or ErrNotFound if no such file exists.
func FindPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		fullPath := filepath.Join(dir, Filename)
		stat, err := os.Stat(fullPath)
		if err == nil && !stat.IsDir() {
			return fullPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}

		dir = parent
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if _, err := toml.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// Merge deeply merges the provided configs, overriding the values in earlier
// configs with those in later configs.
func Merge(configs ...Config) Config {
	var result Config
	for _, config := range configs {
		err := mergo.Merge(&result, config, mergo.WithOverride, mergo.WithAppendSlice)
		if err != nil {
			panic(err)
		}
	}
	return result
}

// Binary returns the deployment tool executable to invoke, falling back to
// the conventional name when none is configured.
func (c Config) Binary(fallback string) string {
	if c.Serverless.Binary != "" {
		return c.Serverless.Binary
	}
	return fallback
}
