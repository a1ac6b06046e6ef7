// Package config loads errsum settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the name of the config file looked up in the working directory.
const DefaultFile = "errsum.yaml"

// Config represents errsum settings.
type Config struct {
	// Tag is the build tag marking source files.
	Tag string `yaml:"tag"`

	// Directive is the comment directive name without slashes.
	Directive string `yaml:"directive"`

	// Suffix is appended to the base name of a source file to get the output file name.
	Suffix string `yaml:"suffix"`

	// Resolve chooses how type references are resolved.
	Resolve ResolveMode `yaml:"resolve"`

	// Packages maps import paths to the names of their packages when the path does not tell it.
	Packages map[string]string `yaml:"packages"`

	// Workers limits the number of files processed at once, zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	return &Config{
		Tag:       "errsum",
		Directive: "errsum:errors",
		Suffix:    "_errsum",
		Resolve:   ResolveAssumed,
	}
}

// Load reads the config file at path over the defaults. An empty path means DefaultFile,
// which may be missing.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = DefaultFile
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if path == "" && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", file, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", file, err)
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.Tag == "" {
		return errors.New("tag is required")
	}
	for _, r := range c.Tag {
		if !isTagRune(r) {
			return fmt.Errorf("tag %q is not a valid build tag", c.Tag)
		}
	}

	if c.Directive == "" || strings.ContainsAny(c.Directive, " \t\n") || strings.HasPrefix(c.Directive, "/") {
		return fmt.Errorf("directive %q must be a single word without leading slashes", c.Directive)
	}

	if c.Suffix == "" || strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("suffix %q must be a non-empty file name part", c.Suffix)
	}
	if strings.HasSuffix(c.Suffix, "_test") {
		return fmt.Errorf("suffix %q would turn outputs into test files", c.Suffix)
	}

	if _, ok := resolveModeValueMap[c.Resolve]; !ok {
		return fmt.Errorf("resolve mode must be set")
	}

	for path, name := range c.Packages {
		if err := module.CheckImportPath(path); err != nil {
			return fmt.Errorf("packages: %w", err)
		}
		if !token.IsIdentifier(name) {
			return fmt.Errorf("packages: %q is not a valid package name for %s", name, path)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	return nil
}

func isTagRune(r rune) bool {
	return r == '_' || r == '.' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
