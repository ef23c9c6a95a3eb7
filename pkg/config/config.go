package config

import (
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/manifest"
)

// Config is the resolved tool configuration
type Config struct {
	Manifest  ManifestConfig  `koanf:"manifest"`
	Traversal TraversalConfig `koanf:"traversal"`
	Hooks     HooksConfig     `koanf:"hooks"`
	Shell     ShellConfig     `koanf:"shell"`
	Git       GitConfig       `koanf:"git"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Output    OutputConfig    `koanf:"output"`
}

type ManifestConfig struct {
	// Name is the manifest file name looked up in each directory
	Name string `koanf:"name"`
}

type TraversalConfig struct {
	// Sublevels enables processing manifests found in sub-directories
	Sublevels bool `koanf:"sublevels"`
	// Exclude lists glob patterns of directory names never descended into
	Exclude []string `koanf:"exclude"`
}

type HooksConfig struct {
	StrictPre bool `koanf:"strict_pre"`
}

type ShellConfig struct {
	// Runner is "exec" (spawn Path -c) or "builtin" (in-process interpreter)
	Runner string `koanf:"runner"`
	Path   string `koanf:"path"`
}

type GitConfig struct {
	Binary string `koanf:"binary"`
}

type FetchConfig struct {
	UserAgent string `koanf:"user_agent"`
}

type OutputConfig struct {
	// Format is one of auto, term, text or json
	Format string `koanf:"format"`
}

var (
	validRunners = []string{"exec", "builtin"}
	validFormats = []string{"auto", "term", "text", "json"}
)

// Validate checks enumerated values and the manifest name
func (c *Config) Validate() error {
	if c.Manifest.Name == "" {
		return errors.New(errors.ErrConfigLoad, "manifest.name must not be empty")
	}
	if _, err := manifest.FormatFromName(c.Manifest.Name); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "manifest.name %q has an unsupported extension", c.Manifest.Name).
			WithDetail("key", "manifest.name")
	}
	if !oneOf(c.Shell.Runner, validRunners) {
		return errors.Newf(errors.ErrConfigLoad, "shell.runner must be one of %s, got %q",
			strings.Join(validRunners, ", "), c.Shell.Runner).WithDetail("key", "shell.runner")
	}
	if !oneOf(c.Output.Format, validFormats) {
		return errors.Newf(errors.ErrConfigLoad, "output.format must be one of %s, got %q",
			strings.Join(validFormats, ", "), c.Output.Format).WithDetail("key", "output.format")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
