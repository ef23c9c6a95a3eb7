// pkg/config/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp config files, environment
// PURPOSE: Test configuration layering and validation

package config

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the invoking user's config file out of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "install.json", cfg.Manifest.Name)
	assert.True(t, cfg.Traversal.Sublevels)
	assert.Equal(t, []string{".git", "node_modules", "venv"}, cfg.Traversal.Exclude)
	assert.False(t, cfg.Hooks.StrictPre)
	assert.Equal(t, "exec", cfg.Shell.Runner)
	assert.Equal(t, "/bin/sh", cfg.Shell.Path)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := testutil.CreateFile(t, t.TempDir(), "config.toml", `
[manifest]
name = "install.yaml"

[traversal]
exclude = ["build"]

[shell]
runner = "builtin"
`)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "install.yaml", cfg.Manifest.Name)
	assert.Equal(t, []string{"build"}, cfg.Traversal.Exclude)
	assert.Equal(t, "builtin", cfg.Shell.Runner)
	assert.True(t, cfg.Traversal.Sublevels, "untouched keys keep their default")
}

func TestLoadEnvAndOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CUEPINE_HOOKS_STRICT_PRE", "true")
	t.Setenv("CUEPINE_TRAVERSAL_EXCLUDE", ".git,dist")
	t.Setenv("CUEPINE_FETCH_USER_AGENT", "custom/1.0")
	t.Setenv("CUEPINE_MANIFEST_NAME", "install.toml")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"manifest.name":       "setup.json",
		"traversal.sublevels": false,
	}})
	require.NoError(t, err)

	assert.True(t, cfg.Hooks.StrictPre)
	assert.Equal(t, []string{".git", "dist"}, cfg.Traversal.Exclude)
	assert.Equal(t, "custom/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, "setup.json", cfg.Manifest.Name, "flags win over env")
	assert.False(t, cfg.Traversal.Sublevels)
}

func TestLoadXDGFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	testutil.CreateFile(t, filepath.Join(dir, "cuepine"), "config.toml", "[git]\nbinary = \"/opt/git\"\n")

	assert.Equal(t, filepath.Join(dir, "cuepine", "config.toml"), DefaultPath())
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/opt/git", cfg.Git.Binary)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestValidate(t *testing.T) {
	base, err := Defaults()
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	bad := *base
	bad.Shell.Runner = "zsh"
	assert.True(t, errors.IsErrorCode(bad.Validate(), errors.ErrConfigLoad))

	bad = *base
	bad.Output.Format = "xml"
	assert.True(t, errors.IsErrorCode(bad.Validate(), errors.ErrConfigLoad))

	bad = *base
	bad.Manifest.Name = "install.py"
	assert.True(t, errors.IsErrorCode(bad.Validate(), errors.ErrConfigLoad))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "hooks.strict_pre", envKey("CUEPINE_HOOKS_STRICT_PRE"))
	assert.Equal(t, "manifest.name", envKey("CUEPINE_MANIFEST_NAME"))
}
