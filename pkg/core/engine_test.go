// pkg/core/engine_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem under t.TempDir, builtin shell
// PURPOSE: Test manifest phase sequencing and run-level failure handling

package core_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/core"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/filesystem"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/testutil"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPath(present ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, p := range present {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func newEngine(t *testing.T, rec types.Reporter, home string, mutate func(*core.Options)) *core.Engine {
	t.Helper()
	opts := core.Options{
		Mode:         types.ModeInstall,
		ManifestName: "install.json",
		Sublevels:    true,
		Exclude:      []string{".git", "node_modules", "venv"},
		Home:         home,
		Shell:        &shell.BuiltinRunner{},
		LookPath:     lookPath("bash"),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return core.NewEngine(filesystem.NewOS(), rec, opts)
}

const basicManifest = `{
  "dependencies": ["bash"],
  "pre": ["touch pre-ran"],
  "post": ["touch post-ran"],
  "installation": {
    "config": {"dir": "$HOME/.config", "files": ["vimrc"]}
  }
}`

func TestProcessManifestPhases(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", basicManifest)

	rec := &testutil.RecordingReporter{}
	res := newEngine(t, rec, home, nil).ProcessManifest(context.Background(), path)

	require.NoError(t, res.Err)
	assert.True(t, res.Dependencies.OK)
	require.Len(t, res.Pre, 1)
	require.Len(t, res.Post, 1)
	assert.Equal(t, types.GroupApplied, res.Groups[0].Status)
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "pre-ran")), "hooks run in the manifest dir")
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "post-ran")))
	testutil.AssertSymlink(t, filepath.Join(home, ".config", "vimrc"), filepath.Join(root, "vimrc"))

	assert.Equal(t, []string{
		"manifest_started",
		"dependencies_checked",
		"hook_started", "hook_finished",
		"reconcile_started", "group_started", "item_finished", "group_finished",
		"hook_started", "hook_finished",
		"manifest_finished",
	}, rec.Kinds())
}

func TestMissingDependencyAbortsManifest(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", `{
  "dependencies": ["bash", "nonexistent-xyz"],
  "opt_dependencies": ["fzf"],
  "pre": ["touch pre-ran"],
  "installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}
}`)

	res := newEngine(t, nil, home, nil).ProcessManifest(context.Background(), path)

	assert.True(t, res.Aborted)
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrMissingDependency))
	assert.False(t, res.Dependencies.OK)
	assert.Len(t, res.Dependencies.Results, 3)
	assert.Empty(t, res.Groups)
	testutil.AssertNotExists(t, filepath.Join(root, "pre-ran"))
	testutil.AssertNotExists(t, filepath.Join(home, "vimrc"))
}

func TestMissingOptionalDependencyDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", `{
  "opt_dependencies": ["fzf"],
  "installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}
}`)

	res := newEngine(t, nil, home, nil).ProcessManifest(context.Background(), path)
	require.NoError(t, res.Err)
	assert.True(t, res.Dependencies.OK)
	testutil.AssertSymlink(t, filepath.Join(home, "vimrc"), filepath.Join(root, "vimrc"))
}

func TestCheckOnlyStopsAfterDependencies(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	testutil.WriteRawManifest(t, root, "install.json", `{
  "dependencies": ["nonexistent-xyz"],
  "pre": ["touch pre-ran"],
  "installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}
}`)

	engine := newEngine(t, nil, home, func(o *core.Options) { o.CheckOnly = true })
	run, err := engine.Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, run.Manifests, 1)
	assert.False(t, run.Failed(), "check-only never fails")
	assert.False(t, run.Manifests[0].Dependencies.OK)
	assert.Empty(t, run.Manifests[0].Groups)
	testutil.AssertNotExists(t, filepath.Join(root, "pre-ran"))
	testutil.AssertNotExists(t, filepath.Join(home, "vimrc"))
}

func TestStrictPreAbortsManifest(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", `{
  "pre": ["exit 3", "touch second"],
  "post": ["touch post-ran"],
  "installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}
}`)

	res := newEngine(t, nil, home, func(o *core.Options) { o.StrictPre = true }).ProcessManifest(context.Background(), path)
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrHookFailed))
	assert.Len(t, res.Pre, 1)
	assert.Empty(t, res.Groups)
	testutil.AssertNotExists(t, filepath.Join(root, "second"))
	testutil.AssertNotExists(t, filepath.Join(root, "post-ran"))

	res = newEngine(t, nil, home, nil).ProcessManifest(context.Background(), path)
	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Pre[0].ExitCode)
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "second")))
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "post-ran")))
}

func TestUninstallSkipsDependenciesAndHooks(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", `{
  "dependencies": ["nonexistent-xyz"],
  "pre": ["touch pre-ran"],
  "post": ["touch post-ran"],
  "installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}
}`)
	link := filepath.Join(home, "vimrc")
	testutil.CreateSymlink(t, filepath.Join(root, "vimrc"), link)

	res := newEngine(t, nil, home, func(o *core.Options) { o.Mode = types.ModeUninstall }).ProcessManifest(context.Background(), path)

	require.NoError(t, res.Err)
	assert.Nil(t, res.Dependencies)
	assert.Empty(t, res.Pre)
	assert.Empty(t, res.Post)
	testutil.AssertNotExists(t, link)
	testutil.AssertNotExists(t, filepath.Join(root, "pre-ran"))
	testutil.AssertNotExists(t, filepath.Join(root, "post-ran"))
}

func TestDryRunRunsNoHooks(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	path := testutil.WriteRawManifest(t, root, "install.json", basicManifest)

	res := newEngine(t, nil, home, func(o *core.Options) { o.DryRun = true }).ProcessManifest(context.Background(), path)
	require.NoError(t, res.Err)
	assert.True(t, res.Pre[0].Skipped)
	assert.True(t, res.Groups[0].Items[0].Acted)
	testutil.AssertNotExists(t, filepath.Join(root, "pre-ran"))
	testutil.AssertNotExists(t, filepath.Join(home, ".config"))
}

func TestRunContinuesAfterFailedManifest(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.WriteRawManifest(t, root, "install.json", `{"installation": {"bad": {"files": ["x"]}}}`)
	testutil.CreateFile(t, root, "zsh/zshrc", "")
	testutil.WriteRawManifest(t, root, "zsh/install.json", `{"installation": {"z": {"dir": "$HOME", "files": ["zshrc"]}}}`)
	testutil.WriteRawManifest(t, root, "node_modules/install.json", `{"installation": {"n": {"dir": "$HOME", "files": ["n"]}}}`)

	rec := &testutil.RecordingReporter{}
	run, err := newEngine(t, rec, home, nil).Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, run.Manifests, 2)
	assert.True(t, errors.IsErrorCode(run.Manifests[0].Err, errors.ErrManifestInvalid))
	assert.NoError(t, run.Manifests[1].Err)
	assert.True(t, run.Failed())
	testutil.AssertSymlink(t, filepath.Join(home, "zshrc"), filepath.Join(root, "zsh", "zshrc"))
	assert.Equal(t, "run_finished", rec.Kinds()[len(rec.Kinds())-1])
}

func TestRunNoSublevel(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.WriteRawManifest(t, root, "install.json", `{}`)
	testutil.WriteRawManifest(t, root, "sub/install.json", `{}`)

	run, err := newEngine(t, nil, home, func(o *core.Options) { o.Sublevels = false }).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, run.Manifests, 1)
}

func TestRunWithMissingRoot(t *testing.T) {
	_, err := newEngine(t, nil, t.TempDir(), nil).Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSecondRunNothingDone(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, root, "vimrc", "")
	testutil.WriteRawManifest(t, root, "install.json", `{"installation": {"config": {"dir": "$HOME", "files": ["vimrc"]}}}`)

	engine := newEngine(t, nil, home, nil)
	_, err := engine.Run(context.Background(), root)
	require.NoError(t, err)

	run, err := engine.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, types.GroupNothingDone, run.Manifests[0].Groups[0].Status)
}
