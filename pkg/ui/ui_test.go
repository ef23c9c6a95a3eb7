// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test text and JSON rendering of run events

package ui_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/arthur-debert/cuepine/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textReporter(t *testing.T, opts ui.Options) (types.Reporter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewReporter(ui.FormatText, &buf, opts)
	require.NoError(t, err)
	return r, &buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.Format
		wantErr bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"TEXT", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"yaml", ui.FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewReporterRejectsAuto(t *testing.T) {
	_, err := ui.NewReporter(ui.FormatAuto, &bytes.Buffer{}, ui.Options{})
	assert.Error(t, err)
}

func TestManifestHeader(t *testing.T) {
	h := ui.ManifestHeader("/a/install.json", 40)
	assert.Len(t, h, 40)
	assert.True(t, strings.HasPrefix(h, "===="))
	assert.Contains(t, h, " /a/install.json ")

	// long paths keep some padding
	long := strings.Repeat("x", 100)
	assert.Equal(t, "== "+long+" ==", ui.ManifestHeader(long, 40))
}

func TestPrinterInstallRun(t *testing.T) {
	r, buf := textReporter(t, ui.Options{Mode: types.ModeInstall, Width: 30})

	r.ManifestStarted("/d/install.json")
	r.DependenciesChecked(types.DependencyReport{OK: true, Results: []types.DependencyResult{
		{Name: "git", Found: true},
		{Name: "fzf", Optional: true},
	}})
	r.HookStarted(types.HookPre, 0, "echo hi")
	r.HookFinished(types.HookResult{Phase: types.HookPre, Index: 0})
	r.ReconcileStarted(types.ModeInstall)
	r.GroupStarted("shell")
	r.ItemFinished(types.ItemResult{Resolved: "/d/bashrc", Destination: "/h/.bashrc", Action: types.ActionLink, Acted: true})
	r.ItemFinished(types.ItemResult{Destination: "/h/.vimrc", Action: types.ActionNone})
	r.ItemFinished(types.ItemResult{
		Destination: "/h/.zshrc",
		Err:         errors.Wrapf(fs.ErrNotExist, errors.ErrMissingSource, "source %s does not exist", "/d/zshrc"),
	})
	r.GroupFinished(types.GroupResult{Name: "shell", Status: types.GroupApplied})
	r.GroupStarted("gui")
	r.GroupFinished(types.GroupResult{Name: "gui", Status: types.GroupSkipped})
	r.ManifestFinished(&types.ManifestResult{Path: "/d/install.json"})

	out := buf.String()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 12)
	assert.Equal(t, "====== /d/install.json =======", lines[0])
	assert.Equal(t, "Dependencies check:", lines[1])
	assert.Equal(t, "    git OK", lines[2])
	assert.Equal(t, "    fzf not found (optional)", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Pre-scripts:", lines[5])
	assert.Equal(t, "    running pre script #0", lines[6])
	assert.Equal(t, "", lines[7])
	assert.Equal(t, "Installation:", lines[8])
	assert.Equal(t, "    shell:", lines[9])
	assert.Equal(t, "        /d/bashrc => /h/.bashrc", lines[10])
	assert.Equal(t, "        Error: source /d/zshrc does not exist", lines[11])
	assert.Equal(t, "    gui:", lines[12])
	assert.Equal(t, "        Skipped, condition not met", lines[13])
	assert.NotContains(t, out, ".vimrc")
}

func TestPrinterUninstallAndNothingDone(t *testing.T) {
	r, buf := textReporter(t, ui.Options{Mode: types.ModeUninstall})

	r.ReconcileStarted(types.ModeUninstall)
	r.GroupStarted("shell")
	r.ItemFinished(types.ItemResult{Resolved: "/d/bashrc", Destination: "/h/.bashrc", Action: types.ActionRemove, Acted: true})
	r.GroupFinished(types.GroupResult{Status: types.GroupApplied})
	r.GroupStarted("empty")
	r.GroupFinished(types.GroupResult{Status: types.GroupNothingDone})

	out := buf.String()
	assert.Contains(t, out, "Uninstallation:\n")
	assert.Contains(t, out, "        /h/.bashrc\n")
	assert.NotContains(t, out, "=>")
	assert.Contains(t, out, "    empty:\n        Nothing done\n")
}

func TestPrinterMissingDependencies(t *testing.T) {
	t.Run("aborts", func(t *testing.T) {
		r, buf := textReporter(t, ui.Options{})
		r.DependenciesChecked(types.DependencyReport{Results: []types.DependencyResult{{Name: "git"}}})
		r.ManifestFinished(&types.ManifestResult{Err: errors.New(errors.ErrMissingDependency, "not all dependencies met: git")})

		out := buf.String()
		assert.Contains(t, out, "    git not found\n")
		assert.Contains(t, out, "Not all dependencies met. Aborting.\n")
		assert.NotContains(t, out, "Error:")
	})

	t.Run("check only does not abort", func(t *testing.T) {
		r, buf := textReporter(t, ui.Options{CheckOnly: true})
		r.DependenciesChecked(types.DependencyReport{Results: []types.DependencyResult{{Name: "git"}}})
		assert.NotContains(t, buf.String(), "Aborting")
	})
}

func TestPrinterHookFailure(t *testing.T) {
	r, buf := textReporter(t, ui.Options{})
	err := errors.Newf(errors.ErrHookFailed, "exit code '3' was produced by the command 'false'").
		WithDetail("command", "false").
		WithDetail("exit_code", 3)

	r.HookStarted(types.HookPre, 0, "false")
	r.HookFinished(types.HookResult{Phase: types.HookPre, Command: "false", ExitCode: 3})
	r.ManifestFinished(&types.ManifestResult{Err: err, Aborted: true})

	out := buf.String()
	assert.Contains(t, out, "        exit code 3\n")
	assert.Contains(t, out, "Error: exit code '3' was produced by the command 'false'\n")
}

func TestPrinterDryRunNotice(t *testing.T) {
	r, buf := textReporter(t, ui.Options{DryRun: true})
	r.RunFinished(&types.RunResult{Manifests: []*types.ManifestResult{{}}})
	assert.Contains(t, buf.String(), "Dry run")

	r, buf = textReporter(t, ui.Options{DryRun: true})
	r.RunFinished(&types.RunResult{})
	assert.Empty(t, buf.String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", ui.Describe(nil))
	assert.Equal(t, "plain", ui.Describe(fmt.Errorf("plain")))

	inner := errors.Wrap(fmt.Errorf("permission denied"), errors.ErrSymlinkCreate, "cannot link /h/.bashrc")
	outer := errors.Wrap(inner, errors.ErrInternal, "group shell")
	assert.Equal(t, "group shell: cannot link /h/.bashrc: permission denied", ui.Describe(outer))

	missing := errors.Wrap(fs.ErrNotExist, errors.ErrMissingSource, "source /d/x does not exist")
	assert.Equal(t, "source /d/x does not exist", ui.Describe(missing))
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewReporter(ui.FormatJSON, &buf, ui.Options{Mode: types.ModeInstall, DryRun: true})
	require.NoError(t, err)

	r.ManifestStarted("/d/install.json")
	assert.Empty(t, buf.String(), "nothing is written before the run ends")

	run := &types.RunResult{Manifests: []*types.ManifestResult{
		{
			Path: "/d/install.json",
			Dir:  "/d",
			Groups: []types.GroupResult{{
				Name:   "shell",
				Status: types.GroupApplied,
				Items: []types.ItemResult{
					{Source: "bashrc", Resolved: "/d/bashrc", Destination: "/h/.bashrc", Action: types.ActionLink, DryRun: true},
					{Source: "zshrc", Destination: "/h/.zshrc", Err: errors.New(errors.ErrMissingSource, "source missing").WithDetail("source", "zshrc")},
				},
			}},
		},
		{Path: "/d/sub/install.json", Err: errors.New(errors.ErrManifestParse, "bad json"), Aborted: true},
	}}
	r.RunFinished(run)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "install", doc["mode"])
	assert.Equal(t, true, doc["dryRun"])
	assert.Equal(t, true, doc["failed"])

	manifests := doc["manifests"].([]interface{})
	require.Len(t, manifests, 2)

	first := manifests[0].(map[string]interface{})
	items := first["groups"].([]interface{})[0].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 2)
	linked := items[0].(map[string]interface{})
	assert.Equal(t, "link", linked["action"])
	assert.Equal(t, "/d/bashrc", linked["resolved"])
	assert.NotContains(t, linked, "error")

	failed := items[1].(map[string]interface{})["error"].(map[string]interface{})
	assert.Equal(t, "MISSING_SOURCE", failed["code"])
	assert.Equal(t, "source missing", failed["message"])
	assert.Equal(t, "zshrc", failed["details"].(map[string]interface{})["source"])

	second := manifests[1].(map[string]interface{})
	assert.Equal(t, true, second["aborted"])
	assert.Equal(t, "MANIFEST_PARSE", second["error"].(map[string]interface{})["code"])
}

func TestRenderMarkdownPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.RenderMarkdown(&buf, "# Title\n", false, 80))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestRenderMarkdownStyled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.RenderMarkdown(&buf, "# Title\n\nSome text.\n", true, 60))
	assert.Contains(t, buf.String(), "Title")
	assert.Contains(t, buf.String(), "Some text.")
}
