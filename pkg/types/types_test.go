package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyReportMissing(t *testing.T) {
	report := DependencyReport{
		Results: []DependencyResult{
			{Name: "bash", Found: true},
			{Name: "nvim", Found: false},
			{Name: "fzf", Optional: true, Found: false},
		},
	}

	assert.Equal(t, []string{"nvim"}, report.Missing())
}

func TestRunResultFailed(t *testing.T) {
	ok := &ManifestResult{Path: "a/install.json"}
	bad := &ManifestResult{Path: "b/install.json", Err: errors.New("strict pre failed")}

	assert.False(t, (&RunResult{Manifests: []*ManifestResult{ok}}).Failed())
	assert.True(t, (&RunResult{Manifests: []*ManifestResult{ok, bad}}).Failed())
}

func TestModeIsUninstall(t *testing.T) {
	assert.True(t, ModeUninstall.IsUninstall())
	assert.False(t, ModeInstall.IsUninstall())
}
