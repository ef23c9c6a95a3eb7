package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()

	path := CreateFile(t, dir, "a/b/c.txt", "content")
	assert.Equal(t, filepath.Join(dir, "a/b/c.txt"), path)
	AssertFileContent(t, path, "content")
	assert.True(t, DirExists(t, filepath.Join(dir, "a/b")))

	link := filepath.Join(dir, "links", "c")
	CreateSymlink(t, path, link)
	AssertSymlink(t, link, path)

	assert.NoError(t, os.Remove(path))
	assert.True(t, SymlinkExists(t, link), "dangling links still count")
	assert.False(t, FileExists(t, link))

	assert.NoError(t, os.Remove(link))
	AssertNotExists(t, link)
}

func TestSetupHome(t *testing.T) {
	home := SetupHome(t)
	assert.Equal(t, home, os.Getenv("HOME"))
	assert.True(t, DirExists(t, home))
}

func TestRecordingReporter(t *testing.T) {
	r := &RecordingReporter{}
	r.ManifestStarted("install.json")
	r.GroupStarted("config")

	assert.Equal(t, []string{"manifest_started", "group_started"}, r.Kinds())
	assert.Empty(t, r.Items())
}
