package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFSSymlinkAndLstat(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	src := filepath.Join(dir, "src.txt")
	link := filepath.Join(dir, "nested", "link.txt")
	require.NoError(t, fsys.WriteFile(src, []byte("hello"), 0644))
	require.NoError(t, fsys.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, fsys.Symlink(src, link))

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, src, target)

	// dangling once the source is gone
	require.NoError(t, fsys.Remove(src))
	_, err = fsys.Stat(link)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fsys.Lstat(link)
	assert.NoError(t, err)
}

func TestOSFSCreateAndRename(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	part := filepath.Join(dir, "file.part")
	w, err := fsys.Create(part)
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	final := filepath.Join(dir, "file")
	require.NoError(t, fsys.Rename(part, final))

	data, err := fsys.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMemoryFS(t *testing.T) {
	fsys := NewMemory()

	require.NoError(t, fsys.MkdirAll("/home/user/.config", 0755))
	require.NoError(t, fsys.WriteFile("/home/user/.config/a", []byte("a"), 0644))

	data, err := fsys.ReadFile("/home/user/.config/a")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, err = fsys.ReadFile("/home/user/.config")
	assert.Error(t, err)

	err = fsys.Symlink("/home/user/.config/a", "/home/user/b")
	assert.ErrorIs(t, err, afero.ErrNoSymlink)

	require.NoError(t, fsys.RemoveAll("/home/user"))
	_, err = fsys.Stat("/home/user/.config/a")
	assert.Error(t, err)
}

func TestAferoOsFsSupportsSymlinks(t *testing.T) {
	dir := t.TempDir()
	fsys := NewAfero(afero.NewOsFs())

	src := filepath.Join(dir, "src")
	require.NoError(t, fsys.WriteFile(src, []byte("x"), 0644))
	require.NoError(t, fsys.Symlink(src, filepath.Join(dir, "link")))

	target, err := fsys.Readlink(filepath.Join(dir, "link"))
	require.NoError(t, err)
	assert.Equal(t, src, target)
}
