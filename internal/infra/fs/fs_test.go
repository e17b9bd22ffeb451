package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFilePreservesContentAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.JPG")
	dst := filepath.Join(dir, "out", "a.JPG")
	require.NoError(t, os.WriteFile(src, []byte("jpeg bytes"), 0o640))
	mtime := time.Date(2023, 5, 17, 8, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	filesystem := NewOS()
	require.NoError(t, filesystem.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, iofs.FileMode(0o640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v", info.ModTime())
}

func TestCopyFileRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.png")
	dst := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	err := NewOS().CopyFile(src, dst)

	require.Error(t, err)
	assert.True(t, errors.Is(err, iofs.ErrExist))
	data, readErr := os.ReadFile(dst)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
}

func TestWalkKeepsCallerSpelling(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "d.bmp"), nil, 0o644))
	chdir(t, dir)

	var paths []string
	err := NewOS().Walk("sub", func(path string, info iofs.FileInfo, err error) error {
		require.NoError(t, err)
		paths = append(paths, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"sub", filepath.Join("sub", "d.bmp")}, paths)
}

func TestWalkMissingRootFails(t *testing.T) {
	err := NewOS().Walk(filepath.Join(t.TempDir(), "missing"), func(path string, info iofs.FileInfo, err error) error {
		return err
	})
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}

func TestMemoryReadDirAndWriteFile(t *testing.T) {
	filesystem := NewMemory()
	require.NoError(t, filesystem.MkdirAll("/pics/sub", 0o755))
	require.NoError(t, filesystem.WriteFile("/pics/a.JPG", []byte("a"), 0o644))
	require.NoError(t, filesystem.WriteFile("/pics/a.JPG", []byte("again"), 0o644))

	entries, err := filesystem.ReadDir("/pics")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.JPG", "sub"}, names)

	data, err := filesystem.ReadFile("/pics/a.JPG")
	require.NoError(t, err)
	assert.Equal(t, "again", string(data))
}

func TestMemoryCopyFile(t *testing.T) {
	filesystem := NewMemory()
	require.NoError(t, filesystem.WriteFile("/src/c.png", []byte("png"), 0o644))
	require.NoError(t, filesystem.MkdirAll("/dst", 0o755))

	require.NoError(t, filesystem.CopyFile("/src/c.png", "/dst/c.png"))
	exists, err := filesystem.Exists("/dst/c.png")
	require.NoError(t, err)
	assert.True(t, exists)

	err = filesystem.CopyFile("/src/c.png", "/dst/c.png")
	assert.True(t, errors.Is(err, iofs.ErrExist))
}

func TestExistsMissing(t *testing.T) {
	exists, err := NewMemory().Exists("/nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadDirRejectsMissingAndFilePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.jpg"), nil, 0o644))

	memory := NewMemory()
	require.NoError(t, memory.WriteFile("/f.jpg", nil, 0o644))

	backends := []struct {
		name    string
		fs      *FS
		missing string
		file    string
	}{
		{"memory", memory, "/nope", "/f.jpg"},
		{"os", NewOS(), filepath.Join(dir, "nope"), filepath.Join(dir, "f.jpg")},
	}
	for _, tt := range backends {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fs.ReadDir(tt.missing)
			assert.True(t, errors.Is(err, iofs.ErrNotExist), "missing: %v", err)

			_, err = tt.fs.ReadDir(tt.file)
			assert.True(t, errors.Is(err, syscall.ENOTDIR), "file: %v", err)
		})
	}
}

// brokenReadFS serves files whose content cannot be read.
type brokenReadFS struct {
	billy.Filesystem
}

func (b brokenReadFS) Open(name string) (billy.File, error) {
	f, err := b.Filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	return brokenFile{File: f}, nil
}

type brokenFile struct {
	billy.File
}

func (brokenFile) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestCopyFileRemovesPartialTarget(t *testing.T) {
	filesystem := New(brokenReadFS{Filesystem: memfs.New()})
	require.NoError(t, filesystem.WriteFile("/src/a.JPG", []byte("jpeg"), 0o644))
	require.NoError(t, filesystem.MkdirAll("/dst", 0o755))

	err := filesystem.CopyFile("/src/a.JPG", "/dst/a.JPG")

	require.ErrorContains(t, err, "device gone")
	exists, existsErr := filesystem.Exists("/dst/a.JPG")
	require.NoError(t, existsErr)
	assert.False(t, exists)
}

// chdir changes the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
