package app

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

type FileSystem interface {
	ReadDir(path string) ([]fs.FileInfo, error)
	Walk(root string, fn filepath.WalkFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// CopyFile must fail with an error matching fs.ErrExist when dst exists.
	CopyFile(src, dst string) error
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}

// PathFilter decides which paths below the collector's source are skipped.
type PathFilter interface {
	Skip(relPath string, isDir bool) bool
}

// Locker grants exclusive access to a destination directory.
type Locker interface {
	Lock(ctx context.Context, dir string) (unlock func() error, err error)
}
