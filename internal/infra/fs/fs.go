package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS adapts a go-billy filesystem to the operations both tools need.
type FS struct {
	fs billy.Filesystem
	// absolute makes every path absolute before it reaches fs. The OS
	// backend is rooted at "/" and would otherwise ignore the working dir.
	absolute bool
}

// NewOS returns a filesystem backed by the host operating system.
func NewOS() *FS {
	return &FS{fs: hostFS{Filesystem: osfs.New("/")}, absolute: true}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *FS {
	return &FS{fs: memfs.New()}
}

// New wraps an arbitrary billy filesystem; paths are passed through as is.
func New(fs billy.Filesystem) *FS {
	return &FS{fs: fs}
}

// Raw returns the underlying go-billy filesystem.
func (b *FS) Raw() billy.Filesystem {
	return b.fs
}

// ReadDir lists path. A missing path fails with fs.ErrNotExist and a
// regular file with syscall.ENOTDIR on every backend.
func (b *FS) ReadDir(path string) ([]iofs.FileInfo, error) {
	resolved := b.resolve(path)
	info, err := b.fs.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("billy: readdir %q: %w", path, syscall.ENOTDIR)
	}
	list, err := b.fs.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", path, err)
	}
	return list, nil
}

// Walk visits root and everything below it. Paths handed to walkFn are
// expressed relative to root the way the caller spelled it.
func (b *FS) Walk(root string, walkFn filepath.WalkFunc) error {
	resolved := b.resolve(root)
	err := util.Walk(b.fs, resolved, func(path string, info iofs.FileInfo, err error) error {
		return walkFn(unresolve(root, resolved, path), info, err)
	})
	if err != nil {
		return fmt.Errorf("billy: walk %q: %w", root, err)
	}
	return nil
}

func (b *FS) Stat(path string) (iofs.FileInfo, error) {
	info, err := b.fs.Stat(b.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", path, err)
	}
	return info, nil
}

func (b *FS) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(b.resolve(path))
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("billy: stat %q: %w", path, err)
	}
}

func (b *FS) MkdirAll(path string, perm iofs.FileMode) error {
	if err := b.fs.MkdirAll(b.resolve(path), perm); err != nil {
		return fmt.Errorf("billy: mkdirall %q: %w", path, err)
	}
	return nil
}

// WriteFile creates or truncates path.
func (b *FS) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	if err := util.WriteFile(b.fs, b.resolve(path), data, perm); err != nil {
		return fmt.Errorf("billy: writefile %q: %w", path, err)
	}
	return nil
}

func (b *FS) ReadFile(path string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, b.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("billy: readfile %q: %w", path, err)
	}
	return data, nil
}

func (b *FS) Open(path string) (io.ReadCloser, error) {
	f, err := b.fs.Open(b.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", path, err)
	}
	return f, nil
}

// CopyFile copies src to dst, which must not exist yet. Permission bits and
// the modification time of src are carried over when the backend supports
// billy.Change. An existing dst yields an error matching fs.ErrExist. A dst
// created by this call is removed again if writing it fails.
func (b *FS) CopyFile(src, dst string) error {
	srcPath, dstPath := b.resolve(src), b.resolve(dst)

	info, err := b.fs.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("billy: stat %q: %w", src, err)
	}

	in, err := b.fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("billy: open %q: %w", src, err)
	}
	defer in.Close()

	out, err := b.fs.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("billy: create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = b.fs.Remove(dstPath)
		return fmt.Errorf("billy: copy %q to %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		_ = b.fs.Remove(dstPath)
		return fmt.Errorf("billy: close %q: %w", dst, err)
	}

	return b.preserve(dstPath, dst, info)
}

func (b *FS) preserve(path, display string, info iofs.FileInfo) error {
	change, ok := b.fs.(billy.Change)
	if !ok {
		return nil
	}
	if err := change.Chmod(path, info.Mode().Perm()); err != nil {
		return fmt.Errorf("billy: chmod %q: %w", display, err)
	}
	mtime := info.ModTime()
	if err := change.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("billy: chtimes %q: %w", display, err)
	}
	return nil
}

func (b *FS) resolve(path string) string {
	if !b.absolute {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func unresolve(root, resolved, path string) string {
	if root == resolved {
		return path
	}
	rel, err := filepath.Rel(resolved, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// hostFS adds billy.Change to the OS backend using absolute host paths.
type hostFS struct {
	billy.Filesystem
}

func (hostFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (hostFS) Lchown(name string, uid, gid int) error {
	return os.Lchown(name, uid, gid)
}

func (hostFS) Chown(name string, uid, gid int) error {
	return os.Chown(name, uid, gid)
}

func (hostFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
