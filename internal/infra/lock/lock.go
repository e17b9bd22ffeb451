package lock

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when another process holds the lock for
	// longer than the configured timeout.
	ErrLockTimeout = errors.New("timeout acquiring lock")
	// ErrPathRequired is returned when an empty path is locked.
	ErrPathRequired = errors.New("path is required")
)

const pollInterval = 10 * time.Millisecond

// DirLocker serialises writers of a directory through an OS-level lock file
// placed next to it. Paths are host paths, so it only guards destinations on
// the OS filesystem; collectors over memory or other billy backends run
// without a locker.
type DirLocker struct {
	Timeout time.Duration
}

func NewDirLocker(timeout time.Duration) *DirLocker {
	return &DirLocker{Timeout: timeout}
}

// LockPath returns the lock file used for dir. It lives beside dir, never
// inside it.
func LockPath(dir string) string {
	return filepath.Clean(dir) + ".lock"
}

// Lock blocks until the lock for dir is held, ctx ends or Timeout elapses.
// The returned function releases the lock.
func (l *DirLocker) Lock(ctx context.Context, dir string) (func() error, error) {
	if dir == "" {
		return nil, ErrPathRequired
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	fileLock := flock.New(LockPath(dir))
	locked, err := fileLock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("acquire lock for %s: %w", dir, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return fileLock.Unlock, nil
}
