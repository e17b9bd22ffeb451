package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"imgkit/internal/domain"
	appErrors "imgkit/internal/errors"
	"imgkit/internal/logging"
)

// ProgressFunc is called after each matched file has been placed.
type ProgressFunc func(current, total int, name string)

// Collector copies every matching file below a source tree into one flat
// destination directory without ever replacing an existing file.
type Collector struct {
	FS         FileSystem
	Extensions domain.ExtensionSet
	// Filter, Locker and Exif are optional. Locker must address the same
	// storage as FS.
	Filter     PathFilter
	Locker     Locker
	Exif       ExifReader
	Logger     logging.Logger
	OnProgress ProgressFunc
	DryRun     bool
}

// Scan walks sourceDir and returns the paths of all matching files.
func (c *Collector) Scan(ctx context.Context, sourceDir string) ([]string, error) {
	if c.FS == nil {
		return nil, errors.New("collector requires FS")
	}
	stop := c.Logger.Measure("Scanning source directory")
	defer stop()

	exts := c.extensions()
	var matches []string
	seen := 0

	err := c.FS.Walk(sourceDir, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			rel = path
		}
		if info.IsDir() {
			if rel != "." && c.Filter != nil && c.Filter.Skip(rel, true) {
				c.Logger.Verbosef("Skipping directory %s", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			// links to directories are neither entered nor copied
			if target, err := c.FS.Stat(path); err == nil && target.IsDir() {
				c.Logger.Verbosef("Skipping directory link %s", rel)
				return nil
			}
		}

		seen++
		if !exts.MatchesExt(info.Name()) {
			return nil
		}
		if c.Filter != nil && c.Filter.Skip(rel, false) {
			c.Logger.Verbosef("Skipping %s", rel)
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.NotFound, "walk", sourceDir, err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "walk", sourceDir, err)
	}

	c.Logger.Verbosef("Found %d matching files out of %d in %s", len(matches), seen, sourceDir)
	return matches, nil
}

// Collect copies all matches of sourceDir into targetDir, creating it when
// needed. A name that is already taken gets "_1", "_2", ... inserted before
// its extension until it is free. In dry-run mode nothing is written and
// names planned earlier in the run count as taken.
func (c *Collector) Collect(ctx context.Context, sourceDir, targetDir string) (domain.CollectResult, error) {
	result := domain.CollectResult{Destination: targetDir, DryRun: c.DryRun}
	if c.FS == nil {
		return result, errors.New("collector requires FS")
	}

	if _, err := c.FS.Stat(sourceDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, appErrors.Wrap(appErrors.NotFound, "stat", sourceDir, err)
		}
		return result, appErrors.Wrap(appErrors.IOFailure, "stat", sourceDir, err)
	}

	if !c.DryRun {
		if err := c.FS.MkdirAll(targetDir, 0o755); err != nil {
			return result, appErrors.Wrap(appErrors.IOFailure, "mkdir", targetDir, err)
		}
		if c.Locker != nil {
			unlock, err := c.Locker.Lock(ctx, targetDir)
			if err != nil {
				return result, appErrors.Wrap(appErrors.LockFailure, "lock", targetDir, err)
			}
			defer func() {
				if err := unlock(); err != nil {
					c.Logger.Warnf("releasing lock for %s: %v", targetDir, err)
				}
			}()
		}
	}

	sources, err := c.Scan(ctx, sourceDir)
	if err != nil {
		return result, err
	}

	stop := c.Logger.Measure("Copying files")
	defer stop()

	taken := make(map[string]bool, len(sources))
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item, err := c.place(source, targetDir, taken)
		if err != nil {
			return result, err
		}
		if c.Exif != nil {
			takenAt, err := c.captureTime(ctx, source)
			if err != nil {
				return result, err
			}
			item.TakenAt = takenAt
		}

		result.Items = append(result.Items, item)
		if item.Renamed {
			result.Renamed++
			c.Logger.Verbosef("Renamed %s to %s", filepath.Base(source), item.Name)
		}
		if c.OnProgress != nil {
			c.OnProgress(i+1, len(sources), item.Name)
		}
	}

	c.Logger.Verbosef("Placed %d files in %s (%d renamed)", len(result.Items), targetDir, result.Renamed)
	return result, nil
}

// place finds the first free name for source and copies it there. The
// counter has no upper bound.
func (c *Collector) place(source, targetDir string, taken map[string]bool) (domain.CopyItem, error) {
	name := filepath.Base(source)
	for counter := 0; ; counter++ {
		candidate := domain.SuffixedName(name, counter)
		target := filepath.Join(targetDir, candidate)
		if taken[target] {
			continue
		}

		exists, err := c.FS.Exists(target)
		if err != nil {
			return domain.CopyItem{}, appErrors.Wrap(appErrors.IOFailure, "stat", target, err)
		}
		if exists {
			continue
		}

		if !c.DryRun {
			if err := c.FS.CopyFile(source, target); err != nil {
				if errors.Is(err, fs.ErrExist) {
					// created by someone else since the check
					continue
				}
				return domain.CopyItem{}, appErrors.Wrap(appErrors.IOFailure, "copy", source, err)
			}
		}

		taken[target] = true
		return domain.CopyItem{
			SourcePath: source,
			TargetPath: target,
			Name:       candidate,
			Renamed:    counter > 0,
		}, nil
	}
}

func (c *Collector) captureTime(ctx context.Context, path string) (time.Time, error) {
	takenAt, err := c.Exif.DateTimeOriginal(ctx, path)
	if err == nil {
		return takenAt, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return time.Time{}, err
	}

	info, statErr := c.FS.Stat(path)
	if statErr != nil {
		return time.Time{}, appErrors.Wrap(appErrors.IOFailure, "stat", path, statErr)
	}
	c.Logger.Verbosef("EXIF not found for %s, using filesystem time", filepath.Base(path))
	return info.ModTime(), nil
}

func (c *Collector) extensions() domain.ExtensionSet {
	if c.Extensions.Len() == 0 {
		return domain.DefaultExtensionSet()
	}
	return c.Extensions
}
