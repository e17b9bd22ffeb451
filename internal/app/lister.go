package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"

	"imgkit/internal/domain"
	appErrors "imgkit/internal/errors"
	"imgkit/internal/logging"
)

const manifestIndent = "    "

// Lister writes the names of the images found directly inside a directory.
type Lister struct {
	FS         FileSystem
	Extensions domain.ExtensionSet
	Logger     logging.Logger
}

// List returns the entries of dir whose lower-cased name ends with one of the
// extensions, in listing order. Subdirectories are not entered but are
// matched like any other entry.
func (l *Lister) List(ctx context.Context, dir string) ([]string, error) {
	if l.FS == nil {
		return nil, errors.New("lister requires FS")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := l.FS.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.NotFound, "list", dir, err)
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "list", dir, err)
	}

	exts := l.extensions()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if exts.HasSuffix(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	l.Logger.Verbosef("Matched %d of %d entries in %s", len(names), len(entries), dir)
	return names, nil
}

// Write lists dir and stores the manifest at output, replacing any previous
// file. It returns the number of listed images.
func (l *Lister) Write(ctx context.Context, dir, output string) (int, error) {
	stop := l.Logger.Measure("Listing images")
	defer stop()

	names, err := l.List(ctx, dir)
	if err != nil {
		return 0, err
	}

	data, err := EncodeManifest(names)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.Internal, "encode", output, err)
	}
	if err := l.FS.WriteFile(output, data, 0o644); err != nil {
		return 0, appErrors.Wrap(appErrors.IOFailure, "write", output, err)
	}
	l.Logger.Verbosef("Wrote %d bytes to %s", len(data), output)
	return len(names), nil
}

func (l *Lister) extensions() domain.ExtensionSet {
	if l.Extensions.Len() == 0 {
		return domain.DefaultExtensionSet()
	}
	return l.Extensions
}

// EncodeManifest renders {"images": [...]} with four-space indentation.
// HTML characters are kept verbatim so names round-trip unchanged.
func EncodeManifest(names []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", manifestIndent)
	if err := enc.Encode(domain.NewImageManifest(names)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
