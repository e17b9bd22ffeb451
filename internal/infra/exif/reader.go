package exif

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

var ErrNoDateTime = errors.New("exif datetime not found")

// Reader extracts capture times from image files. Open defaults to os.Open.
type Reader struct {
	Open func(path string) (io.ReadCloser, error)
}

func (r Reader) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	default:
	}

	file, err := r.open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads DateTimeOriginal, falling back to the EXIF DateTime tag.
func Decode(src io.Reader) (time.Time, error) {
	x, err := goexif.Decode(src)
	if err != nil {
		return time.Time{}, err
	}

	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			if parsed, err := time.ParseInLocation("2006:01:02 15:04:05", str, time.Local); err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed, nil
	}

	return time.Time{}, ErrNoDateTime
}

func (r Reader) open(path string) (io.ReadCloser, error) {
	if r.Open != nil {
		return r.Open(path)
	}
	return os.Open(path)
}
