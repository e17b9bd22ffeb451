package domain

import (
	"fmt"
	"time"
)

// ImageManifest is the document the lister writes.
type ImageManifest struct {
	Images []string `json:"images"`
}

func NewImageManifest(names []string) ImageManifest {
	if names == nil {
		names = []string{}
	}
	return ImageManifest{Images: names}
}

type CopyItem struct {
	SourcePath string
	TargetPath string
	// Name is the final file name inside the destination.
	Name    string
	Renamed bool
	TakenAt time.Time
}

type CollectResult struct {
	Destination string
	Items       []CopyItem
	Renamed     int
	DryRun      bool
}

func (r CollectResult) Count() int {
	return len(r.Items)
}

// SuffixedName inserts the collision counter between base and extension.
func SuffixedName(name string, counter int) string {
	if counter <= 0 {
		return name
	}
	base, ext := SplitExt(name)
	return fmt.Sprintf("%s_%d%s", base, counter, ext)
}
