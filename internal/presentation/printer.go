package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"imgkit/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintListed(count int) {
	fmt.Fprintf(p.Writer, "JSON file created with %d images.\n", count)
}

func (p Printer) PrintCollected(result domain.CollectResult) {
	if p.Verbose && len(result.Items) > 0 {
		fmt.Fprintln(p.Writer, "Copied:")
		for _, line := range formatCopyLines(result.Items) {
			fmt.Fprintln(p.Writer, line)
		}
		fmt.Fprintln(p.Writer)
	}
	fmt.Fprintf(p.Writer, "All photos have been collected into: %s\n", result.Destination)
}

func (p Printer) PrintDryRun(result domain.CollectResult) {
	fmt.Fprintln(p.Writer, "Copying:")
	fmt.Fprintln(p.Writer)

	for _, line := range formatCopyLines(result.Items) {
		fmt.Fprintln(p.Writer, line)
	}

	fmt.Fprintln(p.Writer)
	if result.Renamed > 0 {
		fmt.Fprintf(p.Writer, "Would rename %d files to avoid overwriting.\n", result.Renamed)
	} else {
		fmt.Fprintln(p.Writer, "No renames would be required.")
	}
	fmt.Fprintf(p.Writer, "Dry run: %d photos would be collected into: %s\n", result.Count(), result.Destination)
}

func formatCopyLines(items []domain.CopyItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, formatCopyLine(item))
	}

	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func formatCopyLine(item domain.CopyItem) string {
	line := "Copy " + filepath.Base(item.SourcePath)
	if item.Renamed {
		line += " as " + item.Name
	}
	if !item.TakenAt.IsZero() {
		line += "  " + item.TakenAt.Format("2006-01-02 15:04")
	}
	return line
}
