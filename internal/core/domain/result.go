package domain

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// OutputFile is one file written by a task.
type OutputFile struct {
	Path     string
	Size     int
	GzipSize int
}

// BundleResult summarizes a finished task.
type BundleResult struct {
	Outputs  []OutputFile
	Inputs   []string
	Warnings []string
	Duration time.Duration
}

// Summary renders the progress suffix, e.g. "1.2 kB (512 B gzipped) in 12ms".
func (r *BundleResult) Summary() string {
	if r == nil {
		return ""
	}

	// Only the bundle itself is reported; sourcemaps follow it in Outputs.
	var b strings.Builder
	if len(r.Outputs) > 0 {
		out := r.Outputs[0]
		b.WriteString(humanize.Bytes(uint64(max(out.Size, 0))))
		if out.GzipSize > 0 {
			b.WriteString(" (")
			b.WriteString(humanize.Bytes(uint64(out.GzipSize)))
			b.WriteString(" gzipped)")
		}
		b.WriteString(" ")
	}
	b.WriteString("in ")
	b.WriteString(r.Duration.Round(time.Millisecond).String())
	return b.String()
}

// WatchCode is the kind of a watch mode event.
type WatchCode string

const (
	// WatchStart is emitted before a rebuild round.
	WatchStart WatchCode = "START"
	// WatchBundleEnd is emitted for every task that rebuilt successfully.
	WatchBundleEnd WatchCode = "BUNDLE_END"
	// WatchError is a recoverable rebuild failure; watching continues.
	WatchError WatchCode = "ERROR"
	// WatchFatal terminates watch mode.
	WatchFatal WatchCode = "FATAL"
)

// WatchEvent is reported by the scheduler while watching.
type WatchEvent struct {
	Code   WatchCode
	Task   *BuildTask
	Result *BundleResult
	Err    error
}
