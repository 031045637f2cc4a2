package logger

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// messager is an error that reports its own message without the wrapped chain.
type messager interface {
	Message() string
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain while links are zerr errors.
// The first non-zerr error ends the walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message(), Metadata: map[string]any{}}
		if z, ok := current.(*zerr.Error); ok {
			entry.Metadata = z.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by a "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent, metaIndent string
		if i == 0 {
			head, indent, metaIndent = "Error: ", "       ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent, metaIndent = "    → ", "      ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", metaIndent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}

// trimWorkingDir strips the working directory prefix from the first line.
func trimWorkingDir(entries []ErrorEntry) {
	if len(entries) == 0 {
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	prefix := cwd + string(os.PathSeparator)

	first, rest, found := strings.Cut(entries[0].Message, "\n")
	first = strings.ReplaceAll(first, prefix, "")
	if found {
		first += "\n" + rest
	}
	entries[0].Message = first
}
