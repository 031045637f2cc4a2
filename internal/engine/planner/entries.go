// Package planner turns a manifest and settings into the ordered list of build tasks.
package planner

import (
	"os"
	"path/filepath"

	"go.trai.ch/preppy/internal/core/domain"
)

// ResolveEntry returns the first candidate that exists as a regular file.
// Relative candidates are resolved against root.
func ResolveEntry(root string, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return candidate, true
	}
	return "", false
}

// ResolveEntries resolves the entry of every target.
// An explicit input replaces the conventional candidates of its target.
func ResolveEntries(root string, s *domain.Settings) map[domain.Target]string {
	entries := make(map[domain.Target]string, len(domain.Targets))
	for _, target := range domain.Targets {
		if entry, ok := ResolveEntry(root, entryCandidates(target, s)); ok {
			entries[target] = entry
		}
	}
	return entries
}

func entryCandidates(target domain.Target, s *domain.Settings) []string {
	switch target {
	case domain.TargetNode:
		if s.InputNode != "" {
			return []string{s.InputNode}
		}
		return domain.NodeEntryCandidates
	case domain.TargetBinary:
		if s.InputBinary != "" {
			return []string{s.InputBinary}
		}
		return domain.BinaryEntryCandidates
	default:
		return nil
	}
}
