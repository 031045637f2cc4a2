package planner

import (
	"path/filepath"

	"go.trai.ch/preppy/internal/core/domain"
)

// BuildOutputMatrix derives the owed destinations.
//
// An output folder replaces every manifest derived path with exactly three
// conventional file names. Otherwise node-commonjs comes from "main",
// node-esmodule from "module" (or "jsnext:main"), binary-commonjs from the
// first "bin" entry and node-types from "types" (or "typings"). Fields that
// are not declared are simply not owed.
func BuildOutputMatrix(m *domain.Manifest, outputFolder string) domain.OutputMatrix {
	matrix := make(domain.OutputMatrix)
	add := func(t domain.Target, f domain.Format, path string) {
		if path == "" {
			return
		}
		spec := domain.OutputSpec{Target: t, Format: f, Path: filepath.Clean(path)}
		matrix[spec.Key()] = spec
	}

	if outputFolder != "" {
		add(domain.TargetNode, domain.FormatCommonJS, filepath.Join(outputFolder, domain.FolderNodeCommonJS))
		add(domain.TargetNode, domain.FormatESModule, filepath.Join(outputFolder, domain.FolderNodeESModule))
		add(domain.TargetBinary, domain.FormatCommonJS, filepath.Join(outputFolder, domain.FolderBinary))
		return matrix
	}

	if m == nil {
		return matrix
	}

	add(domain.TargetNode, domain.FormatCommonJS, m.Main)
	add(domain.TargetNode, domain.FormatESModule, firstNonEmpty(m.Module, m.JSNextMain))
	add(domain.TargetNode, domain.FormatTypes, firstNonEmpty(m.Types, m.Typings))
	if bin, ok := m.FirstBin(); ok {
		add(domain.TargetBinary, domain.FormatCommonJS, bin)
	}
	return matrix
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
