package planner

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultVersion = "0.0.0"

// NewBuildOptions resolves settings and the manifest into the options of one run.
func NewBuildOptions(s *domain.Settings, m *domain.Manifest) (domain.BuildOptions, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return domain.BuildOptions{}, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "root", s.Root)
	}

	minify, err := resolveMinify(s.Mode)
	if err != nil {
		return domain.BuildOptions{}, err
	}

	variants, err := ResolveVariants(s.Variants, m)
	if err != nil {
		return domain.BuildOptions{}, err
	}

	if m == nil {
		m = &domain.Manifest{}
	}

	name := m.Name
	if name == "" {
		name = filepath.Base(root)
	}
	version := m.Version
	if version == "" {
		version = defaultVersion
	}

	return domain.BuildOptions{
		Root:         root,
		OutputFolder: s.OutputFolder,
		Watch:        s.Watch,
		Verbose:      s.Verbose,
		Quiet:        s.Quiet,
		Sourcemap:    s.Sourcemap,
		Parallel:     s.Parallel,
		Strict:       s.StrictEntries,
		Minify:       minify,
		Name:         name,
		Version:      version,
		Banner:       domain.Banner(name, version, m.Author),
		Entries:      ResolveEntries(root, s),
		Output:       BuildOutputMatrix(m, s.OutputFolder),
		Variants:     variants,
	}, nil
}

// ResolveVariants validates the requested variants and expands "auto".
// Auto picks react when the manifest depends on react or preact. Variants
// share output paths, so the request must resolve to a single variant.
func ResolveVariants(requested []domain.Variant, m *domain.Manifest) ([]domain.Variant, error) {
	if len(requested) == 0 {
		requested = []domain.Variant{domain.VariantAuto}
	}

	resolved := make([]domain.Variant, 0, len(requested))
	for _, v := range requested {
		if _, ok := domain.ParseVariant(string(v)); !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "unknown variant"), "variant", string(v))
		}
		if v == domain.VariantAuto {
			v = domain.VariantClassic
			if m.DependsOn("react") || m.DependsOn("preact") {
				v = domain.VariantReact
			}
		}
		if !slices.Contains(resolved, v) {
			resolved = append(resolved, v)
		}
	}
	if len(resolved) > 1 {
		names := make([]string, len(resolved))
		for i, v := range resolved {
			names[i] = string(v)
		}
		err := zerr.Wrap(domain.ErrSettingsInvalid, "variants would write the same outputs")
		return nil, zerr.With(err, "variants", strings.Join(names, ","))
	}
	return resolved, nil
}

func resolveMinify(mode domain.Mode) (bool, error) {
	switch mode {
	case domain.ModeProduction:
		return true, nil
	case domain.ModeDevelopment, "":
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "unknown mode"), "mode", string(mode))
	}
}
