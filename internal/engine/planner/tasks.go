package planner

import (
	"fmt"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

// CheckEntries reports targets that are owed output but have no entry.
//
// With strict entries a declared output without a source is an error.
// Otherwise, and always for the conventional --output-folder matrix, the
// target is skipped and a warning is returned instead.
func CheckEntries(opts *domain.BuildOptions) ([]string, error) {
	var warnings []string
	for _, target := range domain.Targets {
		if !opts.Output.Owes(target) {
			continue
		}
		if _, ok := opts.Entry(target); ok {
			continue
		}
		if opts.Strict && opts.OutputFolder == "" {
			err := zerr.With(zerr.Wrap(domain.ErrEntryNotFound, "owed output has no entry"), "target", string(target))
			for _, f := range domain.Formats {
				if spec, ok := opts.Output.Lookup(target, f); ok {
					err = zerr.With(err, "output", spec.Path)
					break
				}
			}
			return nil, err
		}
		warnings = append(warnings, fmt.Sprintf("no %s entry found, skipping its outputs", target))
	}
	return warnings, nil
}

// BuildTasks crosses entries, owed outputs and variants into the task list.
//
// Iteration order is target, then format, then variant. Declaration tasks
// are emitted once per target and only for TypeScript entries. Tasks are
// unique per output path; the first one planned wins.
func BuildTasks(opts *domain.BuildOptions) ([]domain.BuildTask, error) {
	var tasks []domain.BuildTask
	seen := make(map[string]struct{})

	add := func(target domain.Target, format domain.Format, variant domain.Variant, input, output string) {
		if _, dup := seen[output]; dup {
			return
		}
		seen[output] = struct{}{}
		tasks = append(tasks, domain.BuildTask{
			Target:    target,
			Format:    format,
			Variant:   variant,
			Input:     input,
			Output:    output,
			Root:      opts.Root,
			Name:      opts.Name,
			Version:   opts.Version,
			Banner:    opts.Banner,
			Sourcemap: opts.Sourcemap,
			Minify:    opts.Minify,
			Quiet:     opts.Quiet,
			Verbose:   opts.Verbose,
		})
	}

	for _, target := range domain.Targets {
		entry, ok := opts.Entry(target)
		if !ok {
			continue
		}
		for _, format := range domain.Formats {
			spec, ok := opts.Output.Lookup(target, format)
			if !ok {
				continue
			}
			if format == domain.FormatTypes {
				if domain.IsTypeScriptEntry(entry) && len(opts.Variants) > 0 {
					add(target, format, opts.Variants[0], entry, spec.Path)
				}
				continue
			}
			for _, variant := range opts.Variants {
				add(target, format, variant, entry, spec.Path)
			}
		}
	}

	if len(tasks) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNothingToBuild, "no task planned"), "root", opts.Root)
	}
	return tasks, nil
}
