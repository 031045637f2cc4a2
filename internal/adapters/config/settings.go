package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment variable read as a setting.
const EnvPrefix = "PREPPY"

// SettingsLoader merges flags, PREPPY_* variables, preppy.yaml and defaults
// (in that order of precedence) into domain.Settings.
type SettingsLoader struct{}

// NewSettingsLoader creates a new SettingsLoader.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{}
}

// Resolve reads the settings. Flags that were set on the command line win
// over everything else; flags is optional.
func (l *SettingsLoader) Resolve(flags *pflag.FlagSet) (domain.Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return domain.Settings{}, zerr.Wrap(err, "failed to bind flags")
		}
	}

	root := v.GetString("root")
	if root == "" {
		root = "."
	}

	if err := readSettingsFile(v, root); err != nil {
		return domain.Settings{}, err
	}

	var file SettingsFile
	if err := v.Unmarshal(&file); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "failed to decode settings"), "reason", err.Error())
	}

	variants := make([]domain.Variant, 0, len(file.Variant))
	for _, name := range file.Variant {
		for part := range strings.SplitSeq(name, ",") {
			if part = strings.TrimSpace(part); part != "" {
				variants = append(variants, domain.Variant(part))
			}
		}
	}

	return domain.Settings{
		Root:          root,
		InputNode:     file.InputNode,
		InputBinary:   file.InputBinary,
		OutputFolder:  file.OutputFolder,
		Sourcemap:     file.Sourcemap,
		Verbose:       file.Verbose,
		Quiet:         file.Quiet,
		Watch:         file.Watch,
		Parallel:      file.Parallel,
		StrictEntries: file.StrictEntries,
		Mode:          domain.Mode(file.Mode),
		Variants:      variants,
		OutputMode:    file.OutputMode,
	}, nil
}

func setDefaults(v *viper.Viper) {
	d := domain.DefaultSettings()
	v.SetDefault("root", d.Root)
	v.SetDefault("sourcemap", d.Sourcemap)
	v.SetDefault("strict-entries", d.StrictEntries)
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("variant", []string{string(domain.VariantAuto)})
	v.SetDefault("output-mode", d.OutputMode)
}

func readSettingsFile(v *viper.Viper, root string) error {
	settingsPath := filepath.Join(root, domain.SettingsFileName)
	if _, err := os.Stat(settingsPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(settingsPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "failed to read settings file"), "reason", err.Error())
		return zerr.With(err, "path", settingsPath)
	}
	return nil
}

// RegisterFlags defines the command line flags backing every setting key.
func RegisterFlags(flags *pflag.FlagSet) {
	d := domain.DefaultSettings()
	flags.String("root", d.Root, "Project root containing package.json")
	flags.String("input-node", "", "Entry of the library target (overrides src/index.*)")
	flags.String("input-binary", "", "Entry of the binary target (overrides src/binary.*)")
	flags.String("output-folder", "", "Write node.commonjs.js, node.esmodule.js and binary.js to this folder")
	flags.BoolP("sourcemap", "m", d.Sourcemap, "Emit sourcemaps")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.BoolP("quiet", "q", false, "Only print warnings and errors")
	flags.BoolP("watch", "w", false, "Rebuild when sources change")
	flags.Bool("parallel", false, "Run build tasks in parallel")
	flags.Bool("strict-entries", d.StrictEntries, "Fail when a declared output has no entry")
	flags.String("mode", string(d.Mode), "Build mode: development or production")
	flags.StringSlice("variant", []string{string(domain.VariantAuto)}, "Transpilation variant: auto, classic or react")
	flags.StringP("output-mode", "o", d.OutputMode, "Output mode: auto, tui, or linear")
}
