// Package config loads package.json and the preppy settings.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestLoader = (*ManifestLoader)(nil)

// ManifestLoader implements ports.ManifestLoader for package.json.
type ManifestLoader struct{}

// NewManifestLoader creates a new ManifestLoader.
func NewManifestLoader() *ManifestLoader {
	return &ManifestLoader{}
}

// Load reads and decodes root/package.json.
func (l *ManifestLoader) Load(root string) (*domain.Manifest, error) {
	manifestPath := filepath.Join(root, domain.ManifestFileName)

	data, err := os.ReadFile(manifestPath) //nolint:gosec // path is the project manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no manifest in project root"), "path", manifestPath)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", manifestPath)
	}

	return ParseManifest(data)
}

// ParseManifest decodes package.json content.
func ParseManifest(data []byte) (*domain.Manifest, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, invalidManifest("package.json", err)
	}

	author, err := decodeAuthor(pkg.Author)
	if err != nil {
		return nil, invalidManifest("author", err)
	}

	bin, err := decodeBin(pkg.Bin, pkg.Name)
	if err != nil {
		return nil, invalidManifest("bin", err)
	}

	return &domain.Manifest{
		Name:             pkg.Name,
		Version:          pkg.Version,
		Author:           author,
		Main:             pkg.Main,
		Module:           pkg.Module,
		JSNextMain:       pkg.JSNextMain,
		Types:            pkg.Types,
		Typings:          pkg.Typings,
		Bin:              bin,
		Dependencies:     pkg.Dependencies,
		PeerDependencies: pkg.PeerDependencies,
	}, nil
}

func invalidManifest(field string, cause error) error {
	err := zerr.Wrap(domain.ErrManifestInvalid, "failed to decode "+field)
	return zerr.With(err, "reason", cause.Error())
}

func decodeAuthor(raw json.RawMessage) (domain.Author, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Author{}, nil
	}

	if raw[0] == '"' {
		var literal string
		if err := json.Unmarshal(raw, &literal); err != nil {
			return domain.Author{}, err
		}
		return domain.Author{Literal: literal}, nil
	}

	var dto AuthorDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Author{}, err
	}
	return domain.Author{Name: dto.Name, Email: dto.Email}, nil
}

// decodeBin keeps the declaration order of an object valued "bin", which a
// map would lose. A string valued "bin" is named after the package.
func decodeBin(raw json.RawMessage, pkgName string) ([]domain.BinEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var p string
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		if p == "" {
			return nil, nil
		}
		return []domain.BinEntry{{Name: path.Base(pkgName), Path: p}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("bin must be a string or an object")
	}

	var entries []domain.BinEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := keyTok.(string)

		var p string
		if err := dec.Decode(&p); err != nil {
			return nil, err
		}
		if p == "" {
			continue
		}
		entries = append(entries, domain.BinEntry{Name: name, Path: p})
	}
	return entries, nil
}
