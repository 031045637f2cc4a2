// Package assets extracts non-script imports into content addressed files
// next to the bundle.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// HashLength is the number of hex characters of the content hash kept in file names.
const HashLength = 8

// scriptExtensions are handled by the bundler itself and never extracted.
var scriptExtensions = map[string]struct{}{
	"js": {}, "jsx": {}, "mjs": {}, "cjs": {}, "ts": {}, "tsx": {},
	"es": {}, "es5": {}, "es6": {},
	"json": {}, "yaml": {}, "yml": {}, "toml": {},
}

// styleExtensions are compiled to CSS instead of copied.
var styleExtensions = map[string]struct{}{
	".css": {}, ".sss": {}, ".scss": {},
}

type recordKey struct {
	folder string
	hash   string
	ext    string
}

func (k recordKey) String() string {
	return k.folder + "\x00" + k.hash + "\x00" + k.ext
}

// Registry remembers every asset emitted during a run. One file is written
// per output folder, content hash and destination extension; later sources
// with the same content and extension reuse the first destination.
// It is safe for concurrent use.
type Registry struct {
	styles ports.StyleCompiler

	mu        sync.Mutex
	records   map[recordKey]string
	externals map[string]map[string]struct{}
	group     singleflight.Group
}

// NewRegistry creates an empty Registry that compiles stylesheets with styles.
func NewRegistry(styles ports.StyleCompiler) *Registry {
	return &Registry{
		styles:    styles,
		records:   make(map[recordKey]string),
		externals: make(map[string]map[string]struct{}),
	}
}

// IsAsset reports whether path is extracted rather than bundled.
func IsAsset(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	_, script := scriptExtensions[strings.ToLower(ext)]
	return !script
}

// DestName returns the hashed file name of src: logo.png -> logo-1a2b3c4d.png.
// Stylesheets always end in .css.
func DestName(src, hash string) string {
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	if isStyle(src) {
		ext = ".css"
	}
	return base + "-" + hash + ext
}

// ModuleSource is the module that stands in for an extracted asset.
func ModuleSource(hash, dest string) string {
	return "import h" + hash + ` from "./` + dest + `"; export default h` + hash + ";"
}

// IsExternal reports whether id was registered for folder.
func (r *Registry) IsExternal(folder, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.externals[folder][id]
	return ok
}

// Emit hashes src and makes sure its destination exists in folder.
// It returns the content hash and the destination file name.
func (r *Registry) Emit(ctx context.Context, folder, src string) (hash, dest string, err error) {
	hash, err = FileHash(src)
	if err != nil {
		return "", "", emitError(err, "failed to read asset", src)
	}

	dest = DestName(src, hash)
	key := recordKey{folder: folder, hash: hash, ext: filepath.Ext(dest)}
	v, err, _ := r.group.Do(key.String(), func() (any, error) {
		if dest, ok := r.lookup(key); ok {
			return dest, nil
		}

		target := filepath.Join(folder, dest)
		if isStyle(src) {
			if err := r.styles.Compile(ctx, src, target); err != nil {
				return "", err
			}
		} else if err := copyFile(src, target); err != nil {
			return "", emitError(err, "failed to copy asset", src)
		}

		r.register(key, dest)
		return dest, nil
	})
	if err != nil {
		return "", "", err
	}
	return hash, v.(string), nil
}

// emitError keeps the cause in the chain and marks it as an emit failure.
func emitError(err error, msg, src string) error {
	return errors.Join(domain.ErrAssetEmitFailed, zerr.With(zerr.Wrap(err, msg), "source", src))
}

func (r *Registry) lookup(key recordKey) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.records[key]
	return dest, ok
}

func (r *Registry) register(key recordKey, dest string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = dest
	ids, ok := r.externals[key.folder]
	if !ok {
		ids = make(map[string]struct{})
		r.externals[key.folder] = ids
	}
	ids["./"+dest] = struct{}{}
}

// FileHash streams path through SHA-256 and returns the first HashLength hex characters.
func FileHash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the bundler's resolver
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:HashLength], nil
}

func isStyle(path string) bool {
	_, ok := styleExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // path comes from the bundler's resolver
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // assets are public artifacts
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
