package ports

import "go.trai.ch/preppy/internal/core/domain"

// ManifestLoader reads the project manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads package.json from root.
	// It returns domain.ErrManifestNotFound when the file does not exist.
	Load(root string) (*domain.Manifest, error)
}
