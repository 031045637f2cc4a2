package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest loader Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_loader"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return NewManifestLoader(), nil
		},
	})

	graft.Register(graft.Node[*SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}
