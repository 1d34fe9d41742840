// Package reader exposes the polymorphic {list_layers, get_tile} facade
// (spec.md §4.8, Design Note "Polymorphic reader"): a capability set
// selected at construction so the HTTP boundary never depends on whether
// tiles come from a local data folder or a remote backend.
package reader

import (
	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/tilecache"
)

// Reader is the capability set the HTTP boundary depends on.
type Reader interface {
	// ListLayers returns every catalogued layer, sorted by lower-cased
	// (layer, style).
	ListLayers() []catalog.Layer

	// GetTile returns the PNG artifact for (layer, z, x, y). style, when
	// non-empty, selects among multiple style variants for the same base
	// name; when empty, the layer's default (first-discovered) variant is
	// used. Returns ErrLayerNotFound if no such layer/style exists.
	GetTile(layer, style string, z, x, y int) (tilecache.TileArtifact, error)
}
