// Package tilecache implements the bounded, concurrent tile-result cache
// described in spec.md §4.7: a byte-weighted LRU keyed by (layer, z, x, y,
// style), with at-most-one-build-per-key semantics and hit/miss/throughput
// statistics.
package tilecache

import "fmt"

// TileKey identifies one cached render: a layer at a slippy coordinate,
// under a specific style variant (empty selects the layer's default style).
type TileKey struct {
	Layer string
	Style string
	Z, X, Y int
}

func (k TileKey) String() string {
	return fmt.Sprintf("%s/%s/%d/%d/%d", k.Layer, k.Style, k.Z, k.X, k.Y)
}

// TileArtifact is the encoded PNG bytes plus its content type, the unit of
// value the cache stores and the HTTP boundary returns directly.
type TileArtifact struct {
	Bytes       []byte
	ContentType string
}

// weight returns the entry's byte weight for the LRU budget: the payload
// size plus a small fixed overhead for the key/bookkeeping itself.
func (a TileArtifact) weight() int64 {
	return int64(len(a.Bytes)) + 64
}
