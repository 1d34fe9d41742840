package reader

import "errors"

// ErrLayerNotFound is returned by GetTile when no layer (or no style
// variant of it) matches the request (spec.md §7's LayerNotFound).
var ErrLayerNotFound = errors.New("reader: layer not found")
