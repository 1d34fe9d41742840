package render

import "errors"

// ErrRenderFailed wraps any failure encountered while warping, masking or
// colourising a tile (spec.md §7's RenderFailed error kind).
var ErrRenderFailed = errors.New("render: render failed")

// ErrEncodeFailed wraps a failure while encoding the colourised buffer to
// PNG bytes (spec.md §7's EncodeFailed error kind).
var ErrEncodeFailed = errors.New("render: encode failed")
