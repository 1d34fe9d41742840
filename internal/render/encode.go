package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// ContentType is the MIME type of every tile this server produces.
const ContentType = "image/png"

// encodePNG encodes img as PNG8888, matching the teacher's
// internal/encode/png.go encoder options (best-speed compression, since
// tiles are produced on demand rather than during an offline batch build).
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}
