package render

import (
	"image"
	"sync"
)

// valueBufferPools maps tile side length -> *sync.Pool of []float64 sample
// buffers, mirroring the teacher's (width,height)-keyed *image.RGBA pool:
// in practice every tile in this server is 256x256, so the map stays tiny,
// but keying by size keeps the pool correct if that ever changes.
var valueBufferPools sync.Map

// acquireValueBuffer returns a float64 slice of exactly n*n elements, reused
// from the pool when available. Callers must not assume it is zeroed.
func acquireValueBuffer(n int) []float64 {
	if p, ok := valueBufferPools.Load(n); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			return v.([]float64)
		}
	}
	return make([]float64, n*n)
}

// releaseValueBuffer returns buf to the pool keyed by its length's square
// root side. Buffers of unexpected length are dropped rather than pooled.
func releaseValueBuffer(n int, buf []float64) {
	if len(buf) != n*n {
		return
	}
	p, _ := valueBufferPools.LoadOrStore(n, &sync.Pool{})
	p.(*sync.Pool).Put(buf)
}

// rgbaPools maps (width, height) -> *sync.Pool of *image.RGBA, adapted from
// the teacher's internal/tile/rgbapool.go for the destination colourised
// image instead of a resampled source mosaic tile.
var rgbaPools sync.Map

type rgbaPoolKey struct{ w, h int }

// acquireRGBA returns a zeroed *image.RGBA from the pool, or allocates a new one.
func acquireRGBA(w, h int) *image.RGBA {
	key := rgbaPoolKey{w, h}
	if p, ok := rgbaPools.Load(key); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			img := v.(*image.RGBA)
			clear(img.Pix)
			return img
		}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// releaseRGBA returns img to the pool for reuse. Nil images are ignored.
func releaseRGBA(img *image.RGBA) {
	if img == nil {
		return
	}
	key := rgbaPoolKey{img.Rect.Dx(), img.Rect.Dy()}
	p, _ := rgbaPools.LoadOrStore(key, &sync.Pool{})
	p.(*sync.Pool).Put(img)
}
