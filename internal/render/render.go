// Package render implements the per-tile production path (spec.md §4.6):
// reproject the source extent once, warp a 256x256 window out of the
// source raster using per-pixel inverse projection, mask no-data, colourise
// through the layer's style, and encode PNG.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/coord"
	"github.com/pspoerri/geotiles/internal/raster"
)

// TileSize is the fixed output tile dimension this server produces.
const TileSize = 256

// RenderTile produces the PNG bytes for one (z, x, y) slippy tile of layer,
// reading from the already-opened source raster r. Blocking: the caller is
// responsible for running this on a worker goroutine, never on the async
// request path (spec.md §5, "Blocking FFI").
func RenderTile(r *raster.Reader, layer catalog.Layer, z, x, y int) ([]byte, error) {
	minX, minY, maxX, maxY := coord.TileBoundsMercator(z, x, y)

	envelope, err := layer.SourceGeometry.Project(3857)
	if err != nil {
		return nil, fmt.Errorf("%w: layer %q: %v", ErrRenderFailed, layer.Name, err)
	}

	srcProj := coord.ForEPSG(layer.SourceGeometry.EPSG)
	if srcProj == nil {
		return nil, fmt.Errorf("%w: layer %q: no projection for EPSG:%d", ErrRenderFailed, layer.Name, layer.SourceGeometry.EPSG)
	}

	resX := (maxX - minX) / TileSize
	resY := (maxY - minY) / TileSize
	if resX <= 0 || resY <= 0 {
		return nil, fmt.Errorf("%w: layer %q: zero-area tile (%d,%d,%d)", ErrRenderFailed, layer.Name, z, x, y)
	}

	_, midLat, _, _ := coord.TileBounds(z, x, y)
	outputResMeters := coord.ResolutionAtLat(midLat, z)
	outputResCRS := coord.MetersToPixelSizeCRS(outputResMeters, srcProj.EPSG(), midLat)

	level := r.OverviewForZoom(outputResCRS)
	sampler := newSourceSampler(r, level)

	buf := acquireValueBuffer(TileSize)
	defer releaseValueBuffer(TileSize, buf)

	// Single stride = TileSize, row-major iteration throughout: resolves
	// the y-axis index ambiguity the historical source left open.
	for py := 0; py < TileSize; py++ {
		gy := maxY - (float64(py)+0.5)*resY
		row := py * TileSize
		for px := 0; px < TileSize; px++ {
			gx := minX + (float64(px)+0.5)*resX

			if gx < envelope.MinX || gx > envelope.MaxX || gy < envelope.MinY || gy > envelope.MaxY {
				buf[row+px] = math.NaN()
				continue
			}

			lon, lat := coord.MercatorToLonLat(gx, gy)
			srcX, srcY := srcProj.FromWGS84(lon, lat)

			v, ok := sampler.sample(srcX, srcY)
			if !ok {
				buf[row+px] = math.NaN()
				continue
			}
			buf[row+px] = v
		}
	}

	img := colourise(buf, layer)
	defer releaseRGBA(img)
	return encodePNG(img)
}

// colourise maps the row-major f32-equivalent sample buffer into an RGBA
// image per spec.md §4.6 step 6: built-in gradient, colour stops, or
// grayscale, with no-data cells fully transparent.
func colourise(buf []float64, layer catalog.Layer) *image.RGBA {
	img := acquireRGBA(TileSize, TileSize)
	model := layer.StyleModel()

	for py := 0; py < TileSize; py++ {
		row := py * TileSize
		for px := 0; px < TileSize; px++ {
			v := buf[row+px]
			if math.IsNaN(v) {
				img.SetRGBA(px, py, color.RGBA{})
				continue
			}
			r, g, b, a := model.Sample(v, layer.MinValue, layer.MaxValue)
			img.SetRGBA(px, py, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

// sourceSampler resolves destination-CRS coordinates to a sampled source
// value, nearest-neighbour, caching the handful of source tiles a single
// 256x256 output tile actually touches so neighbouring output pixels that
// land in the same source tile don't re-decode it.
type sourceSampler struct {
	r       *raster.Reader
	level   int
	geo     raster.GeoInfo
	pixSize float64
	imgW    int
	imgH    int
	tileW   int
	tileH   int
	nodata  float64
	hasND   bool

	cache map[[2]int]*raster.ValueTile
}

func newSourceSampler(r *raster.Reader, level int) *sourceSampler {
	wh := r.IFDTileSize(level)
	nodata, hasND := r.NoDataValue()
	return &sourceSampler{
		r:       r,
		level:   level,
		geo:     r.GeoInfo(),
		pixSize: r.IFDPixelSize(level),
		imgW:    r.IFDWidth(level),
		imgH:    r.IFDHeight(level),
		tileW:   wh[0],
		tileH:   wh[1],
		nodata:  nodata,
		hasND:   hasND,
		cache:   make(map[[2]int]*raster.ValueTile, 4),
	}
}

// sample returns the nearest source sample at CRS coordinates (x, y), and
// false if the point falls outside the source raster, lands in a sparse
// tile, or is a no-data cell (NaN or matching the GDAL nodata metadata).
func (s *sourceSampler) sample(x, y float64) (float64, bool) {
	pixX := (x - s.geo.OriginX) / s.pixSize
	pixY := (s.geo.OriginY - y) / s.pixSize
	if pixX < 0 || pixX >= float64(s.imgW) || pixY < 0 || pixY >= float64(s.imgH) {
		return 0, false
	}

	px := int(math.Floor(pixX))
	py := int(math.Floor(pixY))
	col := px / s.tileW
	row := py / s.tileH
	localX := px % s.tileW
	localY := py % s.tileH

	key := [2]int{col, row}
	vt, ok := s.cache[key]
	if !ok {
		var err error
		vt, err = s.r.ReadValueTile(s.level, col, row)
		if err != nil {
			vt = nil
		}
		s.cache[key] = vt
	}
	if vt == nil || vt.Values == nil {
		return 0, false
	}
	if localX >= vt.Width || localY >= vt.Height {
		return 0, false
	}

	v := vt.Values[localY*vt.Width+localX]
	if math.IsNaN(v) || (s.hasND && v == s.nodata) {
		return 0, false
	}
	return v, true
}
