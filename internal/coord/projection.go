package coord

import (
	"errors"
	"fmt"
)

// ErrReprojectionFailed is returned when a Geometry cannot be projected into
// the requested CRS: no closed-form fast path exists for the pair of EPSG
// codes, and no closed-form fallback projection is registered for the
// source or destination code either.
var ErrReprojectionFailed = errors.New("coord: reprojection failed")

// Projection converts between a source CRS and WGS84 (EPSG:4326).
type Projection interface {
	ToWGS84(x, y float64) (lon, lat float64)
	FromWGS84(lon, lat float64) (x, y float64)
	EPSG() int
}

// ForEPSG returns a closed-form Projection for epsg, or nil if none is
// registered. Used both as the EPSG:4326/3857 fast path and as the table of
// non-Mercator systems the generic fallback in Geometry.Project knows about.
func ForEPSG(epsg int) Projection {
	switch epsg {
	case 4326:
		return &WGS84Identity{}
	case 3857:
		return &WebMercatorProj{}
	case 2056:
		return &SwissLV95{}
	default:
		return nil
	}
}

// WGS84Identity is a no-op projection for data already in EPSG:4326.
type WGS84Identity struct{}

func (w *WGS84Identity) ToWGS84(x, y float64) (lon, lat float64)   { return x, y }
func (w *WGS84Identity) FromWGS84(lon, lat float64) (x, y float64) { return lon, lat }
func (w *WGS84Identity) EPSG() int                                 { return 4326 }

// Geometry is an axis-aligned extent expressed in the units of a named CRS.
// Invariant: MinX <= MaxX, MinY <= MaxY.
type Geometry struct {
	EPSG                   int
	MinX, MinY, MaxX, MaxY float64
}

// Project returns the Geometry reprojected into targetEPSG.
//
// Four paths, tried in order: (i) identical CRS returns a copy; (ii)
// EPSG:4326 -> EPSG:3857 via LonLatToMercator on both corners; (iii)
// EPSG:3857 -> EPSG:4326 via the inverse; (iv) otherwise, a generic
// EPSG-to-EPSG transform built by composing the source's ForEPSG projection
// (source -> WGS84) with the destination's (WGS84 -> destination). Fails
// with ErrReprojectionFailed when either side has no registered closed-form
// projection.
func (g Geometry) Project(targetEPSG int) (Geometry, error) {
	if targetEPSG == g.EPSG {
		return g, nil
	}

	if g.EPSG == 4326 && targetEPSG == 3857 {
		return projectCorners(g, targetEPSG, LonLatToMercator)
	}
	if g.EPSG == 3857 && targetEPSG == 4326 {
		return projectCorners(g, targetEPSG, MercatorToLonLat)
	}

	src := ForEPSG(g.EPSG)
	dst := ForEPSG(targetEPSG)
	if src == nil || dst == nil {
		return Geometry{}, fmt.Errorf("%w: no closed-form projection for EPSG:%d -> EPSG:%d", ErrReprojectionFailed, g.EPSG, targetEPSG)
	}

	transform := func(x, y float64) (float64, float64) {
		lon, lat := src.ToWGS84(x, y)
		return dst.FromWGS84(lon, lat)
	}
	result, err := projectCorners(g, targetEPSG, transform)
	if err != nil {
		return Geometry{}, err
	}
	if result.MinX > result.MaxX || result.MinY > result.MaxY {
		return Geometry{}, fmt.Errorf("%w: degenerate extent after EPSG:%d -> EPSG:%d", ErrReprojectionFailed, g.EPSG, targetEPSG)
	}
	return result, nil
}

func projectCorners(g Geometry, targetEPSG int, transform func(x, y float64) (float64, float64)) (Geometry, error) {
	x1, y1 := transform(g.MinX, g.MinY)
	x2, y2 := transform(g.MaxX, g.MaxY)
	x3, y3 := transform(g.MinX, g.MaxY)
	x4, y4 := transform(g.MaxX, g.MinY)

	return Geometry{
		EPSG: targetEPSG,
		MinX: min4(x1, x2, x3, x4),
		MinY: min4(y1, y2, y3, y4),
		MaxX: max4(x1, x2, x3, x4),
		MaxY: max4(y1, y2, y3, y4),
	}, nil
}

func min4(a, b, c, d float64) float64 {
	m := a
	for _, v := range []float64{b, c, d} {
		if v < m {
			m = v
		}
	}
	return m
}

func max4(a, b, c, d float64) float64 {
	m := a
	for _, v := range []float64{b, c, d} {
		if v > m {
			m = v
		}
	}
	return m
}
