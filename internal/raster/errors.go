package raster

import "errors"

// Sentinel error kinds, matched with errors.Is by callers in internal/catalog
// and internal/render.
var (
	// ErrOpenFailed means the file could not be opened, memory-mapped or
	// parsed as a TIFF/GeoTIFF.
	ErrOpenFailed = errors.New("raster: open failed")
	// ErrUnsupportedLayout means the file has no tile or strip layout, or an
	// unsupported compression scheme.
	ErrUnsupportedLayout = errors.New("raster: unsupported layout")
	// ErrStatsFailed means a full-band scan for min/max could not complete.
	ErrStatsFailed = errors.New("raster: stats scan failed")
)
