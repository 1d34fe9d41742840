package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pspoerri/geotiles/internal/coord"
	"github.com/pspoerri/geotiles/internal/raster"
	"github.com/pspoerri/geotiles/internal/style"
)

var acceptedExtensions = map[string]bool{
	".tif": true, ".tiff": true, ".geotiff": true, ".geotif": true,
}

// Build walks root (spec.md §4.5), opening every accepted raster file found
// at minimum depth 2 (root/<style>/<layer>.ext) and assembling the
// catalogue. A per-file error is logged and the file is skipped; the
// catalogue is robust to partial data. The on-disk metadata side-car is
// consulted for unchanged files and rewritten atomically once the scan
// completes. log is threaded through rather than taken from a package
// global, matching the "no global logger state inside internal/" design.
func Build(root string, log zerolog.Logger) (*Catalogue, error) {
	cache := loadMetadataCache(root, log)
	updated := map[string]cachedRecord{}
	byName := map[string][]Layer{}
	styleTxtCache := map[string][]style.ColourStop{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn().Err(err).Str("path", path).Msg("catalog: walk error, skipping")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := len(strings.Split(filepath.ToSlash(rel), "/"))
		if depth < 2 {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !acceptedExtensions[ext] {
			return nil
		}

		layer, ok := buildLayer(path, root, cache, updated, styleTxtCache, log)
		if !ok {
			return nil
		}
		byName[layer.Name] = append(byName[layer.Name], layer)
		return nil
	})
	if err != nil {
		return nil, err
	}

	saveMetadataCache(root, updated, log)
	logSummary(byName, log)

	return New(byName), nil
}

func buildLayer(path, root string, cache map[string]cachedRecord, updated map[string]cachedRecord, styleTxtCache map[string][]style.ColourStop, log zerolog.Logger) (Layer, bool) {
	layerName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	styleName := filepath.Base(filepath.Dir(path))

	fi, err := os.Stat(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("catalog: stat failed, skipping")
		return Layer{}, false
	}
	sizeBytes := fi.Size()
	modTime := fi.ModTime()
	lastModified := modTime.Unix()

	stops := resolveColourStops(styleName, filepath.Dir(path), styleTxtCache, log)

	if rec, ok := cache[layerName]; ok && rec.matches(sizeBytes, lastModified) {
		updated[layerName] = rec
		return Layer{
			Name:      layerName,
			Style:     styleName,
			Path:      path,
			SizeBytes: sizeBytes,
			ModTime:   modTime,
			SourceGeometry: coord.Geometry{
				EPSG: rec.crsCode,
				MinX: rec.minx, MinY: rec.miny, MaxX: rec.maxx, MaxY: rec.maxy,
			},
			CachedGeometry: geometryVariants(coord.Geometry{
				EPSG: rec.crsCode,
				MinX: rec.minx, MinY: rec.miny, MaxX: rec.maxx, MaxY: rec.maxy,
			}),
			ColourStops: stops,
			MinValue:    rec.min,
			MaxValue:    rec.max,
			IsCOG:       rec.isCOG,
		}, true
	}

	r, err := raster.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("catalog: could not open raster, skipping")
		return Layer{}, false
	}
	defer r.Close()

	minX, minY, maxX, maxY := r.BoundsInCRS()
	geom := coord.Geometry{EPSG: r.EPSGOrZero(), MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}

	min, max, err := r.Stats(0)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("catalog: stats failed, skipping")
		return Layer{}, false
	}

	layer := Layer{
		Name:           layerName,
		Style:          styleName,
		Path:           path,
		SizeBytes:      sizeBytes,
		ModTime:        modTime,
		SourceGeometry: geom,
		CachedGeometry: geometryVariants(geom),
		ColourStops:    stops,
		MinValue:       min,
		MaxValue:       max,
		IsCOG:          r.IsCOG(),
	}

	updated[layerName] = cachedRecord{
		sizeBytes: sizeBytes, lastModified: lastModified, crsCode: geom.EPSG,
		min: min, max: max, isCOG: layer.IsCOG,
		minx: minX, miny: minY, maxx: maxX, maxy: maxY,
	}
	return layer, true
}

// resolveColourStops returns empty for a built-in palette name, otherwise
// attempts to parse style.txt in dir, falling back to grayscale (nil
// stops) on any failure. Parsed style.txt files are cached per directory
// since many layers typically share one style bucket.
func resolveColourStops(styleName, dir string, cache map[string][]style.ColourStop, log zerolog.Logger) []style.ColourStop {
	if style.IsBuiltinName(styleName) {
		return nil
	}
	if stops, ok := cache[dir]; ok {
		return stops
	}
	stylePath := filepath.Join(dir, "style.txt")
	f, err := os.Open(stylePath)
	if err != nil {
		log.Warn().Str("path", stylePath).Msg("catalog: no style.txt, falling back to grayscale")
		cache[dir] = nil
		return nil
	}
	defer f.Close()

	stops, err := style.ParseStyleFile(f)
	if err != nil {
		log.Warn().Err(err).Str("path", stylePath).Msg("catalog: invalid style.txt, falling back to grayscale")
		cache[dir] = nil
		return nil
	}
	cache[dir] = stops
	return stops
}

// logSummary emits a human-readable table grouped by style, warning when a
// style has layers whose min/max fall outside its colour-stop domain or
// when not every layer under a style is a COG (spec.md §4.5).
func logSummary(byName map[string][]Layer, log zerolog.Logger) {
	byStyle := map[string][]Layer{}
	for _, variants := range byName {
		for _, l := range variants {
			byStyle[l.Style] = append(byStyle[l.Style], l)
		}
	}

	for styleName, layers := range byStyle {
		cogCount := 0
		outOfDomain := 0
		model := style.Resolve(styleName, layers[0].ColourStops)
		for _, l := range layers {
			if l.IsCOG {
				cogCount++
			}
			if !model.IsBuiltin() && len(l.ColourStops) > 0 {
				lo := float64(l.ColourStops[0].Value)
				hi := float64(l.ColourStops[len(l.ColourStops)-1].Value)
				if l.MinValue < lo || l.MaxValue > hi {
					outOfDomain++
				}
			}
		}

		ev := log.Info().Str("style", styleName).Int("layers", len(layers)).Int("cog", cogCount)
		if cogCount < len(layers) {
			ev = ev.Bool("partial_cog_coverage", true)
		}
		if outOfDomain > 0 {
			ev = ev.Int("out_of_domain", outOfDomain)
		}
		ev.Msg("catalog: style bucket scanned")

		if cogCount < len(layers) {
			log.Warn().Str("style", styleName).Msg("catalog: not all layers under this style are COGs, render performance is best-effort")
		}
		if outOfDomain > 0 {
			log.Warn().Str("style", styleName).Int("count", outOfDomain).Msg("catalog: some layers' min/max fall outside the style's colour-stop domain")
		}
	}

	for name, variants := range byName {
		if len(variants) > 1 {
			log.Info().Str("layer", name).Int("style_variants", len(variants)).
				Msg("catalog: layer name appears under multiple style folders")
		}
	}
}
