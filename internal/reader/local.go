package reader

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/raster"
	"github.com/pspoerri/geotiles/internal/render"
	"github.com/pspoerri/geotiles/internal/tilecache"
)

// LocalReader serves tiles from a catalogue of rasters on the local
// filesystem. Rendering runs on a bounded blocking worker pool sized to the
// logical CPU count reported by runtime.NumCPU, hyperthreads included
// (spec.md §5): the async/HTTP path must never call the
// raster library directly, only enqueue work here and wait for the result.
type LocalReader struct {
	catalogue *catalog.Catalogue
	cache     *tilecache.Cache
	workers   chan struct{}

	mu      sync.Mutex
	sources map[string]*raster.Reader // path -> open, mmap'd reader, process lifetime
}

// NewLocalReader wires a pre-built catalogue and tile cache into a Reader.
// Both are process-wide, constructed once at startup (spec.md §9,
// "Process-wide state").
func NewLocalReader(c *catalog.Catalogue, cache *tilecache.Cache) *LocalReader {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return &LocalReader{
		catalogue: c,
		cache:     cache,
		workers:   make(chan struct{}, workers),
		sources:   make(map[string]*raster.Reader),
	}
}

func (lr *LocalReader) ListLayers() []catalog.Layer {
	return lr.catalogue.List()
}

func (lr *LocalReader) GetTile(layerName, styleName string, z, x, y int) (tilecache.TileArtifact, error) {
	layer, ok := lr.catalogue.Lookup(layerName, styleName)
	if !ok {
		return tilecache.TileArtifact{}, fmt.Errorf("%w: '%s'", ErrLayerNotFound, layerName)
	}

	key := tilecache.TileKey{Layer: layer.Name, Style: layer.Style, Z: z, X: x, Y: y}
	return lr.cache.GetOrBuild(key, func(tilecache.TileKey) (tilecache.TileArtifact, error) {
		return lr.renderOnWorker(layer, z, x, y)
	})
}

func (lr *LocalReader) renderOnWorker(layer catalog.Layer, z, x, y int) (tilecache.TileArtifact, error) {
	lr.workers <- struct{}{}
	defer func() { <-lr.workers }()

	src, err := lr.sourceFor(layer)
	if err != nil {
		return tilecache.TileArtifact{}, err
	}

	png, err := render.RenderTile(src, layer, z, x, y)
	if err != nil {
		return tilecache.TileArtifact{}, err
	}
	return tilecache.TileArtifact{Bytes: png, ContentType: render.ContentType}, nil
}

// sourceFor returns the open, mmap'd raster.Reader for layer.Path, opening
// and caching it on first use. Sources live for the process lifetime, same
// as the catalogue itself.
func (lr *LocalReader) sourceFor(layer catalog.Layer) (*raster.Reader, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if r, ok := lr.sources[layer.Path]; ok {
		return r, nil
	}
	r, err := raster.Open(layer.Path)
	if err != nil {
		return nil, err
	}
	lr.sources[layer.Path] = r
	return r, nil
}

// Close releases every open source raster. Called at shutdown.
func (lr *LocalReader) Close() error {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	var firstErr error
	for _, r := range lr.sources {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
