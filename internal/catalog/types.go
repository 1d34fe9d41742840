// Package catalog builds and holds the in-memory map of raster layers
// discovered under a data root, keyed by layer name, each carrying the
// geometry and colourisation data the renderer needs.
package catalog

import (
	"sort"
	"time"

	"github.com/pspoerri/geotiles/internal/coord"
	"github.com/pspoerri/geotiles/internal/style"
)

// Layer is one discovered raster: a single-band file under
// <root>/<style>/<layer>.tif, paired with the style it renders through.
type Layer struct {
	Name  string
	Style string
	Path  string

	SizeBytes int64
	ModTime   time.Time

	SourceGeometry coord.Geometry
	// CachedGeometry always contains SourceGeometry.EPSG, plus 4326 and 3857
	// when SourceGeometry.Project reaches them, precomputed at build time so
	// list_layers never reprojects on demand. A variant whose projection
	// fails (a source CRS with no registered projection) is absent.
	CachedGeometry map[int]coord.Geometry

	ColourStops []style.ColourStop
	MinValue    float64
	MaxValue    float64
	IsCOG       bool
}

// StyleModel resolves this layer's colourisation rule: a built-in gradient
// if Style names one, otherwise its parsed colour stops (grayscale if empty).
func (l Layer) StyleModel() style.Style {
	return style.Resolve(l.Style, l.ColourStops)
}

// Catalogue is the immutable, process-lifetime map from layer name to its
// style variants. The same base name may appear under multiple style
// folders; variants preserve discovery order, and the first is the default
// used when get_tile's style selector is absent.
type Catalogue struct {
	byName map[string][]Layer
}

// New wraps a pre-built name->variants map. Used by the builder and by
// tests that want to construct a Catalogue directly.
func New(byName map[string][]Layer) *Catalogue {
	return &Catalogue{byName: byName}
}

// Variants returns every style variant of layer, in discovery order, or nil
// if no layer by that name was catalogued.
func (c *Catalogue) Variants(layer string) []Layer {
	return c.byName[layer]
}

// Lookup returns the layer named layer, optionally restricted to a specific
// style variant. An empty style selects the first (default) variant. The
// second return value is false if no matching layer exists.
func (c *Catalogue) Lookup(layer, style string) (Layer, bool) {
	variants := c.byName[layer]
	if len(variants) == 0 {
		return Layer{}, false
	}
	if style == "" {
		return variants[0], true
	}
	for _, v := range variants {
		if v.Style == style {
			return v, true
		}
	}
	return Layer{}, false
}

// List returns every catalogued layer (all variants of all names) sorted by
// lower-cased (layer, style), per spec.md §4.8's list_layers contract.
func (c *Catalogue) List() []Layer {
	out := make([]Layer, 0, len(c.byName))
	for _, variants := range c.byName {
		out = append(out, variants...)
	}
	sort.Slice(out, func(i, j int) bool {
		if li, lj := lower(out[i].Name), lower(out[j].Name); li != lj {
			return li < lj
		}
		return lower(out[i].Style) < lower(out[j].Style)
	})
	return out
}

// Size returns the number of distinct layer names catalogued.
func (c *Catalogue) Size() int { return len(c.byName) }

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// geometryVariants precomputes the CRS->Geometry map that list_layers relies
// on: the source CRS plus both 4326 and 3857, failing soft (an unreachable
// CRS is simply omitted rather than aborting the whole layer).
func geometryVariants(source coord.Geometry) map[int]coord.Geometry {
	out := map[int]coord.Geometry{source.EPSG: source}
	for _, target := range []int{4326, 3857} {
		if _, ok := out[target]; ok {
			continue
		}
		if g, err := source.Project(target); err == nil {
			out[target] = g
		}
	}
	return out
}
