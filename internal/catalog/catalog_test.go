package catalog

import (
	"testing"

	"github.com/pspoerri/geotiles/internal/coord"
)

func testLayers() map[string][]Layer {
	return map[string][]Layer{
		"alps": {
			{Name: "alps", Style: "viridis", SourceGeometry: coord.Geometry{EPSG: 4326}},
			{Name: "alps", Style: "Custom", SourceGeometry: coord.Geometry{EPSG: 4326}},
		},
		"Basin": {
			{Name: "Basin", Style: "magma", SourceGeometry: coord.Geometry{EPSG: 4326}},
		},
	}
}

func TestCatalogue_Lookup_DefaultIsFirstVariant(t *testing.T) {
	c := New(testLayers())
	l, ok := c.Lookup("alps", "")
	if !ok {
		t.Fatalf("expected hit")
	}
	if l.Style != "viridis" {
		t.Errorf("default style = %q, want viridis", l.Style)
	}
}

func TestCatalogue_Lookup_SpecificStyle(t *testing.T) {
	c := New(testLayers())
	l, ok := c.Lookup("alps", "Custom")
	if !ok || l.Style != "Custom" {
		t.Fatalf("Lookup(alps, Custom) = %+v, %v", l, ok)
	}
}

func TestCatalogue_Lookup_MissingLayer(t *testing.T) {
	c := New(testLayers())
	if _, ok := c.Lookup("nope", ""); ok {
		t.Fatalf("expected miss for unknown layer")
	}
}

func TestCatalogue_Lookup_MissingStyleVariant(t *testing.T) {
	c := New(testLayers())
	if _, ok := c.Lookup("alps", "not-a-style"); ok {
		t.Fatalf("expected miss for unknown style variant")
	}
}

func TestCatalogue_List_SortedLowercase(t *testing.T) {
	c := New(testLayers())
	list := c.List()
	if len(list) != 3 {
		t.Fatalf("got %d layers, want 3", len(list))
	}
	// "alps" (both variants, sorted by style lowercase) then "Basin".
	if list[0].Name != "alps" || list[1].Name != "alps" || list[2].Name != "Basin" {
		t.Fatalf("unexpected order: %+v", list)
	}
	if list[0].Style != "Custom" { // "custom" < "viridis" lowercase
		t.Errorf("first alps variant = %q, want Custom", list[0].Style)
	}
}

func TestCatalogue_Size(t *testing.T) {
	c := New(testLayers())
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
}

func TestGeometryVariants_IncludesSourceAnd4326And3857(t *testing.T) {
	source := coord.Geometry{EPSG: 2056, MinX: 2670000, MinY: 1230000, MaxX: 2720000, MaxY: 1290000}
	variants := geometryVariants(source)
	for _, epsg := range []int{2056, 4326, 3857} {
		if _, ok := variants[epsg]; !ok {
			t.Errorf("missing EPSG:%d variant", epsg)
		}
	}
}

func TestGeometryVariants_SourceAlreadyMercator(t *testing.T) {
	source := coord.Geometry{EPSG: 3857, MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}
	variants := geometryVariants(source)
	if len(variants) != 2 {
		t.Fatalf("got %d variants, want 2 (3857 + 4326)", len(variants))
	}
}
