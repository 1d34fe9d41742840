package reader

import (
	"errors"
	"testing"

	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/tilecache"
)

func TestLocalReader_GetTile_LayerNotFound(t *testing.T) {
	c := catalog.New(map[string][]catalog.Layer{})
	lr := NewLocalReader(c, tilecache.New(0))

	_, err := lr.GetTile("nope", "", 0, 0, 0)
	if !errors.Is(err, ErrLayerNotFound) {
		t.Fatalf("err = %v, want ErrLayerNotFound", err)
	}
}

func TestLocalReader_GetTile_StyleVariantNotFound(t *testing.T) {
	c := catalog.New(map[string][]catalog.Layer{
		"alps": {{Name: "alps", Style: "viridis", Path: "/does/not/matter.tif"}},
	})
	lr := NewLocalReader(c, tilecache.New(0))

	_, err := lr.GetTile("alps", "not-a-style", 0, 0, 0)
	if !errors.Is(err, ErrLayerNotFound) {
		t.Fatalf("err = %v, want ErrLayerNotFound", err)
	}
}

func TestLocalReader_ListLayers_DelegatesToCatalogue(t *testing.T) {
	c := catalog.New(map[string][]catalog.Layer{
		"alps": {{Name: "alps", Style: "viridis"}},
	})
	lr := NewLocalReader(c, tilecache.New(0))

	list := lr.ListLayers()
	if len(list) != 1 || list[0].Name != "alps" {
		t.Fatalf("ListLayers() = %+v", list)
	}
}

func TestLocalReader_Close_NoOpenSources(t *testing.T) {
	c := catalog.New(map[string][]catalog.Layer{})
	lr := NewLocalReader(c, tilecache.New(0))
	if err := lr.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
