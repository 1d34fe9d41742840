package coord

import (
	"math"
	"testing"
)

func TestLonLatToMercator_LatitudeClamping(t *testing.T) {
	x1, y1 := LonLatToMercator(10, 90)
	x2, y2 := LonLatToMercator(10, MaxLatitude)
	if x1 != x2 || y1 != y2 {
		t.Errorf("clamped north pole = (%v, %v), want exactly (%v, %v)", x1, y1, x2, y2)
	}

	x3, y3 := LonLatToMercator(10, -90)
	x4, y4 := LonLatToMercator(10, -MaxLatitude)
	if x3 != x4 || y3 != y4 {
		t.Errorf("clamped south pole = (%v, %v), want exactly (%v, %v)", x3, y3, x4, y4)
	}
}

func TestLonLatToMercator_KnownPoints(t *testing.T) {
	x, y := LonLatToMercator(0, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("LonLatToMercator(0,0) = (%v, %v), want (0, 0)", x, y)
	}

	x, _ = LonLatToMercator(180, 0)
	if math.Abs(x-OriginShift) > 1e-6 {
		t.Errorf("LonLatToMercator(180,0).x = %v, want ~%v", x, OriginShift)
	}
}

func TestMercatorRoundTrip_Random(t *testing.T) {
	// Deterministic pseudo-random sequence (no math/rand seed dependency).
	lon, lat := -179.3, 0.0
	for i := 0; i < 1000; i++ {
		lon = math.Mod(lon+180+37.123, 360) - 180
		lat = math.Mod(lat+85+23.456, 170) - 85

		x, y := LonLatToMercator(lon, lat)
		gotLon, gotLat := MercatorToLonLat(x, y)

		if math.Abs(gotLon-lon) > 1e-6 {
			t.Fatalf("lon round trip at i=%d: got %v, want %v", i, gotLon, lon)
		}
		if math.Abs(gotLat-lat) > 1e-6 {
			t.Fatalf("lat round trip at i=%d: got %v, want %v", i, gotLat, lat)
		}
	}
}

func TestTileBoundsMercator_RootTileIsFullExtent(t *testing.T) {
	minx, miny, maxx, maxy := TileBoundsMercator(0, 0, 0)
	want := OriginShift
	for name, got := range map[string]float64{"minx": minx, "miny": miny} {
		if math.Abs(got+want) > 1e-6 {
			t.Errorf("%s = %v, want %v", name, got, -want)
		}
	}
	for name, got := range map[string]float64{"maxx": maxx, "maxy": maxy} {
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestTileBoundsMercator_ChildTilesPartitionParent(t *testing.T) {
	minx0, miny0, maxx0, maxy0 := TileBoundsMercator(0, 0, 0)

	// z=1 has 4 tiles that must exactly tile the z=0 extent.
	var minx, miny, maxx, maxy [2][2]float64
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			a, b, c, d := TileBoundsMercator(1, x, y)
			minx[x][y], miny[x][y], maxx[x][y], maxy[x][y] = a, b, c, d
		}
	}

	if math.Abs(minx[0][0]-minx0) > 1e-6 || math.Abs(maxx[1][0]-maxx0) > 1e-6 {
		t.Errorf("children don't span parent's X extent")
	}
	if math.Abs(miny[0][1]-miny0) > 1e-6 || math.Abs(maxy[0][0]-maxy0) > 1e-6 {
		t.Errorf("children don't span parent's Y extent")
	}
	// Shared edge between left and right column.
	if math.Abs(maxx[0][0]-minx[1][0]) > 1e-9 {
		t.Errorf("column seam mismatch: %v vs %v", maxx[0][0], minx[1][0])
	}
}

func TestTileBoundsMercator_E1(t *testing.T) {
	minx, miny, maxx, maxy := TileBoundsMercator(1, 0, 0)
	if math.Abs(minx+OriginShift) > 1e-6 || math.Abs(miny) > 1e-6 ||
		math.Abs(maxx) > 1e-6 || math.Abs(maxy-OriginShift) > 1e-6 {
		t.Errorf("TileBoundsMercator(1,0,0) = (%v,%v,%v,%v), want (%v,0,0,%v)",
			minx, miny, maxx, maxy, -OriginShift, OriginShift)
	}
}
