package style

import "testing"

func TestResolve_BuiltinName(t *testing.T) {
	s := Resolve("viridis", nil)
	if !s.IsBuiltin() {
		t.Fatalf("Resolve(viridis) is not builtin")
	}
}

func TestResolve_CustomStopsSortedByValue(t *testing.T) {
	stops := []ColourStop{
		{Value: 100, R: 255},
		{Value: 0, B: 255},
	}
	s := Resolve("elevation", stops)
	if s.IsBuiltin() {
		t.Fatalf("Resolve(elevation) unexpectedly builtin")
	}
	if s.Stops[0].Value != 0 || s.Stops[1].Value != 100 {
		t.Fatalf("stops not sorted: %+v", s.Stops)
	}
}

func TestSample_StopInterpolationMidpoint(t *testing.T) {
	s := Style{Stops: []ColourStop{
		{Value: 0, R: 0, G: 0, B: 0, A: 255},
		{Value: 10, R: 200, G: 100, B: 50, A: 255},
	}}
	r, g, b, a := s.Sample(5, 0, 10)
	if r != 100 || g != 50 || b != 25 || a != 255 {
		t.Errorf("midpoint sample = (%d,%d,%d,%d), want (100,50,25,255)", r, g, b, a)
	}
}

func TestSample_StopInterpolationRescalesWhenDomainDiffersFromRange(t *testing.T) {
	// Stops span [0,100] but the raster's own value range is [0,1000]:
	// raw=500 is the midpoint of the raster range, so it must rescale to
	// the midpoint of the stop domain (50) and interpolate there, not be
	// compared against the stop values directly (which would clamp to the
	// last stop).
	s := Style{Stops: []ColourStop{
		{Value: 0, R: 0, G: 0, B: 0, A: 255},
		{Value: 100, R: 200, G: 100, B: 50, A: 255},
	}}
	r, g, b, a := s.Sample(500, 0, 1000)
	if r != 100 || g != 50 || b != 25 || a != 255 {
		t.Errorf("rescaled midpoint sample = (%d,%d,%d,%d), want (100,50,25,255)", r, g, b, a)
	}
}

func TestSample_StopsClampBelowAndAbove(t *testing.T) {
	s := Style{Stops: []ColourStop{
		{Value: 0, R: 10, G: 20, B: 30, A: 255},
		{Value: 10, R: 200, G: 200, B: 200, A: 255},
	}}
	r, g, b, _ := s.Sample(-5, 0, 10)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("below-range sample = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
	r, g, b, _ = s.Sample(50, 0, 10)
	if r != 200 || g != 200 || b != 200 {
		t.Errorf("above-range sample = (%d,%d,%d), want (200,200,200)", r, g, b)
	}
}

func TestSample_NoStopsFallsBackToGrayscale(t *testing.T) {
	s := Style{}
	r, g, b, a := s.Sample(50, 0, 100)
	if r != g || g != b {
		t.Errorf("grayscale fallback not gray: (%d,%d,%d)", r, g, b)
	}
	if a != 255 {
		t.Errorf("grayscale alpha = %d, want 255", a)
	}
	if r < 120 || r > 135 {
		t.Errorf("midpoint luminance = %d, want ~127", r)
	}
}

func TestSample_BuiltinGradientEndpoints(t *testing.T) {
	s := Resolve("viridis", nil)
	r0, g0, b0, _ := s.Sample(0, 0, 100)
	if r0 != 0x44 || g0 != 0x01 || b0 != 0x54 {
		t.Errorf("viridis(0) = (%x,%x,%x), want (44,01,54)", r0, g0, b0)
	}
	r1, g1, b1, _ := s.Sample(100, 0, 100)
	if r1 != 0xfd || g1 != 0xe7 || b1 != 0x25 {
		t.Errorf("viridis(1) = (%x,%x,%x), want (fd,e7,25)", r1, g1, b1)
	}
}

func TestIsBuiltinName(t *testing.T) {
	for _, name := range []string{"viridis", "magma", "plasma", "inferno", "turbo",
		"cubehelix_default", "rainbow", "spectral", "sinebow"} {
		if !IsBuiltinName(name) {
			t.Errorf("IsBuiltinName(%q) = false, want true", name)
		}
	}
	if IsBuiltinName("not-a-real-palette") {
		t.Errorf("IsBuiltinName(unknown) = true, want false")
	}
}

func TestBuiltinNames_HasNine(t *testing.T) {
	if len(BuiltinNames()) != 9 {
		t.Fatalf("got %d builtin names, want 9", len(BuiltinNames()))
	}
}
