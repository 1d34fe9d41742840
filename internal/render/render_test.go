package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/style"
)

func TestColourise_NoDataIsFullyTransparent(t *testing.T) {
	buf := acquireValueBuffer(TileSize)
	defer releaseValueBuffer(TileSize, buf)
	for i := range buf {
		buf[i] = math.NaN()
	}
	buf[0] = 50

	layer := catalog.Layer{MinValue: 0, MaxValue: 100}
	img := colourise(buf, layer)
	defer releaseRGBA(img)

	if c := img.RGBAAt(1, 0); c.A != 0 {
		t.Errorf("no-data pixel alpha = %d, want 0", c.A)
	}
	if c := img.RGBAAt(0, 0); c.A != 255 {
		t.Errorf("in-range pixel alpha = %d, want 255", c.A)
	}
}

func TestColourise_StopInterpolationMidpoint(t *testing.T) {
	buf := make([]float64, TileSize*TileSize)
	buf[0] = 50

	layer := catalog.Layer{
		MinValue: 0, MaxValue: 100,
		ColourStops: []style.ColourStop{
			{Value: 0, R: 0, G: 0, B: 0, A: 255},
			{Value: 100, R: 200, G: 100, B: 50, A: 255},
		},
	}
	img := colourise(buf, layer)
	defer releaseRGBA(img)

	c := img.RGBAAt(0, 0)
	if c.R != 100 || c.G != 50 || c.B != 25 {
		t.Errorf("midpoint colour = %+v, want (100,50,25)", c)
	}
}

func TestColourise_GrayscaleFallback(t *testing.T) {
	buf := make([]float64, TileSize*TileSize)
	buf[0] = 100

	layer := catalog.Layer{MinValue: 0, MaxValue: 100}
	img := colourise(buf, layer)
	defer releaseRGBA(img)

	c := img.RGBAAt(0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("max grayscale = %+v, want white", c)
	}
}

func TestColourise_BuiltinGradient(t *testing.T) {
	buf := make([]float64, TileSize*TileSize)
	buf[0] = 0

	layer := catalog.Layer{Style: "viridis", MinValue: 0, MaxValue: 100}
	img := colourise(buf, layer)
	defer releaseRGBA(img)

	c := img.RGBAAt(0, 0)
	if c.R != 0x44 || c.G != 0x01 || c.B != 0x54 {
		t.Errorf("viridis(0) = %+v, want (44,01,54)", c)
	}
}

func TestAcquireReleaseRGBA_Zeroed(t *testing.T) {
	img := acquireRGBA(4, 4)
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	releaseRGBA(img)

	img2 := acquireRGBA(4, 4)
	if img2.RGBAAt(0, 0) != (color.RGBA{}) {
		t.Errorf("reused buffer not cleared: %+v", img2.RGBAAt(0, 0))
	}
}

func TestAcquireValueBuffer_WrongLengthNotPooled(t *testing.T) {
	buf := make([]float64, 7)
	releaseValueBuffer(TileSize, buf) // should be a no-op, not panic
	got := acquireValueBuffer(TileSize)
	if len(got) != TileSize*TileSize {
		t.Errorf("got len %d, want %d", len(got), TileSize*TileSize)
	}
}
