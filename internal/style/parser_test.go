package style

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStyleFile_BasicStops(t *testing.T) {
	input := `# elevation style
INTERPOLATION linear
0,0,0,255,255
100,255,255,0,255

500,255,0,0,255
`
	stops, err := ParseStyleFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 3 {
		t.Fatalf("got %d stops, want 3", len(stops))
	}
	if stops[0].Value != 0 || stops[0].B != 255 {
		t.Errorf("stop 0 = %+v", stops[0])
	}
	if stops[2].Value != 500 || stops[2].R != 255 {
		t.Errorf("stop 2 = %+v", stops[2])
	}
}

func TestParseStyleFile_ShortLineSkippedSilently(t *testing.T) {
	input := "0,0,0,0\n100,255,255,255,255\n"
	stops, err := ParseStyleFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1 (short line silently skipped)", len(stops))
	}
}

func TestParseStyleFile_NonNumericFails(t *testing.T) {
	input := "abc,0,0,0,255\n"
	_, err := ParseStyleFile(strings.NewReader(input))
	if !errors.Is(err, ErrInvalidStyleSyntax) {
		t.Fatalf("err = %v, want ErrInvalidStyleSyntax", err)
	}
}

func TestParseStyleFile_BadColourChannelFails(t *testing.T) {
	input := "0,red,0,0,255\n"
	_, err := ParseStyleFile(strings.NewReader(input))
	if !errors.Is(err, ErrInvalidStyleSyntax) {
		t.Fatalf("err = %v, want ErrInvalidStyleSyntax", err)
	}
}

func TestParseStyleFile_EmptyFile(t *testing.T) {
	stops, err := ParseStyleFile(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 0 {
		t.Fatalf("got %d stops, want 0", len(stops))
	}
}
