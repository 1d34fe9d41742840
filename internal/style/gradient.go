package style

// Gradient samples a continuous perceptual colour ramp at t in [0, 1].
type Gradient interface {
	At(t float64) (r, g, b, a uint8)
}

// stopGradient implements Gradient as piecewise-linear interpolation over a
// fixed set of hand-tabulated control points spanning [0, 1]. None of the
// example repos in the retrieval pack vendor colour-brewer style perceptual
// ramps, so the control points below are transcribed by hand from the
// standard published palettes; alpha is always opaque.
type stopGradient []ColourStop

func (g stopGradient) At(t float64) (r, g2, b, a uint8) {
	return sampleStops([]ColourStop(g), clamp01(t), 0, 1)
}

func rgb(v float32, r, g, b uint8) ColourStop { return ColourStop{Value: v, R: r, G: g, B: b, A: 255} }

// builtinGradients is the registry of the nine named perceptual palettes
// spec.md requires. Each entry's control points are evenly spaced over
// [0, 1] and sampled from the reference palette.
var builtinGradients = map[string]Gradient{
	"viridis": stopGradient{
		rgb(0.00, 0x44, 0x01, 0x54),
		rgb(0.13, 0x47, 0x0c, 0x6a),
		rgb(0.25, 0x3b, 0x22, 0x7e),
		rgb(0.38, 0x2d, 0x39, 0x80),
		rgb(0.50, 0x22, 0x50, 0x7c),
		rgb(0.63, 0x1f, 0x67, 0x74),
		rgb(0.75, 0x27, 0x7e, 0x63),
		rgb(0.88, 0x5e, 0xc9, 0x62),
		rgb(1.00, 0xfd, 0xe7, 0x25),
	},
	"magma": stopGradient{
		rgb(0.00, 0x00, 0x00, 0x04),
		rgb(0.13, 0x1c, 0x10, 0x44),
		rgb(0.25, 0x4f, 0x11, 0x6e),
		rgb(0.38, 0x81, 0x23, 0x81),
		rgb(0.50, 0xb3, 0x37, 0x77),
		rgb(0.63, 0xe1, 0x4a, 0x5f),
		rgb(0.75, 0xfa, 0x7a, 0x50),
		rgb(0.88, 0xfe, 0xb9, 0x6a),
		rgb(1.00, 0xfc, 0xfd, 0xbf),
	},
	"plasma": stopGradient{
		rgb(0.00, 0x0d, 0x08, 0x87),
		rgb(0.13, 0x47, 0x03, 0x9f),
		rgb(0.25, 0x72, 0x02, 0xa8),
		rgb(0.38, 0x9c, 0x17, 0x9f),
		rgb(0.50, 0xbd, 0x34, 0x88),
		rgb(0.63, 0xd9, 0x52, 0x6e),
		rgb(0.75, 0xf0, 0x74, 0x54),
		rgb(0.88, 0xfc, 0xa6, 0x36),
		rgb(1.00, 0xf0, 0xf9, 0x21),
	},
	"inferno": stopGradient{
		rgb(0.00, 0x00, 0x00, 0x04),
		rgb(0.13, 0x1f, 0x09, 0x2e),
		rgb(0.25, 0x57, 0x10, 0x6e),
		rgb(0.38, 0x8b, 0x1d, 0x80),
		rgb(0.50, 0xbc, 0x31, 0x75),
		rgb(0.63, 0xe3, 0x4a, 0x5d),
		rgb(0.75, 0xf8, 0x7a, 0x44),
		rgb(0.88, 0xfc, 0xb5, 0x19),
		rgb(1.00, 0xfc, 0xff, 0xa4),
	},
	"turbo": stopGradient{
		rgb(0.00, 0x30, 0x12, 0x3b),
		rgb(0.13, 0x46, 0x58, 0xd6),
		rgb(0.25, 0x36, 0x9a, 0xf5),
		rgb(0.38, 0x28, 0xc8, 0xb6),
		rgb(0.50, 0x62, 0xe2, 0x3e),
		rgb(0.63, 0xac, 0xe1, 0x1f),
		rgb(0.75, 0xe2, 0xb0, 0x20),
		rgb(0.88, 0xf2, 0x5d, 0x27),
		rgb(1.00, 0x90, 0x0c, 0x00),
	},
	"cubehelix_default": stopGradient{
		rgb(0.00, 0x00, 0x00, 0x00),
		rgb(0.17, 0x1c, 0x31, 0x3f),
		rgb(0.33, 0x1a, 0x62, 0x3a),
		rgb(0.50, 0x56, 0x77, 0x2d),
		rgb(0.67, 0xb4, 0x72, 0x5a),
		rgb(0.83, 0xd4, 0x82, 0xcc),
		rgb(1.00, 0xff, 0xff, 0xff),
	},
	"rainbow": stopGradient{
		rgb(0.00, 0x6e, 0x40, 0xaa),
		rgb(0.17, 0x3f, 0x60, 0xe0),
		rgb(0.33, 0x3c, 0x9e, 0xd4),
		rgb(0.50, 0x4c, 0xc2, 0x55),
		rgb(0.67, 0xd9, 0xd6, 0x35),
		rgb(0.83, 0xf3, 0x8a, 0x2c),
		rgb(1.00, 0xe6, 0x3b, 0x2e),
	},
	"spectral": stopGradient{
		rgb(0.00, 0x9e, 0x01, 0x42),
		rgb(0.17, 0xd5, 0x3e, 0x4f),
		rgb(0.33, 0xf4, 0x8a, 0x59),
		rgb(0.50, 0xfe, 0xe0, 0x8b),
		rgb(0.67, 0xe6, 0xf5, 0x98),
		rgb(0.83, 0x99, 0xd5, 0x94),
		rgb(1.00, 0x3a, 0x8a, 0xb4),
	},
	"sinebow": stopGradient{
		rgb(0.00, 0xff, 0x00, 0x00),
		rgb(0.17, 0xff, 0xae, 0x00),
		rgb(0.33, 0x9e, 0xff, 0x00),
		rgb(0.50, 0x00, 0xff, 0x9e),
		rgb(0.67, 0x00, 0xae, 0xff),
		rgb(0.83, 0x9e, 0x00, 0xff),
		rgb(1.00, 0xff, 0x00, 0xae),
	},
}

// BuiltinNames lists the nine registered palette names, in no particular
// order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinGradients))
	for name := range builtinGradients {
		names = append(names, name)
	}
	return names
}
