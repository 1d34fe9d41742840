// Package style implements the colourisation model used to turn a single
// normalised raster band into an RGBA pixel: either one of the nine built-in
// perceptual gradients, an interpolated list of colour stops read from a
// style.txt side-car, or a grayscale fallback.
package style

import "sort"

// ColourStop is one control point of a piecewise-linear colour ramp, as read
// from a style.txt file: at raw sample value Value, the pixel is exactly
// (R, G, B, A).
type ColourStop struct {
	Value       float32
	R, G, B, A  uint8
}

// Style is the colourisation rule attached to a layer: either a built-in
// named gradient (Stops is empty, Builtin is non-nil) or an explicit list of
// colour stops parsed from style.txt (Builtin is nil). A Style with neither
// falls back to grayscale at render time.
type Style struct {
	Name    string
	Stops   []ColourStop
	Builtin Gradient
}

// IsBuiltin reports whether s resolves to one of the named perceptual
// gradients rather than an explicit colour-stop list.
func (s Style) IsBuiltin() bool { return s.Builtin != nil }

// Resolve builds a Style for name, looking it up in the builtin gradient
// registry first. If name is not a builtin, stops (already parsed from the
// layer's style.txt, or nil if that file is absent or failed to parse) is
// used instead; an empty, non-builtin Style renders as grayscale.
func Resolve(name string, stops []ColourStop) Style {
	if g, ok := builtinGradients[name]; ok {
		return Style{Name: name, Builtin: g}
	}
	return Style{Name: name, Stops: sortedStops(stops)}
}

func sortedStops(stops []ColourStop) []ColourStop {
	if len(stops) < 2 {
		return stops
	}
	out := make([]ColourStop, len(stops))
	copy(out, stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// IsBuiltinName reports whether name is one of the nine built-in perceptual
// gradient names, used by the catalogue builder to decide whether a
// style.txt side-car is required for a style bucket.
func IsBuiltinName(name string) bool {
	_, ok := builtinGradients[name]
	return ok
}

// Sample maps a raw sample value into an RGBA pixel, given the layer's
// min/max statistics used to normalise into [0, 1]. No-data is handled by
// the caller (render produces (0,0,0,0) directly without calling Sample).
func (s Style) Sample(raw, min, max float64) (r, g, b, a uint8) {
	switch {
	case s.IsBuiltin():
		t := normalise(raw, min, max)
		return s.Builtin.At(t)
	case len(s.Stops) > 0:
		return sampleStops(s.Stops, raw, min, max)
	default:
		t := normalise(raw, min, max)
		lum := uint8(clamp01(t) * 255)
		return lum, lum, lum, 255
	}
}

func normalise(raw, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return clamp01((raw - min) / (max - min))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// sampleStops linearly interpolates colour between the two stops bracketing
// raw's position in the stop domain. raw is first rescaled from the layer's
// [min, max] value range into the stops' own [first.Value, last.Value]
// domain (spec.md §4.6 step 6, matching the original `src/reader/cog.rs`
// normalise-then-rescale): norm = clamp((raw-min)/(max-min)), scaled =
// stopsMin + norm*(stopsMax-stopsMin). Values at or below the first stop or
// at or above the last clamp to the edge stop's colour rather than
// extrapolating.
func sampleStops(stops []ColourStop, raw, min, max float64) (r, g, b, a uint8) {
	stopsMin := float64(stops[0].Value)
	stopsMax := float64(stops[len(stops)-1].Value)
	norm := normalise(raw, min, max)
	scaled := stopsMin + norm*(stopsMax-stopsMin)

	if scaled <= stopsMin {
		s := stops[0]
		return s.R, s.G, s.B, s.A
	}
	last := stops[len(stops)-1]
	if scaled >= stopsMax {
		return last.R, last.G, last.B, last.A
	}
	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if scaled >= float64(lo.Value) && scaled <= float64(hi.Value) {
			span := float64(hi.Value) - float64(lo.Value)
			if span <= 0 {
				return lo.R, lo.G, lo.B, lo.A
			}
			t := (scaled - float64(lo.Value)) / span
			return lerpByte(lo.R, hi.R, t), lerpByte(lo.G, hi.G, t), lerpByte(lo.B, hi.B, t), lerpByte(lo.A, hi.A, t)
		}
	}
	return last.R, last.G, last.B, last.A
}

func lerpByte(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
