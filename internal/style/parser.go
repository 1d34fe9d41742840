package style

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidStyleSyntax is returned when a style.txt line has five or more
// comma-separated fields but one of the numeric fields fails to parse.
// Lines with fewer than five fields are skipped silently rather than
// treated as an error.
var ErrInvalidStyleSyntax = errors.New("style: invalid style.txt syntax")

// ParseStyleFile reads a style.txt side-car: one colour stop per line in
// the form "value,red,green,blue,alpha" (a finite float32 value, integer
// byte colour channels). Lines starting with "#" or the literal
// "INTERPOLATION", and blank lines, are skipped. Stops are returned in file
// order; callers must treat the result as already sorted by value.
func ParseStyleFile(r io.Reader) ([]ColourStop, error) {
	var stops []ColourStop
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "INTERPOLATION") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < 5 {
			continue
		}
		stop, err := parseStopFields(fields[:5])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidStyleSyntax, line, err)
		}
		stops = append(stops, stop)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("style: reading style.txt: %w", err)
	}
	return stops, nil
}

func parseStopFields(fields []string) (ColourStop, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 32)
	if err != nil {
		return ColourStop{}, fmt.Errorf("value field %q: %w", fields[0], err)
	}
	r, err := parseByteField(fields[1])
	if err != nil {
		return ColourStop{}, err
	}
	g, err := parseByteField(fields[2])
	if err != nil {
		return ColourStop{}, err
	}
	b, err := parseByteField(fields[3])
	if err != nil {
		return ColourStop{}, err
	}
	a, err := parseByteField(fields[4])
	if err != nil {
		return ColourStop{}, err
	}
	return ColourStop{Value: float32(value), R: r, G: g, B: b, A: a}, nil
}

func parseByteField(field string) (uint8, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("colour field %q: %w", field, err)
	}
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v), nil
}
