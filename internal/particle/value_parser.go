package particle

import (
	"fmt"
	"strconv"
	"strings"
)

// Source is the uniform random source used when the pool is initialized.
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// Range is a uniform sampling interval.
type Range struct {
	Min float64
	Max float64
}

// Uniform draws one value from r using src.
// A degenerate range (Min == Max) always yields Min.
func Uniform(src Source, r Range) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// String formats the range in the bracket notation accepted by ParseRange.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// ParseRange parses a range value from the scene configuration.
// Supports:
//   - Fixed value: "0.5" → [0.5 0.5]
//   - Range: "[0.004 0.007]" → [0.004 0.007]
//   - Comma separated range: "[-0.015, 0.015]"
//
// Min must not exceed Max.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range value")
	}

	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
		}
		return Range{Min: v, Max: v}, nil
	}

	if !strings.HasSuffix(s, "]") {
		return Range{}, fmt.Errorf("invalid range value %q: missing closing bracket", s)
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	inner = strings.ReplaceAll(inner, ",", " ")
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range value %q: want two bounds, got %d", s, len(parts))
	}

	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
	}
	if lo > hi {
		return Range{}, fmt.Errorf("invalid range value %q: min > max", s)
	}

	return Range{Min: lo, Max: hi}, nil
}
