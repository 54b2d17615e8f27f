// Package valuerange parses numeric ranges written as a fixed value ("1500")
// or as a bracketed pair ("[0.6 1.8]"), the notation used by the show
// configuration for randomized parameters.
package valuerange

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval [Min, Max]. A fixed value has Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a degenerate range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Parse parses a value string.
// Supports:
//   - Fixed value: "1500" → [1500, 1500]
//   - Range: "[0.7 0.9]" → [0.7, 0.9]
//
// Reversed bounds are swapped so that Min <= Max always holds.
// NaN and infinities are rejected.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty value")
	}

	if !strings.HasPrefix(s, "[") {
		v, err := parseFinite(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
		}
		return Fixed(v), nil
	}

	if !strings.HasSuffix(s, "]") {
		return Range{}, fmt.Errorf("unterminated range %q", s)
	}
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("range %q must have exactly two values", s)
	}

	lo, err := parseFinite(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
	}
	hi, err := parseFinite(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsFixed reports whether the range holds a single value.
func (r Range) IsFixed() bool { return r.Min == r.Max }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Sample maps u in [0, 1) to a value in the range.
func (r Range) Sample(u float64) float64 {
	return r.Min + u*(r.Max-r.Min)
}

// SampleInt returns an integer uniformly in [Min, Max] (both rounded down).
func (r Range) SampleInt(u float64) int {
	lo, hi := int(r.Min), int(r.Max)
	return lo + int(u*float64(hi-lo+1))
}

// String formats the range in the same notation Parse accepts.
func (r Range) String() string {
	if r.IsFixed() {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// UnmarshalYAML accepts both scalar numbers and range strings.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range must be a scalar", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes the range back in string form.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}
