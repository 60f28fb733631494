package prakt

import "strings"

// Measurement is the range of cell widths a piece of content can occupy.
// Minimum is the tightest the content compresses to, Maximum the width it
// would take unconstrained.
type Measurement struct {
	Minimum int
	Maximum int
}

// NewMeasurement returns a measurement with the given bounds.
func NewMeasurement(minimum, maximum int) Measurement {
	return Measurement{Minimum: minimum, Maximum: maximum}
}

// ExactMeasurement returns a measurement whose bounds are both size.
func ExactMeasurement(size int) Measurement {
	return Measurement{Minimum: size, Maximum: size}
}

// Span returns the difference between the maximum and minimum widths.
func (m Measurement) Span() int {
	if m.Maximum < m.Minimum {
		return 0
	}
	return m.Maximum - m.Minimum
}

// Normalize orders the bounds and floors them at zero.
func (m Measurement) Normalize() Measurement {
	lo, hi := m.Minimum, m.Maximum
	if hi < lo {
		lo, hi = hi, lo
	}
	return Measurement{Minimum: max(lo, 0), Maximum: max(hi, 0)}
}

// WithMaximum caps both bounds at width.
func (m Measurement) WithMaximum(width int) Measurement {
	return Measurement{Minimum: min(m.Minimum, width), Maximum: min(m.Maximum, width)}
}

// WithMinimum raises both bounds to at least width.
func (m Measurement) WithMinimum(width int) Measurement {
	return Measurement{Minimum: max(m.Minimum, width), Maximum: max(m.Maximum, width)}
}

// Clamp applies optional bounds. A negative minWidth or maxWidth leaves
// that side unconstrained.
func (m Measurement) Clamp(minWidth, maxWidth int) Measurement {
	result := m
	if minWidth >= 0 {
		result = result.WithMinimum(minWidth)
	}
	if maxWidth >= 0 {
		result = result.WithMaximum(maxWidth)
	}
	return result
}

// Union combines two measurements, keeping the tightest minimum and the
// widest maximum.
func (m Measurement) Union(other Measurement) Measurement {
	return Measurement{
		Minimum: max(m.Minimum, other.Minimum),
		Maximum: max(m.Maximum, other.Maximum),
	}
}

// Intersect returns the overlap of two measurements. The second result is
// false when the ranges do not overlap.
func (m Measurement) Intersect(other Measurement) (Measurement, bool) {
	lo := max(m.Minimum, other.Minimum)
	hi := min(m.Maximum, other.Maximum)
	if lo > hi {
		return Measurement{}, false
	}
	return Measurement{Minimum: lo, Maximum: hi}, true
}

// Add widens both bounds by width.
func (m Measurement) Add(width int) Measurement {
	return Measurement{Minimum: m.Minimum + width, Maximum: m.Maximum + width}
}

// Subtract narrows both bounds by width, flooring at zero.
func (m Measurement) Subtract(width int) Measurement {
	return Measurement{
		Minimum: max(m.Minimum-width, 0),
		Maximum: max(m.Maximum-width, 0),
	}
}

// Fits reports whether width lies within the measurement.
func (m Measurement) Fits(width int) bool {
	return width >= m.Minimum && width <= m.Maximum
}

// MeasureUnion folds measurements into one, taking the largest minimum and
// the largest maximum.
func MeasureUnion(measurements []Measurement) Measurement {
	var result Measurement
	for _, m := range measurements {
		result.Minimum = max(result.Minimum, m.Minimum)
		result.Maximum = max(result.Maximum, m.Maximum)
	}
	return result
}

// MeasureSum adds measurements bound by bound, for content laid out side
// by side.
func MeasureSum(measurements []Measurement) Measurement {
	var result Measurement
	for _, m := range measurements {
		result.Minimum += m.Minimum
		result.Maximum += m.Maximum
	}
	return result
}

// Measure returns the width range of the text: the maximum is the widest
// line, the minimum the widest word.
func (t *Text) Measure() Measurement {
	plain := t.plain
	if plain == "" {
		return Measurement{}
	}

	maximum := 0
	for _, line := range strings.Split(plain, "\n") {
		maximum = max(maximum, CellLen(line))
	}

	words := strings.Fields(plain)
	if len(words) == 0 {
		return Measurement{Minimum: maximum, Maximum: maximum}
	}
	minimum := 0
	for _, word := range words {
		minimum = max(minimum, CellLen(word))
	}
	return Measurement{Minimum: minimum, Maximum: maximum}
}
