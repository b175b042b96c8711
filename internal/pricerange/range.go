// Package pricerange implements the two-handle price filter.
//
// The low and high handles can touch but never cross: a request that would
// cross is pulled back onto the other handle instead of being rejected.
package pricerange

// Range is a bounded pair of values with Min <= Low <= High <= Max.
type Range struct {
	Min  int
	Max  int
	Low  int
	High int
}

// New returns a range over [min, max] with the handles at low and high.
// Bounds given in the wrong order are swapped; handles are placed with the
// same rules as SetLow and SetHigh.
func New(min, max, low, high int) Range {
	if max < min {
		min, max = max, min
	}
	r := Range{Min: min, Max: max, Low: min, High: max}
	r.High = r.SetHigh(high, r.Low)
	r.Low = r.SetLow(low, r.High)
	return r
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// SetLow returns the low handle value for a requested position.
// The request is clamped to the bounds first, then pulled down to currentHigh.
func (r Range) SetLow(requested, currentHigh int) int {
	return min(r.Clamp(requested), currentHigh)
}

// SetHigh returns the high handle value for a requested position.
// The request is clamped to the bounds first, then pulled up to currentLow.
func (r Range) SetHigh(requested, currentLow int) int {
	return max(r.Clamp(requested), currentLow)
}

// WithLow returns r with the low handle moved to requested.
func (r Range) WithLow(requested int) Range {
	r.Low = r.SetLow(requested, r.High)
	return r
}

// WithHigh returns r with the high handle moved to requested.
func (r Range) WithHigh(requested int) Range {
	r.High = r.SetHigh(requested, r.Low)
	return r
}

// Contains reports whether v lies between the handles, inclusive.
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

// LowPercent and HighPercent place the handles on a track.
func (r Range) LowPercent() float64  { return PercentageOf(r.Low, r.Min, r.Max) }
func (r Range) HighPercent() float64 { return PercentageOf(r.High, r.Min, r.Max) }

// PercentageOf returns where value sits between min and max, as 0-100.
// A degenerate range (max <= min) reports 0.
func PercentageOf(value, min, max int) float64 {
	if max <= min {
		return 0
	}
	return float64(value-min) / float64(max-min) * 100
}
