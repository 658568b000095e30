package model

import "math"

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ScaleRisk returns the min and max over the usable entries of field, or
// (0, 0) when the field is nil or holds none. Usable means finite and not
// negative; negative hazard values carry no meaning and are treated like
// missing data.
func ScaleRisk(field RiskField) (lo, hi float64) {
	found := false
	for _, row := range field {
		for _, v := range row {
			if !IsFinite(v) || v < 0 {
				continue
			}
			if !found {
				lo, hi = v, v
				found = true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if !found {
		return 0, 0
	}
	return lo, hi
}

// PositiveRiskMax returns the largest finite, strictly positive entry, or 1
// when there is none so callers can divide by it safely.
func PositiveRiskMax(field RiskField) float64 {
	hi := 0.0
	for _, row := range field {
		for _, v := range row {
			if IsFinite(v) && v > hi {
				hi = v
			}
		}
	}
	if hi <= 0 {
		return 1
	}
	return hi
}

// At returns the value at c and whether it exists.
func (f RiskField) At(c Cell) (float64, bool) {
	if c.Row < 0 || c.Row >= len(f) || c.Col < 0 || c.Col >= len(f[c.Row]) {
		return 0, false
	}
	return f[c.Row][c.Col], true
}
