package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundHalfUp rounds to the nearest integer with halves going towards
// positive infinity, so -2.5 becomes -2. Values beyond the int64 range
// saturate at its bounds so the sign is never lost.
func roundHalfUp(x float64) int64 {
	if !isFinite(x) {
		return 0
	}
	r := math.Floor(x + 0.5)
	switch {
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// roundTo rounds x to the given number of decimal places using decimal
// arithmetic on the shortest representation of x.
func roundTo(x float64, places int32) float64 {
	if !isFinite(x) {
		return 0
	}
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
