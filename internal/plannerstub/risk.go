package plannerstub

import (
	"math"

	"github.com/Garsondee/battlepath/internal/model"
)

const (
	riskDecay  = 0.9
	riskMax    = 10.0
	weightSafe = 4.0
	weightFast = 0.8
)

// computeRisk sums every threat's contribution per cell: riskMax inside the
// threat's Manhattan radius and an exponential falloff outside it.
func computeRisk(rows, cols int, threats []model.Threat) model.RiskField {
	risk := make(model.RiskField, rows)
	for r := range risk {
		risk[r] = make([]float64, cols)
	}
	for _, t := range threats {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				d := float64(abs(r-t.Row) + abs(c-t.Col))
				if d <= t.Radius {
					risk[r][c] += riskMax
				} else {
					risk[r][c] += riskMax * math.Pow(riskDecay, d-t.Radius)
				}
			}
		}
	}
	return risk
}

func riskWeight(mode string) float64 {
	if mode == "SAFEST" {
		return weightSafe
	}
	return weightFast
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
