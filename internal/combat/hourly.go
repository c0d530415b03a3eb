package combat

import (
	"fmt"
	"math/rand"

	"opsim/internal/util"
)

// HourlyConfig drives the continuous attrition model: each hour a side
// loses a fixed fraction of what it has left, jittered by U(0.5, 1.5).
type HourlyConfig struct {
	ForceA int
	ForceB int
	RateA  float64
	RateB  float64
	Hours  int
}

func DefaultHourly() HourlyConfig {
	return HourlyConfig{ForceA: 1000, ForceB: 1200, RateA: 0.05, RateB: 0.07, Hours: 50}
}

type HourlyResult struct {
	LossesA []int `json:"losses_a"`
	LossesB []int `json:"losses_b"`
	FinalA  int   `json:"final_a"`
	FinalB  int   `json:"final_b"`
}

// Hours is the number of hours actually fought.
func (r HourlyResult) Hours() int { return len(r.LossesA) }

// Cumulative returns the running loss totals of both sides.
func (r HourlyResult) Cumulative() (a, b []int) {
	return cumsum(r.LossesA), cumsum(r.LossesB)
}

func cumsum(xs []int) []int {
	out := make([]int, len(xs))
	total := 0
	for i, x := range xs {
		total += x
		out[i] = total
	}
	return out
}

// RunHourly fights hour by hour and stops after cfg.Hours or as soon as
// either side is destroyed. Losses never exceed what a side has left.
func RunHourly(rng *rand.Rand, cfg HourlyConfig) (HourlyResult, error) {
	if cfg.Hours <= 0 {
		return HourlyResult{}, fmt.Errorf("%w: hours %d must be positive", ErrInvalidParameter, cfg.Hours)
	}
	if cfg.ForceA < 0 || cfg.ForceB < 0 {
		return HourlyResult{}, fmt.Errorf("%w: starting forces %d/%d must not be negative", ErrInvalidParameter, cfg.ForceA, cfg.ForceB)
	}
	if !(cfg.RateA >= 0 && cfg.RateB >= 0) {
		return HourlyResult{}, fmt.Errorf("%w: loss rates %v/%v must not be negative", ErrInvalidParameter, cfg.RateA, cfg.RateB)
	}

	res := HourlyResult{
		LossesA: make([]int, 0, cfg.Hours),
		LossesB: make([]int, 0, cfg.Hours),
	}
	forceA, forceB := cfg.ForceA, cfg.ForceB
	for h := 0; h < cfg.Hours; h++ {
		lostA := min(forceA, int(float64(forceA)*cfg.RateA*util.Uniform(rng, 0.5, 1.5)))
		lostB := min(forceB, int(float64(forceB)*cfg.RateB*util.Uniform(rng, 0.5, 1.5)))
		forceA -= lostA
		forceB -= lostB
		res.LossesA = append(res.LossesA, lostA)
		res.LossesB = append(res.LossesB, lostB)
		if forceA <= 0 || forceB <= 0 {
			break
		}
	}
	res.FinalA, res.FinalB = forceA, forceB
	return res, nil
}
