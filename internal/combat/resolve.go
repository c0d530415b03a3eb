package combat

import (
	"math"
	"math/rand"

	"opsim/internal/util"
)

const (
	minExposure = 0.01
	maxExposure = 0.05
	// lossScale is the multiplier base that a side's own average firepower
	// is subtracted from.
	lossScale = 1.1
	// moraleDamping divides the loss ratio before it hits morale.
	moraleDamping = 10.0
)

// PhaseResult records one resolved phase.
type PhaseResult struct {
	Name      string  `json:"name"`
	LossesA   int     `json:"losses_a"`
	LossesB   int     `json:"losses_b"`
	StrengthA float64 `json:"strength_a"`
	StrengthB float64 `json:"strength_b"`
}

// Resolve fights one round between a and b and mutates both in place.
//
// Each side first produces a base loss volume from its exposed (low morale)
// strength. The losses a side takes are the opponent's volume scaled by
// 1.1 minus the side's own average firepower, floored to an integer and
// clamped at zero. Losses are spread over a side's units in proportion to
// their strength, then morale falls with the loss ratio.
//
// Draws happen in unit order, side a before side b, one per unit.
func Resolve(rng *rand.Rand, a, b *Force) (lossesA, lossesB int) {
	baseA := baseLossVolume(rng, a)
	baseB := baseLossVolume(rng, b)

	lossesA = inflicted(baseB, a.AvgFirepower())
	lossesB = inflicted(baseA, b.AvgFirepower())

	distributeLosses(a, lossesA)
	distributeLosses(b, lossesB)

	updateMorale(a, lossesA)
	updateMorale(b, lossesB)
	return lossesA, lossesB
}

// ResolvePhase is Resolve plus the post-phase strengths.
func ResolvePhase(rng *rand.Rand, name string, a, b *Force) PhaseResult {
	la, lb := Resolve(rng, a, b)
	return PhaseResult{
		Name:      name,
		LossesA:   la,
		LossesB:   lb,
		StrengthA: a.TotalStrength(),
		StrengthB: b.TotalStrength(),
	}
}

func baseLossVolume(rng *rand.Rand, f *Force) float64 {
	volume := 0.0
	for _, u := range f.Units {
		volume += u.Strength * (1 - u.Morale) * util.Uniform(rng, minExposure, maxExposure)
	}
	return volume
}

func inflicted(opponentVolume, ownFirepower float64) int {
	v := math.Floor(opponentVolume * (lossScale - ownFirepower))
	if v <= 0 {
		return 0
	}
	return int(v)
}

func distributeLosses(f *Force, losses int) {
	if losses <= 0 {
		return
	}
	total := f.TotalStrength()
	if total == 0 {
		total = 1.0
	}
	for _, u := range f.Units {
		share := float64(losses) * (u.Strength / total)
		u.Strength = max(0, u.Strength-share)
	}
}

// updateMorale uses the strength left after casualties as the denominator.
func updateMorale(f *Force, losses int) {
	total := f.TotalStrength()
	if total == 0 {
		total = 1.0
	}
	ratio := (float64(losses) / total) / moraleDamping
	for _, u := range f.Units {
		u.Morale = max(MoraleFloor, u.Morale*(1-ratio))
	}
}
