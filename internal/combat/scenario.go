package combat

import (
	"fmt"

	"opsim/internal/config"
)

// ScenarioFactory returns a fresh, independent pair of forces. It is called
// once per trial and must never hand out units shared with an earlier call.
type ScenarioFactory func() (a, b *Force)

// FactoryFromConfig validates sc and returns a factory that rebuilds the
// rosters from it on every call.
func FactoryFromConfig(sc *config.ScenarioConfig) (ScenarioFactory, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: no scenario", ErrInvalidScenario)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	unitsA := unitsOf(sc.SideA)
	unitsB := unitsOf(sc.SideB)
	nameA, nameB := sideName(sc.SideA, "A"), sideName(sc.SideB, "B")
	return func() (*Force, *Force) {
		return NewForce(nameA, unitsA), NewForce(nameB, unitsB)
	}, nil
}

// BaselineFactory builds the reference rosters from config.Baseline.
func BaselineFactory() ScenarioFactory {
	f, err := FactoryFromConfig(config.Baseline())
	if err != nil {
		panic(err)
	}
	return f
}

func unitsOf(side config.SideConfig) []Unit {
	units := make([]Unit, len(side.Units))
	for i, u := range side.Units {
		units[i] = Unit{Name: u.Name, Strength: u.Strength, Morale: u.Morale, Firepower: u.Firepower}
	}
	return units
}

func sideName(side config.SideConfig, fallback string) string {
	if side.Name == "" {
		return fallback
	}
	return side.Name
}
