package config

import (
	"errors"
	"fmt"
)

type ScenarioConfig struct {
	ID    string     `yaml:"id"`
	Note  string     `yaml:"note"`
	SideA SideConfig `yaml:"side_a"`
	SideB SideConfig `yaml:"side_b"`
}

type SideConfig struct {
	Name  string    `yaml:"name"`
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	Name      string  `yaml:"name"`
	Strength  float64 `yaml:"strength"`
	Morale    float64 `yaml:"morale"`
	Firepower float64 `yaml:"firepower"`
}

// Validate checks both rosters. Every problem found is reported.
func (c *ScenarioConfig) Validate() error {
	return errors.Join(c.SideA.validate("side_a"), c.SideB.validate("side_b"))
}

func (s SideConfig) validate(key string) error {
	if len(s.Units) == 0 {
		return fmt.Errorf("%s: no units", key)
	}
	var errs []error
	for i, u := range s.Units {
		if !(u.Strength >= 0) {
			errs = append(errs, fmt.Errorf("%s.units[%d] %q: strength %v is negative", key, i, u.Name, u.Strength))
		}
		if !(u.Morale >= 0.2 && u.Morale <= 1.0) {
			errs = append(errs, fmt.Errorf("%s.units[%d] %q: morale %v outside [0.2, 1.0]", key, i, u.Name, u.Morale))
		}
		if !(u.Firepower >= 0) {
			errs = append(errs, fmt.Errorf("%s.units[%d] %q: firepower %v is negative", key, i, u.Name, u.Firepower))
		}
	}
	return errors.Join(errs...)
}

func (s SideConfig) TotalStrength() float64 {
	total := 0.0
	for _, u := range s.Units {
		total += u.Strength
	}
	return total
}

// Baseline is the reference offensive: three attacking formations against
// a prepared defence and its reserve.
func Baseline() *ScenarioConfig {
	return &ScenarioConfig{
		ID:   "baseline",
		Note: "three-phase offensive against a prepared defence",
		SideA: SideConfig{
			Name: "Ukr",
			Units: []UnitDef{
				{Name: "Ukr_Mech_1", Strength: 1500, Morale: 0.9, Firepower: 0.8},
				{Name: "Ukr_Tank_2", Strength: 1200, Morale: 0.9, Firepower: 1.2},
				{Name: "Ukr_Inf_3", Strength: 1000, Morale: 0.8, Firepower: 0.6},
			},
		},
		SideB: SideConfig{
			Name: "Rus",
			Units: []UnitDef{
				{Name: "Rus_Defense_1", Strength: 2000, Morale: 0.8, Firepower: 0.9},
				{Name: "Rus_Reserve_2", Strength: 1500, Morale: 0.7, Firepower: 1.1},
			},
		},
	}
}
