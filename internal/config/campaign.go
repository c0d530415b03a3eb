package config

import (
	"errors"
	"fmt"
)

type CampaignConfig struct {
	Note   string     `yaml:"note"`
	Phases []PhaseDef `yaml:"phases"`
}

type PhaseDef struct {
	Name     string       `yaml:"name"`
	Note     string       `yaml:"note"`
	Modifier *ModifierDef `yaml:"modifier"`
}

// ModifierDef scales one side's firepower before the phase is resolved.
// A nil Chance means the run's logistics success rate applies.
type ModifierDef struct {
	Side   string   `yaml:"side"`
	Factor float64  `yaml:"factor"`
	Chance *float64 `yaml:"chance"`
	Note   string   `yaml:"note"`
}

func (c *CampaignConfig) Validate() error {
	if len(c.Phases) == 0 {
		return errors.New("campaign: no phases")
	}
	var errs []error
	for i, p := range c.Phases {
		if p.Modifier == nil {
			continue
		}
		m := p.Modifier
		if m.Side != "a" && m.Side != "b" {
			errs = append(errs, fmt.Errorf("phases[%d] %q: modifier side %q must be \"a\" or \"b\"", i, p.Name, m.Side))
		}
		if !(m.Factor >= 0) {
			errs = append(errs, fmt.Errorf("phases[%d] %q: modifier factor %v is negative", i, p.Name, m.Factor))
		}
		if m.Chance != nil && !(*m.Chance >= 0 && *m.Chance <= 1) {
			errs = append(errs, fmt.Errorf("phases[%d] %q: modifier chance %v outside [0, 1]", i, p.Name, *m.Chance))
		}
	}
	return errors.Join(errs...)
}

// DefaultCampaign is breakthrough, exploitation with a logistics-dependent
// firepower boost for side A, then the decisive engagement.
func DefaultCampaign() *CampaignConfig {
	return &CampaignConfig{
		Note: "breakthrough, exploitation, decisive engagement",
		Phases: []PhaseDef{
			{Name: "breakthrough"},
			{
				Name:     "exploitation",
				Modifier: &ModifierDef{Side: "a", Factor: 1.1, Note: "logistics delivered"},
			},
			{Name: "decisive engagement"},
		},
	}
}
