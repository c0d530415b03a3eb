package combat

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"opsim/internal/config"
)

const (
	SideA = "a"
	SideB = "b"
)

// Modifier scales one side's firepower before a phase. With UseLogistics
// set, the chance is the run's logistics success rate instead of Chance.
type Modifier struct {
	Side         string
	Factor       float64
	Chance       float64
	UseLogistics bool
	Note         string
}

type PhaseSpec struct {
	Name     string
	Modifier *Modifier
}

// Campaign is the fixed phase sequence every trial runs. No phase is
// skipped, even once a side has no strength left.
type Campaign struct {
	Phases []PhaseSpec
}

// DefaultCampaign is breakthrough, exploitation and decisive engagement,
// with side A's firepower raised by 10% before exploitation when logistics
// succeed.
func DefaultCampaign() Campaign {
	c, err := CampaignFromConfig(config.DefaultCampaign())
	if err != nil {
		panic(err)
	}
	return c
}

func CampaignFromConfig(cc *config.CampaignConfig) (Campaign, error) {
	if cc == nil {
		return DefaultCampaign(), nil
	}
	if err := cc.Validate(); err != nil {
		return Campaign{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	c := Campaign{Phases: make([]PhaseSpec, len(cc.Phases))}
	for i, p := range cc.Phases {
		c.Phases[i].Name = p.Name
		if p.Modifier == nil {
			continue
		}
		m := &Modifier{Side: p.Modifier.Side, Factor: p.Modifier.Factor, Note: p.Modifier.Note}
		if p.Modifier.Chance == nil {
			m.UseLogistics = true
		} else {
			m.Chance = *p.Modifier.Chance
		}
		c.Phases[i].Modifier = m
	}
	return c, nil
}

func (c Campaign) validate() error {
	if len(c.Phases) == 0 {
		return fmt.Errorf("%w: campaign has no phases", ErrInvalidParameter)
	}
	for i, p := range c.Phases {
		m := p.Modifier
		if m == nil {
			continue
		}
		if m.Side != SideA && m.Side != SideB {
			return fmt.Errorf("%w: phase %d modifier side %q", ErrInvalidParameter, i, m.Side)
		}
		if !(m.Factor >= 0) {
			return fmt.Errorf("%w: phase %d modifier factor %v is negative", ErrInvalidParameter, i, m.Factor)
		}
		if !m.UseLogistics && !inUnitRange(m.Chance) {
			return fmt.Errorf("%w: phase %d modifier chance %v outside [0, 1]", ErrInvalidParameter, i, m.Chance)
		}
	}
	return nil
}

// Trace is a fully recorded trial.
type Trace struct {
	TrialResult
	Phases []PhaseResult `json:"phases"`
	Events []Event       `json:"events,omitempty"`
}

// inUnitRange is false for NaN.
func inUnitRange(p float64) bool { return p >= 0 && p <= 1 }

func validateRate(rate float64) error {
	if !inUnitRange(rate) {
		return fmt.Errorf("%w: logistics success rate %v outside [0, 1]", ErrInvalidParameter, rate)
	}
	return nil
}

func newForces(factory ScenarioFactory) (*Force, *Force, error) {
	if factory == nil {
		return nil, nil, fmt.Errorf("%w: no scenario factory", ErrInvalidScenario)
	}
	a, b := factory()
	if err := a.validate(SideA); err != nil {
		return nil, nil, err
	}
	if err := b.validate(SideB); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// RunTrial runs the default three-phase campaign once on a fresh pair of
// forces and returns each side's remaining strength.
func RunTrial(rng *rand.Rand, factory ScenarioFactory, logisticsRate float64) (finalA, finalB float64, err error) {
	tr, err := RunCampaign(rng, factory, DefaultCampaign(), logisticsRate, false)
	if err != nil {
		return 0, 0, err
	}
	return tr.FinalA, tr.FinalB, nil
}

// RunCampaign runs every phase of c once on a fresh pair of forces. With
// record set the returned trace carries the event log.
func RunCampaign(rng *rand.Rand, factory ScenarioFactory, c Campaign, logisticsRate float64, record bool) (Trace, error) {
	if err := validateRate(logisticsRate); err != nil {
		return Trace{}, err
	}
	if err := c.validate(); err != nil {
		return Trace{}, err
	}
	a, b, err := newForces(factory)
	if err != nil {
		return Trace{}, err
	}
	return runPhases(rng, a, b, c, logisticsRate, record), nil
}

func runPhases(rng *rand.Rand, a, b *Force, c Campaign, logisticsRate float64, record bool) Trace {
	var events []Event
	emit := func(ev Event) {
		if record {
			events = append(events, ev)
		}
	}
	phases := make([]PhaseResult, 0, len(c.Phases))

	for i, ph := range c.Phases {
		emit(Event{Phase: i, Type: "PhaseEnter", Payload: map[string]any{
			"name": ph.Name, "strength_a": a.TotalStrength(), "strength_b": b.TotalStrength(),
		}})
		if m := ph.Modifier; m != nil {
			chance := m.Chance
			if m.UseLogistics {
				chance = logisticsRate
			}
			if rng.Float64() < chance {
				target := a
				if m.Side == SideB {
					target = b
				}
				target.BoostFirepower(m.Factor)
				emit(Event{Phase: i, Type: "Modifier", Payload: map[string]any{
					"side": m.Side, "factor": m.Factor, "note": m.Note, "avg_firepower": target.AvgFirepower(),
				}})
			}
		}
		pr := ResolvePhase(rng, ph.Name, a, b)
		phases = append(phases, pr)
		emit(Event{Phase: i, Type: "Casualties", Payload: map[string]any{
			"losses_a": pr.LossesA, "losses_b": pr.LossesB,
			"strength_a": pr.StrengthA, "strength_b": pr.StrengthB,
		}})
	}

	return Trace{
		TrialResult: TrialResult{FinalA: a.TotalStrength(), FinalB: b.TotalStrength()},
		Phases:      phases,
		Events:      events,
	}
}

func MarshalPretty(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
