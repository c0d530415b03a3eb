package combat

import "fmt"

// Force is one side of the engagement. A Force is owned by a single trial
// and its units are mutated in place as phases resolve.
type Force struct {
	Name  string
	Units []*Unit
}

// NewForce copies units into a fresh Force.
func NewForce(name string, units []Unit) *Force {
	f := &Force{Name: name, Units: make([]*Unit, len(units))}
	for i := range units {
		u := units[i]
		f.Units[i] = &u
	}
	return f
}

func (f *Force) TotalStrength() float64 {
	total := 0.0
	for _, u := range f.Units {
		total += u.Strength
	}
	return total
}

// AvgFirepower averages over the unit count, treating an empty force as one
// unit.
func (f *Force) AvgFirepower() float64 {
	sum := 0.0
	for _, u := range f.Units {
		sum += u.Firepower
	}
	return sum / float64(max(1, len(f.Units)))
}

func (f *Force) BoostFirepower(factor float64) {
	for _, u := range f.Units {
		u.Firepower *= factor
	}
}

func (f *Force) Clone() *Force {
	units := make([]Unit, len(f.Units))
	for i, u := range f.Units {
		units[i] = *u
	}
	return NewForce(f.Name, units)
}

func (f *Force) validate(side string) error {
	if f == nil || len(f.Units) == 0 {
		return fmt.Errorf("%w: side %s has no units", ErrInvalidScenario, side)
	}
	for _, u := range f.Units {
		if u == nil {
			return fmt.Errorf("%w: side %s has a nil unit", ErrInvalidScenario, side)
		}
	}
	return nil
}
