package combat

import (
	"errors"
	"math"
	"testing"

	"opsim/internal/config"
	"opsim/internal/util"
)

func countEvents(events []Event, typ string) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestRunTrialErrors(t *testing.T) {
	emptyA := func() (*Force, *Force) {
		_, b := BaselineFactory()()
		return &Force{Name: "empty"}, b
	}
	tests := []struct {
		name    string
		factory ScenarioFactory
		rate    float64
		wantErr error
	}{
		{name: "rate below zero", factory: BaselineFactory(), rate: -0.1, wantErr: ErrInvalidParameter},
		{name: "rate above one", factory: BaselineFactory(), rate: 1.01, wantErr: ErrInvalidParameter},
		{name: "rate NaN", factory: BaselineFactory(), rate: math.NaN(), wantErr: ErrInvalidParameter},
		{name: "nil factory", factory: nil, rate: 0.5, wantErr: ErrInvalidScenario},
		{name: "empty side", factory: emptyA, rate: 0.5, wantErr: ErrInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := RunTrial(util.New(1), tt.factory, tt.rate)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRunTrialAttrition(t *testing.T) {
	finalA, finalB, err := RunTrial(util.New(42), BaselineFactory(), 0.8)
	if err != nil {
		t.Fatalf("run trial: %v", err)
	}
	if finalA >= 3700 || finalB > 3500 {
		t.Fatalf("expected attrition, got %v/%v", finalA, finalB)
	}
	if finalA < 0 || finalB < 0 {
		t.Fatalf("expected non-negative strengths, got %v/%v", finalA, finalB)
	}

	tr, err := RunCampaign(util.New(42), BaselineFactory(), DefaultCampaign(), 0.8, false)
	if err != nil {
		t.Fatalf("run campaign: %v", err)
	}
	if tr.FinalA != finalA || tr.FinalB != finalB {
		t.Fatalf("expected RunTrial and RunCampaign to agree, got %v/%v and %v/%v", finalA, finalB, tr.FinalA, tr.FinalB)
	}
	if tr.Events != nil {
		t.Fatal("expected no events without recording")
	}
}

func TestRunCampaignTrace(t *testing.T) {
	tr, err := RunCampaign(util.New(3), BaselineFactory(), DefaultCampaign(), 1.0, true)
	if err != nil {
		t.Fatalf("run campaign: %v", err)
	}
	if len(tr.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(tr.Phases))
	}
	names := []string{"breakthrough", "exploitation", "decisive engagement"}
	for i, p := range tr.Phases {
		if p.Name != names[i] {
			t.Fatalf("phase %d: expected %q, got %q", i, names[i], p.Name)
		}
	}
	if got := countEvents(tr.Events, "PhaseEnter"); got != 3 {
		t.Fatalf("expected 3 PhaseEnter events, got %d", got)
	}
	if got := countEvents(tr.Events, "Casualties"); got != 3 {
		t.Fatalf("expected 3 Casualties events, got %d", got)
	}
	if got := countEvents(tr.Events, "Modifier"); got != 1 {
		t.Fatalf("expected the logistics boost to fire once, got %d", got)
	}
	last := tr.Phases[len(tr.Phases)-1]
	if last.StrengthA != tr.FinalA || last.StrengthB != tr.FinalB {
		t.Fatalf("expected last phase strengths to be final, got %+v vs %+v", last, tr.TrialResult)
	}

	tr, err = RunCampaign(util.New(3), BaselineFactory(), DefaultCampaign(), 0, true)
	if err != nil {
		t.Fatalf("run campaign: %v", err)
	}
	if got := countEvents(tr.Events, "Modifier"); got != 0 {
		t.Fatalf("expected no boost at rate 0, got %d", got)
	}
}

func TestRunTrialLogisticsBoost(t *testing.T) {
	base := BaselineFactory()
	want := make([]float64, 0, 3)
	a0, _ := base()
	for _, u := range a0.Units {
		want = append(want, u.Firepower)
	}

	tests := []struct {
		name   string
		rate   float64
		factor float64
	}{
		{name: "always", rate: 1.0, factor: 1.1},
		{name: "never", rate: 0.0, factor: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				var captured *Force
				factory := func() (*Force, *Force) {
					a, b := base()
					captured = a
					return a, b
				}
				if _, _, err := RunTrial(util.New(seed), factory, tt.rate); err != nil {
					t.Fatalf("run trial: %v", err)
				}
				for i, u := range captured.Units {
					if math.Abs(u.Firepower-want[i]*tt.factor) > 1e-12 {
						t.Fatalf("seed %d unit %s: expected firepower %v, got %v", seed, u.Name, want[i]*tt.factor, u.Firepower)
					}
				}
			}
		})
	}
}

func TestRunCampaignKeepsPhasesAfterWipeout(t *testing.T) {
	factory := func() (*Force, *Force) {
		a := NewForce("a", []Unit{{Name: "a1", Strength: 0, Morale: 0.6, Firepower: 0.7}})
		b := NewForce("b", []Unit{{Name: "b1", Strength: 800, Morale: 0.4, Firepower: 0.9}})
		return a, b
	}
	tr, err := RunCampaign(util.New(8), factory, DefaultCampaign(), 0.5, false)
	if err != nil {
		t.Fatalf("run campaign: %v", err)
	}
	if len(tr.Phases) != 3 {
		t.Fatalf("expected all 3 phases to run, got %d", len(tr.Phases))
	}
	if tr.FinalA != 0 {
		t.Fatalf("expected side a to stay at zero, got %v", tr.FinalA)
	}
	if tr.FinalB != 800 {
		t.Fatalf("expected side b untouched by an empty side, got %v", tr.FinalB)
	}
}

func TestCampaignFromConfig(t *testing.T) {
	always := 1.0
	cc := &config.CampaignConfig{Phases: []config.PhaseDef{
		{Name: "reinforce", Modifier: &config.ModifierDef{Side: "b", Factor: 2, Chance: &always}},
		{Name: "assault", Modifier: &config.ModifierDef{Side: "a", Factor: 1.5}},
	}}
	c, err := CampaignFromConfig(cc)
	if err != nil {
		t.Fatalf("campaign from config: %v", err)
	}
	if c.Phases[0].Modifier.UseLogistics || c.Phases[0].Modifier.Chance != 1 {
		t.Fatalf("expected fixed chance, got %+v", c.Phases[0].Modifier)
	}
	if !c.Phases[1].Modifier.UseLogistics {
		t.Fatalf("expected logistics chance, got %+v", c.Phases[1].Modifier)
	}

	var captured *Force
	factory := func() (*Force, *Force) {
		a, b := BaselineFactory()()
		captured = b
		return a, b
	}
	tr, err := RunCampaign(util.New(4), factory, c, 0, true)
	if err != nil {
		t.Fatalf("run campaign: %v", err)
	}
	if len(tr.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(tr.Phases))
	}
	if math.Abs(captured.Units[0].Firepower-1.8) > 1e-12 {
		t.Fatalf("expected side b firepower doubled, got %v", captured.Units[0].Firepower)
	}

	if _, err := CampaignFromConfig(&config.CampaignConfig{}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
	def, err := CampaignFromConfig(nil)
	if err != nil || len(def.Phases) != 3 {
		t.Fatalf("expected default campaign for nil config, got %+v, %v", def, err)
	}
}

func TestFactoryFromConfig(t *testing.T) {
	factory, err := FactoryFromConfig(config.Baseline())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	a1, b1 := factory()
	a2, b2 := factory()
	a1.Units[0].Strength = 0
	b1.Units[0].Morale = 0.2
	if a2.Units[0].Strength != 1500 || b2.Units[0].Morale != 0.8 {
		t.Fatal("expected each call to build independent forces")
	}
	if a1.Name != "Ukr" || b1.Name != "Rus" {
		t.Fatalf("unexpected side names %q/%q", a1.Name, b1.Name)
	}

	bad := config.Baseline()
	bad.SideA.Units = nil
	if _, err := FactoryFromConfig(bad); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("expected invalid scenario, got %v", err)
	}
	if _, err := FactoryFromConfig(nil); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("expected invalid scenario, got %v", err)
	}
}

func TestRunCampaignRejectsBadModifiers(t *testing.T) {
	tests := []struct {
		name string
		mod  Modifier
	}{
		{name: "negative factor", mod: Modifier{Side: SideA, Factor: -2, Chance: 1}},
		{name: "NaN factor", mod: Modifier{Side: SideB, Factor: math.NaN(), Chance: 1}},
		{name: "NaN chance", mod: Modifier{Side: SideA, Factor: 1.1, Chance: math.NaN()}},
		{name: "chance above one", mod: Modifier{Side: SideA, Factor: 1.1, Chance: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *Force
			factory := func() (*Force, *Force) {
				a, b := BaselineFactory()()
				captured = a
				return a, b
			}
			mod := tt.mod
			c := Campaign{Phases: []PhaseSpec{{Name: "p", Modifier: &mod}}}
			_, err := RunCampaign(util.New(1), factory, c, 0.5, false)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected invalid parameter, got %v", err)
			}
			if captured != nil {
				t.Fatal("expected validation before any force is built")
			}
		})
	}
}

func TestMarshalPrettyReportsErrors(t *testing.T) {
	if _, err := MarshalPretty(Summary{MeanA: math.NaN()}); err == nil {
		t.Fatal("expected an error for a NaN field")
	}
	b, err := MarshalPretty(TrialResult{FinalA: 1, FinalB: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("expected encoded bytes")
	}
}
