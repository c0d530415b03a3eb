package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"opsim/internal/util"
)

// Options configures a Monte Carlo run.
type Options struct {
	Trials        int
	LogisticsRate float64
	// Seed makes the run reproducible. Nil draws a fresh seed, which is
	// reported back in Summary.Seed.
	Seed *int64
	// Factory defaults to BaselineFactory.
	Factory ScenarioFactory
	// Campaign defaults to DefaultCampaign.
	Campaign *Campaign
	// Workers defaults to 1. Results do not depend on it.
	Workers    int
	KeepTrials bool
	Logger     *zap.Logger
}

// Summary aggregates every trial of a run. It is not modified after
// Simulate returns.
type Summary struct {
	Trials         int           `json:"trials"`
	Seed           int64         `json:"seed"`
	LogisticsRate  float64       `json:"logistics_success_rate"`
	MeanA          float64       `json:"mean_side_a_strength"`
	MeanB          float64       `json:"mean_side_b_strength"`
	StdDevA        float64       `json:"stddev_side_a_strength"`
	StdDevB        float64       `json:"stddev_side_b_strength"`
	WinProbability float64       `json:"win_probability"`
	Results        []TrialResult `json:"results,omitempty"`
}

// Advantages returns finalA - finalB per trial. It is empty unless the run
// kept its trials.
func (s Summary) Advantages() []float64 {
	out := make([]float64, len(s.Results))
	for i, r := range s.Results {
		out[i] = r.Advantage()
	}
	return out
}

// Simulate runs opts.Trials independent trials and aggregates them. All
// inputs are checked before the first trial; on error no partial summary
// is returned.
func Simulate(opts Options) (Summary, error) {
	if opts.Trials <= 0 {
		return Summary{}, fmt.Errorf("%w: trial count %d must be positive", ErrInvalidParameter, opts.Trials)
	}
	if err := validateRate(opts.LogisticsRate); err != nil {
		return Summary{}, err
	}
	factory := opts.Factory
	if factory == nil {
		factory = BaselineFactory()
	}
	if _, _, err := newForces(factory); err != nil {
		return Summary{}, err
	}
	campaign := DefaultCampaign()
	if opts.Campaign != nil {
		campaign = *opts.Campaign
	}
	if err := campaign.validate(); err != nil {
		return Summary{}, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var seed int64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		s, err := util.NewSeed()
		if err != nil {
			return Summary{}, err
		}
		seed = s
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, opts.Trials)

	log.Debug("simulation start",
		zap.Int("trials", opts.Trials),
		zap.Float64("logistics_rate", opts.LogisticsRate),
		zap.Int64("seed", seed),
		zap.Int("workers", workers),
		zap.Int("phases", len(campaign.Phases)))

	results := make([]TrialResult, opts.Trials)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < opts.Trials; i += workers {
				a, b, err := newForces(factory)
				if err != nil {
					return fmt.Errorf("trial %d: %w", i, err)
				}
				rng := util.New(util.TrialSeed(seed, i))
				results[i] = runPhases(rng, a, b, campaign, opts.LogisticsRate, false).TrialResult
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := summarize(results)
	s.Seed = seed
	s.LogisticsRate = opts.LogisticsRate
	if opts.KeepTrials {
		s.Results = results
	}

	log.Debug("simulation done",
		zap.Float64("mean_a", s.MeanA),
		zap.Float64("mean_b", s.MeanB),
		zap.Float64("win_probability", s.WinProbability))
	return s, nil
}

func summarize(results []TrialResult) Summary {
	n := float64(len(results))
	var sumA, sumB float64
	wins := 0
	for _, r := range results {
		sumA += r.FinalA
		sumB += r.FinalB
		if r.FinalA > r.FinalB {
			wins++
		}
	}
	meanA, meanB := sumA/n, sumB/n

	var varA, varB float64
	for _, r := range results {
		varA += (r.FinalA - meanA) * (r.FinalA - meanA)
		varB += (r.FinalB - meanB) * (r.FinalB - meanB)
	}
	return Summary{
		Trials:         len(results),
		MeanA:          meanA,
		MeanB:          meanB,
		StdDevA:        math.Sqrt(varA / n),
		StdDevB:        math.Sqrt(varB / n),
		WinProbability: float64(wins) / n,
	}
}
