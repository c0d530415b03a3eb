// Package opsim wires configuration, logging and reporting around the
// attrition engine for the command line.
package opsim

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"opsim/internal/combat"
	"opsim/internal/config"
	"opsim/internal/report"
	"opsim/internal/util"
)

const (
	ModeCampaign = "campaign"
	ModeHourly   = "hourly"
)

// Config holds opsim command configuration.
type Config struct {
	Mode          string  `env:"OPSIM_MODE"           envDefault:"campaign"`
	Trials        int     `env:"OPSIM_TRIALS"         envDefault:"1000"`
	LogisticsRate float64 `env:"OPSIM_LOGISTICS_RATE" envDefault:"0.8"`
	Seed          int64   `env:"OPSIM_SEED"`
	Workers       int     `env:"OPSIM_WORKERS"        envDefault:"1"`
	ScenarioDir   string  `env:"OPSIM_SCENARIO_DIR"`
	Out           string  `env:"OPSIM_OUT"`
	Bins          int     `env:"OPSIM_BINS"           envDefault:"50"`
	Trace         bool    `env:"OPSIM_TRACE"`
	Hours         int     `env:"OPSIM_HOURS"          envDefault:"50"`
	Verbose       bool    `env:"OPSIM_VERBOSE"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "campaign (phased Monte Carlo) or hourly (attrition until destroyed)")
	fs.IntVar(&cfg.Trials, "n", cfg.Trials, "number of trials")
	fs.Float64Var(&cfg.LogisticsRate, "logistics", cfg.LogisticsRate, "logistics success rate in [0,1]")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed (0 draws a random one)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers")
	fs.StringVar(&cfg.ScenarioDir, "config", cfg.ScenarioDir, "directory with scenario.yaml and campaign.yaml (baseline roster when empty)")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "write the JSON document to this file")
	fs.IntVar(&cfg.Bins, "bins", cfg.Bins, "advantage histogram bins in the JSON document")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "record the event log of one trial")
	fs.IntVar(&cfg.Hours, "hours", cfg.Hours, "hour limit in hourly mode")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Mode != ModeCampaign && cfg.Mode != ModeHourly {
		return Config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	return cfg, nil
}

func newLogger(errOut io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(errOut), level)
	return zap.New(core)
}

// Run executes one opsim invocation: the text report goes to out, logs to
// errOut.
func Run(cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	log := newLogger(errOut, cfg.Verbose)
	defer func() { _ = log.Sync() }()

	var seed *int64
	if cfg.Seed != 0 {
		seed = &cfg.Seed
	}

	if cfg.Mode == ModeHourly {
		return runHourly(cfg, seed, out, log)
	}
	return runCampaign(cfg, seed, out, log)
}

func runCampaign(cfg Config, seed *int64, out io.Writer, log *zap.Logger) error {
	sc, cc := config.Baseline(), config.DefaultCampaign()
	if cfg.ScenarioDir != "" {
		var err error
		sc, cc, err = config.LoadAll(cfg.ScenarioDir)
		if err != nil {
			return err
		}
		log.Info("scenario loaded", zap.String("dir", cfg.ScenarioDir), zap.String("id", sc.ID),
			zap.Int("units_a", len(sc.SideA.Units)), zap.Int("units_b", len(sc.SideB.Units)))
	}
	factory, err := combat.FactoryFromConfig(sc)
	if err != nil {
		return err
	}
	campaign, err := combat.CampaignFromConfig(cc)
	if err != nil {
		return err
	}

	summary, err := combat.Simulate(combat.Options{
		Trials:        cfg.Trials,
		LogisticsRate: cfg.LogisticsRate,
		Seed:          seed,
		Factory:       factory,
		Campaign:      &campaign,
		Workers:       cfg.Workers,
		KeepTrials:    cfg.Out != "",
		Logger:        log,
	})
	if err != nil {
		return err
	}
	if err := report.WriteText(out, summary); err != nil {
		return err
	}
	log.Info("simulation finished", zap.Int("trials", summary.Trials), zap.Int64("seed", summary.Seed))

	if cfg.Out == "" {
		if cfg.Trace {
			log.Warn("trace requested without -out, skipping")
		}
		return nil
	}
	doc := report.Document{Summary: summary}
	hist := report.NewHistogram(summary.Advantages(), cfg.Bins)
	doc.Advantage = &hist
	doc.Summary.Results = nil
	if cfg.Trace {
		// Trial 0 is seeded with the run seed itself, so this replays it.
		tr, err := combat.RunCampaign(util.New(summary.Seed), factory, campaign, cfg.LogisticsRate, true)
		if err != nil {
			return err
		}
		doc.Trace = &tr
	}
	return writeJSON(cfg.Out, doc, log)
}

func runHourly(cfg Config, seed *int64, out io.Writer, log *zap.Logger) error {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		var err error
		if s, err = util.NewSeed(); err != nil {
			return err
		}
	}
	hc := combat.DefaultHourly()
	hc.Hours = cfg.Hours
	res, err := combat.RunHourly(util.New(s), hc)
	if err != nil {
		return err
	}
	if err := report.WriteHourly(out, res); err != nil {
		return err
	}
	log.Info("hourly attrition finished", zap.Int("hours", res.Hours()), zap.Int64("seed", s))
	if cfg.Out == "" {
		return nil
	}
	return writeJSON(cfg.Out, res, log)
}

func writeJSON(path string, v any, log *zap.Logger) error {
	if path == "" {
		return errors.New("output path is required")
	}
	b, err := combat.MarshalPretty(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("document written", zap.String("path", path))
	return nil
}
