// Package doafit estimates the direction of arrival of an observed array
// response by searching the simulated response that matches it best.
//
// The search starts from a coarse Fibonacci grid over the allowed part of
// the sphere and then refines with a Mayfly metaheuristic in a normalised
// (azimuth, elevation) space. Candidates are scored with
// analysis.CompareFrames, so the observation may carry an arbitrary gain
// and a global delay.
package doafit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/algo-array/analysis"
	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/logging"
)

var (
	ErrInvalidConfig  = errors.New("doafit: invalid config")
	ErrUnknownVariant = errors.New("doafit: unknown mayfly variant")
	ErrNoObservation  = errors.New("doafit: empty observation")
)

var variants = []string{"ma", "desma", "olce", "eobbma", "gsasma", "mpma", "aoblmoa"}

// Variants lists the accepted Config.Variant names.
func Variants() []string { return slices.Clone(variants) }

// Config controls the search.
type Config struct {
	Variant    string
	Population int
	Iterations int
	// GridPoints is the size of the initial Fibonacci grid. Zero skips it.
	GridPoints int
	Seed       int64

	// Elevation bounds in radians.
	MinElevation float64
	MaxElevation float64
}

// DefaultConfig searches the whole sphere with DESMA, 10 mayflies and 40
// iterations after a 64 point grid.
func DefaultConfig() Config {
	return Config{
		Variant:      "desma",
		Population:   10,
		Iterations:   40,
		GridPoints:   64,
		Seed:         1,
		MinElevation: -math.Pi / 2,
		MaxElevation: math.Pi / 2,
	}
}

func (c Config) Validate() error {
	if !slices.Contains(variants, strings.ToLower(c.Variant)) {
		return fmt.Errorf("%w %q", ErrUnknownVariant, c.Variant)
	}
	switch {
	case c.Population < 2:
		return fmt.Errorf("%w: population must be at least 2, got %d", ErrInvalidConfig, c.Population)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	case c.GridPoints < 0:
		return fmt.Errorf("%w: grid points must not be negative, got %d", ErrInvalidConfig, c.GridPoints)
	case math.IsNaN(c.MinElevation) || math.IsNaN(c.MaxElevation):
		return fmt.Errorf("%w: elevation bounds must be finite", ErrInvalidConfig)
	case c.MinElevation < -math.Pi/2 || c.MaxElevation > math.Pi/2 || c.MinElevation > c.MaxElevation:
		return fmt.Errorf("%w: elevation bounds [%g, %g] outside [-pi/2, pi/2] or reversed",
			ErrInvalidConfig, c.MinElevation, c.MaxElevation)
	}
	return nil
}

// Result is the best direction found.
type Result struct {
	Direction   geom.Direction
	Metrics     analysis.Metrics
	Evaluations int
	// Stopped is set when the context ended the search early.
	Stopped bool
}

type search struct {
	ctx      context.Context
	observed [][]float64
	sim      Simulator
	cfg      Config

	best  Result
	found bool
}

func (s *search) evaluate(d geom.Direction) float64 {
	if s.ctx.Err() != nil {
		s.best.Stopped = true
		return s.best.Metrics.Score + 1
	}
	frame, err := s.sim.Simulate(d)
	s.best.Evaluations++
	if err != nil {
		logging.Debug("simulation failed", logging.Fields{"direction": d.String(), "error": err.Error()})
		return 2
	}
	m := analysis.CompareFrames(s.observed, frame)
	if !s.found || m.Score < s.best.Metrics.Score {
		s.found = true
		s.best.Direction = d
		s.best.Metrics = m
		logging.Debug("improved", logging.Fields{
			"eval":  s.best.Evaluations,
			"dir":   d.String(),
			"score": m.Score,
		})
	}
	return m.Score
}

func (s *search) fromNormalized(pos []float64) geom.Direction {
	x, y := 0.5, 0.5
	if len(pos) > 0 {
		x = clamp01(pos[0])
	}
	if len(pos) > 1 {
		y = clamp01(pos[1])
	}
	return geom.Direction{
		Azimuth:   -math.Pi + 2*math.Pi*x,
		Elevation: s.cfg.MinElevation + y*(s.cfg.MaxElevation-s.cfg.MinElevation),
	}
}

// Fit searches the direction whose simulated response is closest to
// observed, a [sample][mic] frame.
func Fit(ctx context.Context, observed [][]float64, sim Simulator, cfg Config) (*Result, error) {
	if len(observed) == 0 || len(observed[0]) == 0 {
		return nil, ErrNoObservation
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: nil simulator", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &search{ctx: ctx, observed: observed, sim: sim, cfg: cfg}

	if cfg.GridPoints > 0 {
		grid, err := geom.FibonacciSphere(cfg.GridPoints)
		if err != nil {
			return nil, err
		}
		for _, d := range grid {
			if d.Elevation < cfg.MinElevation || d.Elevation > cfg.MaxElevation {
				continue
			}
			s.evaluate(d)
		}
		logging.Info("grid search done", logging.Fields{
			"evals": s.best.Evaluations,
			"dir":   s.best.Direction.String(),
			"score": s.best.Metrics.Score,
		})
	}

	mcfg, err := newMayflyConfig(strings.ToLower(cfg.Variant), cfg.Population, 2, cfg.Iterations)
	if err != nil {
		return nil, err
	}
	mcfg.Rand = rand.New(rand.NewSource(cfg.Seed))
	mcfg.ObjectiveFunc = func(pos []float64) float64 {
		return s.evaluate(s.fromNormalized(pos))
	}
	if _, err := runMayfly(mcfg); err != nil {
		if !s.found {
			return nil, err
		}
		logging.Warn("mayfly refinement failed, keeping grid estimate", logging.Fields{"error": err.Error()})
	}

	if !s.found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("doafit: no candidate could be simulated")
	}
	res := s.best
	return &res, nil
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = max(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
