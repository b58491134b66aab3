package evo

import (
	"fmt"
	"math"
	"math/rand"

	"evoroot/internal/objective"
)

const (
	DefaultPopulationSize   = 100
	DefaultMutationRate     = 0.001
	DefaultFitnessTolerance = 1e-4
	DefaultMaxGenerations   = 100_000
	DefaultStagnationDelta  = 1e-8
	DefaultStagnationLimit  = 5
)

var (
	DefaultSpawnInterval    = Interval{Low: -100, High: 100}
	DefaultMutationInterval = Interval{Low: -10, High: 10}
)

// Config holds everything a run needs. Zero fields fall back to the package
// defaults; Objective and Selector are required.
type Config struct {
	Objective  objective.Function
	Selector   Selector
	Rearranger Rearranger

	PopulationSize   int
	SpawnInterval    Interval
	MutationInterval Interval
	MutationRate     float64
	FitnessTolerance float64
	MaxGenerations   int

	Seed         int64
	RecordSeries bool
}

// Population is a fixed-size ordered collection of candidate values plus the
// run state the loop and the rearrangement strategies need. Indices are
// positional only; every generation overwrites them wholesale.
type Population struct {
	cfg Config
	rng *rand.Rand

	values []float64
	spawn  Interval // current spawn interval; only Genocide rescales it

	generation int

	currentBest     float64
	previousBest    float64
	hasCurrentBest  bool
	hasPreviousBest bool

	globalBest    float64
	hasGlobalBest bool
}

// NewPopulation validates cfg, applies defaults, and draws the initial
// generation uniformly from the spawn interval.
func NewPopulation(cfg Config) (*Population, error) {
	if cfg.Objective == nil {
		return nil, fmt.Errorf("objective function is required")
	}
	if cfg.Selector == nil {
		return nil, fmt.Errorf("selector is required")
	}
	if cfg.Rearranger == nil {
		cfg.Rearranger = NoRearrangement{}
	}
	if cfg.PopulationSize == 0 {
		cfg.PopulationSize = DefaultPopulationSize
	}
	if cfg.PopulationSize < 0 {
		return nil, fmt.Errorf("population size must be > 0: %d", cfg.PopulationSize)
	}
	if cfg.SpawnInterval == (Interval{}) {
		cfg.SpawnInterval = DefaultSpawnInterval
	}
	if err := cfg.SpawnInterval.Validate(); err != nil {
		return nil, fmt.Errorf("spawn interval: %w", err)
	}
	if cfg.MutationInterval == (Interval{}) {
		cfg.MutationInterval = DefaultMutationInterval
	}
	if err := cfg.MutationInterval.Validate(); err != nil {
		return nil, fmt.Errorf("mutation interval: %w", err)
	}
	if cfg.MutationRate == 0 {
		cfg.MutationRate = DefaultMutationRate
	}
	if cfg.MutationRate < 0 {
		return nil, fmt.Errorf("mutation rate must be > 0: %v", cfg.MutationRate)
	}
	if cfg.FitnessTolerance == 0 {
		cfg.FitnessTolerance = DefaultFitnessTolerance
	}
	if cfg.FitnessTolerance < 0 {
		return nil, fmt.Errorf("fitness tolerance must be > 0: %v", cfg.FitnessTolerance)
	}
	if cfg.MaxGenerations == 0 {
		cfg.MaxGenerations = DefaultMaxGenerations
	}
	if cfg.MaxGenerations < 0 {
		return nil, fmt.Errorf("max generations must be > 0: %d", cfg.MaxGenerations)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	values := make([]float64, cfg.PopulationSize)
	for i := range values {
		values[i] = cfg.SpawnInterval.Sample(rng)
	}

	return &Population{
		cfg:    cfg,
		rng:    rng,
		values: values,
		spawn:  cfg.SpawnInterval,
	}, nil
}

func (p *Population) Size() int { return len(p.values) }

// Generation is the number of completed selection passes.
func (p *Population) Generation() int { return p.generation }

// Values returns a copy of the current generation.
func (p *Population) Values() []float64 {
	return append([]float64(nil), p.values...)
}

// SpawnInterval is the interval replacements are currently drawn from.
func (p *Population) SpawnInterval() Interval { return p.spawn }

// GlobalBest returns the best candidate seen across the whole run, if any
// generation has been evaluated yet.
func (p *Population) GlobalBest() (float64, bool) {
	return p.globalBest, p.hasGlobalBest
}

// Fitness is the unsigned objective value of a candidate.
func (p *Population) Fitness(x float64) float64 {
	return math.Abs(p.cfg.Objective.Eval(x))
}

// BestIndex returns the index of the lowest-fitness candidate, first
// occurrence on ties. Panics on an empty population.
func (p *Population) BestIndex() int {
	if len(p.values) == 0 {
		panic("evo: best lookup on empty population")
	}
	index := 0
	best := p.Fitness(p.values[0])
	for i, v := range p.values {
		if current := p.Fitness(v); betterFitness(current, best) {
			best = current
			index = i
		}
	}
	return index
}

// WorstIndex returns the index of the highest-fitness candidate, first
// occurrence on ties. Panics on an empty population.
func (p *Population) WorstIndex() int {
	if len(p.values) == 0 {
		panic("evo: worst lookup on empty population")
	}
	index := 0
	worst := p.Fitness(p.values[0])
	for i, v := range p.values {
		if current := p.Fitness(v); worseFitness(current, worst) {
			worst = current
			index = i
		}
	}
	return index
}

// mutate perturbs x by a bounded random offset scaled by the mutation rate.
func (p *Population) mutate(rng *rand.Rand, x float64) float64 {
	return x + p.cfg.MutationInterval.Sample(rng)*p.cfg.MutationRate
}
