package evo

import (
	"math"
	"math/rand"
)

// Rearranger applies an optional diversity-maintenance step after selection
// each generation, operating on the freshly produced generation.
type Rearranger interface {
	Name() string
	Apply(rng *rand.Rand, pop *Population)
}

// NoRearrangement leaves the population to evolve under selection alone.
type NoRearrangement struct{}

func (NoRearrangement) Name() string { return "" }

func (NoRearrangement) Apply(*rand.Rand, *Population) {}

// Genocide re-spawns the whole population over a rescaled interval once the
// best fitness has stagnated for Limit consecutive generations. The reset is
// hard: no candidate survives and the best trackers are cleared.
type Genocide struct {
	Delta float64 // improvement below this counts as stagnant
	Limit int     // consecutive stagnant generations before the reset

	counter int
}

func (*Genocide) Name() string { return "genocide" }

func (g *Genocide) Apply(rng *rand.Rand, pop *Population) {
	delta := g.Delta
	if delta <= 0 {
		delta = DefaultStagnationDelta
	}
	limit := g.Limit
	if limit <= 0 {
		limit = DefaultStagnationLimit
	}

	if !pop.hasCurrentBest || !pop.hasPreviousBest {
		g.counter = 0
		return
	}
	if math.Abs(pop.currentBest-pop.previousBest) >= delta {
		g.counter = 0
		return
	}
	g.counter++
	if g.counter < limit {
		return
	}
	g.counter = 0

	m := 0.1 + rng.Float64()*1.9
	pop.spawn = pop.spawn.Scale(m)
	pop.hasCurrentBest = false
	pop.hasPreviousBest = false
	for i := range pop.values {
		pop.values[i] = pop.spawn.Sample(rng)
	}
}

// RandomPredation replaces the single worst candidate every generation with
// a fresh draw from the original spawn interval, regardless of any interval
// rescaling Genocide may have done.
type RandomPredation struct{}

func (RandomPredation) Name() string { return "random_predation" }

func (RandomPredation) Apply(rng *rand.Rand, pop *Population) {
	pop.values[pop.WorstIndex()] = pop.cfg.SpawnInterval.Sample(rng)
}
