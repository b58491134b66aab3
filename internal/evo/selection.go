package evo

import "math/rand"

// Selector produces the next generation from the current one in place and
// increments the population's generation counter.
type Selector interface {
	Name() string
	Apply(rng *rand.Rand, pop *Population)
}

// Elitism keeps the champion unchanged and pulls every other candidate
// halfway toward it, plus mutation noise. Fast convergence, at the cost of
// diversity; the rearrangement strategies exist to compensate.
type Elitism struct{}

func (Elitism) Name() string { return "elitism" }

func (Elitism) Apply(rng *rand.Rand, pop *Population) {
	bestIndex := pop.BestIndex()
	best := pop.values[bestIndex]

	for i, v := range pop.values {
		if i == bestIndex {
			continue
		}
		pop.values[i] = pop.mutate(rng, (v+best)/2)
	}
	pop.generation++
}

// Tournament keeps the champion at its index and fills every other slot with
// the mutated midpoint of two mini-tournament winners. Children are computed
// entirely from the pre-selection generation and committed at once.
type Tournament struct{}

func (Tournament) Name() string { return "tournament" }

func (Tournament) Apply(rng *rand.Rand, pop *Population) {
	bestIndex := pop.BestIndex()
	best := pop.values[bestIndex]

	next := make([]float64, len(pop.values))
	for i := range pop.values {
		if i == bestIndex {
			next[i] = best
			continue
		}
		parentA := pop.pickParent(rng)
		parentB := pop.pickParent(rng)
		next[i] = pop.mutate(rng, (parentA+parentB)/2)
	}

	copy(pop.values, next)
	pop.generation++
}

// pickParent draws two candidates uniformly with replacement and keeps the
// one with strictly lower fitness, ties to the first drawn.
func (p *Population) pickParent(rng *rand.Rand) float64 {
	a := p.values[rng.Intn(len(p.values))]
	b := p.values[rng.Intn(len(p.values))]
	if betterFitness(p.Fitness(b), p.Fitness(a)) {
		return b
	}
	return a
}
