package evo

import (
	"math"
	"math/rand"
	"testing"
)

// maxMutationOffset bounds the mutation noise added to every child: the
// widest draw from the default mutation interval times the default rate.
const maxMutationOffset = 10 * DefaultMutationRate

func TestElitismKeepsChampionInPlace(t *testing.T) {
	pop := newTestPopulation(t, []float64{5, 1, 9})
	rng := rand.New(rand.NewSource(3))

	Elitism{}.Apply(rng, pop)

	values := pop.Values()
	if values[1] != 1 {
		t.Fatalf("champion must survive unchanged at its index, got %v", values[1])
	}
	if pop.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", pop.Generation())
	}
}

func TestElitismPullsOthersTowardChampion(t *testing.T) {
	pop := newTestPopulation(t, []float64{5, 1, 9})
	rng := rand.New(rand.NewSource(3))

	Elitism{}.Apply(rng, pop)

	values := pop.Values()
	wantMid := []float64{(5.0 + 1.0) / 2, 1, (9.0 + 1.0) / 2}
	for i, v := range values {
		if math.Abs(v-wantMid[i]) > maxMutationOffset {
			t.Fatalf("value %d should be the champion midpoint plus noise: got %v, want near %v", i, v, wantMid[i])
		}
	}
}

func TestTournamentKeepsChampionInPlace(t *testing.T) {
	pop := newTestPopulation(t, []float64{4, 2, 8})
	rng := rand.New(rand.NewSource(11))

	Tournament{}.Apply(rng, pop)

	values := pop.Values()
	if values[1] != 2 {
		t.Fatalf("champion must survive unchanged at its index, got %v", values[1])
	}
	if pop.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", pop.Generation())
	}
}

func TestTournamentChildrenComeFromPreSelectionParents(t *testing.T) {
	parents := []float64{4, 2, 8}
	pop := newTestPopulation(t, parents)
	rng := rand.New(rand.NewSource(11))

	Tournament{}.Apply(rng, pop)

	for i, v := range pop.Values() {
		if i == 1 {
			continue
		}
		if !nearAnyMidpoint(v, parents) {
			t.Fatalf("value %d is not a mutated midpoint of two parents: %v", i, v)
		}
	}
}

func nearAnyMidpoint(v float64, parents []float64) bool {
	for _, a := range parents {
		for _, b := range parents {
			if math.Abs(v-(a+b)/2) <= maxMutationOffset {
				return true
			}
		}
	}
	return false
}

func TestSelectionKeepsPopulationSize(t *testing.T) {
	for _, selector := range []Selector{Elitism{}, Tournament{}} {
		pop := newTestPopulation(t, []float64{4, 2, 8, -6})
		rng := rand.New(rand.NewSource(1))
		for g := 0; g < 10; g++ {
			selector.Apply(rng, pop)
			if pop.Size() != 4 {
				t.Fatalf("%s: size changed to %d at generation %d", selector.Name(), pop.Size(), g+1)
			}
		}
	}
}

func TestSelectionWithSingleCandidate(t *testing.T) {
	for _, selector := range []Selector{Elitism{}, Tournament{}} {
		pop := newTestPopulation(t, []float64{42})
		rng := rand.New(rand.NewSource(1))

		selector.Apply(rng, pop)

		if got := pop.Values()[0]; got != 42 {
			t.Fatalf("%s: sole candidate is the champion and must survive, got %v", selector.Name(), got)
		}
		if pop.Generation() != 1 {
			t.Fatalf("%s: expected generation 1, got %d", selector.Name(), pop.Generation())
		}
	}
}

func TestPickParentFavorsLowerFitness(t *testing.T) {
	pop := newTestPopulation(t, []float64{1, 100})
	rng := rand.New(rand.NewSource(5))

	picksOfBest := 0
	const draws = 1000
	for i := 0; i < draws; i++ {
		if pop.pickParent(rng) == 1 {
			picksOfBest++
		}
	}

	// Both draws land on the weak candidate a quarter of the time, so the
	// strong one should win about 750 of 1000 tournaments.
	if picksOfBest < 650 {
		t.Fatalf("expected the fitter parent to dominate, won %d/%d", picksOfBest, draws)
	}
}
