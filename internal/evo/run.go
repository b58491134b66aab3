package evo

import (
	"context"
	"time"
)

// StopReason says how a run ended.
type StopReason string

const (
	// StopReasonConverged means the global best fitness dropped below the
	// configured tolerance.
	StopReasonConverged StopReason = "converged"
	// StopReasonBudget means the generation budget ran out first.
	StopReasonBudget StopReason = "budget_exhausted"
)

// Series holds the per-generation data recorded for charting: the champion's
// fitness and the mean raw objective value across the population, plus the
// running maxima of both for display scaling.
type Series struct {
	Best       []float64
	Average    []float64
	MaxBest    float64
	MaxAverage float64
}

// RunResult is the summary of one completed run.
type RunResult struct {
	Selection     string
	Rearrangement string
	Label         string

	BestValue   float64
	BestFitness float64
	Generations int
	Elapsed     time.Duration
	Reason      StopReason

	Series *Series // nil unless Config.RecordSeries was set
}

// Label joins a selection name with a rearrangement suffix, e.g.
// "tournament_genocide" or plain "elitism".
func Label(selector Selector, rearranger Rearranger) string {
	label := selector.Name()
	if suffix := rearranger.Name(); suffix != "" {
		label += "_" + suffix
	}
	return label
}

// Run evolves the population until the global best fitness drops below the
// tolerance or the generation budget is exhausted. Each generation is one
// pass of evaluate, select, rearrange, check. The context is only consulted
// between generations.
func (p *Population) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()

	var series *Series
	if p.cfg.RecordSeries {
		series = &Series{}
	}

	for {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		p.evaluate(series)

		p.cfg.Selector.Apply(p.rng, p)
		p.cfg.Rearranger.Apply(p.rng, p)

		if p.Fitness(p.globalBest) < p.cfg.FitnessTolerance {
			break
		}
		if p.generation > p.cfg.MaxGenerations {
			break
		}
	}

	reason := StopReasonBudget
	if p.Fitness(p.globalBest) < p.cfg.FitnessTolerance {
		reason = StopReasonConverged
	}

	return RunResult{
		Selection:     p.cfg.Selector.Name(),
		Rearrangement: p.cfg.Rearranger.Name(),
		Label:         Label(p.cfg.Selector, p.cfg.Rearranger),
		BestValue:     p.globalBest,
		BestFitness:   p.Fitness(p.globalBest),
		Generations:   p.generation,
		Elapsed:       time.Since(start),
		Reason:        reason,
		Series:        series,
	}, nil
}

// evaluate finds the current champion, shifts the best trackers, updates the
// running global best, and appends to the recorded series when enabled.
func (p *Population) evaluate(series *Series) {
	best := p.values[p.BestIndex()]

	p.previousBest, p.hasPreviousBest = p.currentBest, p.hasCurrentBest
	p.currentBest, p.hasCurrentBest = best, true

	if !p.hasGlobalBest || betterFitness(p.Fitness(best), p.Fitness(p.globalBest)) {
		p.globalBest = best
		p.hasGlobalBest = true
	}

	if series == nil {
		return
	}

	fitness := p.Fitness(best)
	series.Best = append(series.Best, fitness)
	if fitness > series.MaxBest {
		series.MaxBest = fitness
	}

	average := p.averageValue()
	series.Average = append(series.Average, average)
	if average > series.MaxAverage {
		series.MaxAverage = average
	}
}

// averageValue is the arithmetic mean of raw objective values across the
// population. The raw value is recorded, not the fitness, so the average
// series keeps the objective's sign.
func (p *Population) averageValue() float64 {
	total := 0.0
	for _, v := range p.values {
		total += p.cfg.Objective.Eval(v)
	}
	return total / float64(len(p.values))
}
