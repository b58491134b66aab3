// Package experiment runs configured root searches end to end: it builds the
// population, runs the loop, persists the outcome, and renders charts.
package experiment

import (
	"context"
	"fmt"
	"io"
	"time"

	"evoroot/internal/chart"
	"evoroot/internal/evo"
	"evoroot/internal/model"
	"evoroot/internal/objective"
	"evoroot/internal/stats"
	"evoroot/internal/storage"
)

// Combo pairs a selection strategy with a rearrangement strategy.
type Combo struct {
	Selector   evo.Selector
	Rearranger evo.Rearranger
}

// StandardSuite is the five-strategy comparison suite: both selectors bare,
// elitism with predation, and both selectors with genocide.
func StandardSuite() []Combo {
	return []Combo{
		{Selector: evo.Elitism{}, Rearranger: evo.NoRearrangement{}},
		{Selector: evo.Tournament{}, Rearranger: evo.NoRearrangement{}},
		{Selector: evo.Elitism{}, Rearranger: evo.RandomPredation{}},
		{Selector: evo.Elitism{}, Rearranger: &evo.Genocide{}},
		{Selector: evo.Tournament{}, Rearranger: &evo.Genocide{}},
	}
}

// Config carries everything a Runner needs. Store and Objective are
// required; the rest default sensibly.
type Config struct {
	Store     storage.Store
	Objective objective.Function

	ArtifactsDir string
	ChartsDir    string
	Out          io.Writer

	Seed             int64
	PopulationSize   int
	MaxGenerations   int
	FitnessTolerance float64

	RecordSeries bool
	RenderCharts bool
}

type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Objective == nil {
		return nil, fmt.Errorf("objective function is required")
	}
	if cfg.RenderCharts && !cfg.RecordSeries {
		return nil, fmt.Errorf("chart rendering requires series recording")
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	return &Runner{cfg: cfg}, nil
}

// RunOne executes one combo with the given run id and seed, persists the
// outcome, and prints the summary line.
func (r *Runner) RunOne(ctx context.Context, combo Combo, runID string, seed int64) (model.RunRecord, error) {
	if runID == "" {
		return model.RunRecord{}, fmt.Errorf("run id is required")
	}
	if combo.Selector == nil {
		return model.RunRecord{}, fmt.Errorf("selector is required")
	}
	if combo.Rearranger == nil {
		combo.Rearranger = evo.NoRearrangement{}
	}

	pop, err := evo.NewPopulation(evo.Config{
		Objective:        r.cfg.Objective,
		Selector:         combo.Selector,
		Rearranger:       combo.Rearranger,
		PopulationSize:   r.cfg.PopulationSize,
		MaxGenerations:   r.cfg.MaxGenerations,
		FitnessTolerance: r.cfg.FitnessTolerance,
		Seed:             seed,
		RecordSeries:     r.cfg.RecordSeries,
	})
	if err != nil {
		return model.RunRecord{}, err
	}

	result, err := pop.Run(ctx)
	if err != nil {
		return model.RunRecord{}, err
	}

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: model.CurrentSchemaVersion,
			CodecVersion:  model.CurrentCodecVersion,
		},
		RunID:            runID,
		CreatedAtUTC:     time.Now().UTC().Format(time.RFC3339Nano),
		Objective:        r.cfg.Objective.Name(),
		Selection:        result.Selection,
		Rearrangement:    result.Rearrangement,
		Label:            result.Label,
		Seed:             seed,
		PopulationSize:   pop.Size(),
		MaxGenerations:   r.cfg.MaxGenerations,
		FitnessTolerance: r.cfg.FitnessTolerance,
		Generations:      result.Generations,
		ElapsedMS:        result.Elapsed.Milliseconds(),
		BestValue:        result.BestValue,
		BestFitness:      result.BestFitness,
		StopReason:       string(result.Reason),
	}
	if record.MaxGenerations == 0 {
		record.MaxGenerations = evo.DefaultMaxGenerations
	}
	if record.FitnessTolerance == 0 {
		record.FitnessTolerance = evo.DefaultFitnessTolerance
	}

	var series *model.SeriesRecord
	if result.Series != nil {
		series = &model.SeriesRecord{
			VersionedRecord: record.VersionedRecord,
			RunID:           runID,
			Best:            result.Series.Best,
			Average:         result.Series.Average,
			MaxBest:         result.Series.MaxBest,
			MaxAverage:      result.Series.MaxAverage,
		}
	}

	if err := r.cfg.Store.SaveRun(ctx, record); err != nil {
		return model.RunRecord{}, err
	}
	if series != nil {
		if err := r.cfg.Store.SaveSeries(ctx, *series); err != nil {
			return model.RunRecord{}, err
		}
	}

	if r.cfg.ArtifactsDir != "" {
		if _, err := stats.WriteRunArtifacts(r.cfg.ArtifactsDir, record, series); err != nil {
			return model.RunRecord{}, err
		}
	}

	if r.cfg.RenderCharts && series != nil && r.cfg.ChartsDir != "" {
		if _, _, err := chart.RenderRun(r.cfg.ChartsDir, record.Label, *series); err != nil {
			return model.RunRecord{}, err
		}
	}

	rearrangement := record.Rearrangement
	if rearrangement == "" {
		rearrangement = "none"
	}
	fmt.Fprintf(r.cfg.Out, "(%d ms) - Best by %s (%s): %v | Fitness: %v\n",
		record.ElapsedMS, record.Selection, rearrangement, record.BestValue, record.BestFitness)

	return record, nil
}

// RunSuite runs every combo in order, one run each, offsetting the seed per
// run, and writes the aggregate report when an artifacts directory is set.
func (r *Runner) RunSuite(ctx context.Context, suiteID string, combos []Combo) ([]model.RunRecord, error) {
	if suiteID == "" {
		return nil, fmt.Errorf("suite id is required")
	}
	if len(combos) == 0 {
		combos = StandardSuite()
	}

	records := make([]model.RunRecord, 0, len(combos))
	for i, combo := range combos {
		runID := fmt.Sprintf("%s-run-%03d", suiteID, i+1)
		record, err := r.RunOne(ctx, combo, runID, r.cfg.Seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		records = append(records, record)
	}

	if r.cfg.ArtifactsDir != "" {
		report, path, err := stats.WriteSuiteReport(r.cfg.ArtifactsDir, records)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(r.cfg.Out, "suite report: %s (converged %d/%d, best %s)\n",
			path, report.Converged, len(records), report.BestFitnessLabel)
	}

	return records, nil
}
