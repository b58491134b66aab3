package stats

import (
	"fmt"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"evoroot/internal/model"
)

const reportFile = "suite_report.json"

// RunRow is the per-run slice of a suite report.
type RunRow struct {
	RunID       string  `json:"run_id"`
	Label       string  `json:"label"`
	Objective   string  `json:"objective"`
	Seed        int64   `json:"seed"`
	Generations int     `json:"generations"`
	ElapsedMS   int64   `json:"elapsed_ms"`
	BestValue   float64 `json:"best_value"`
	BestFitness float64 `json:"best_fitness"`
	StopReason  string  `json:"stop_reason"`
}

// SuiteReport aggregates the runs of one experiment suite.
type SuiteReport struct {
	SchemaVersion    int      `json:"schema_version"`
	GeneratedAtUTC   string   `json:"generated_at_utc"`
	Runs             []RunRow `json:"runs"`
	Converged        int      `json:"converged"`
	GenerationsMean  float64  `json:"generations_mean"`
	GenerationsStd   float64  `json:"generations_std"`
	GenerationsMed   float64  `json:"generations_median"`
	ElapsedMSMean    float64  `json:"elapsed_ms_mean"`
	ElapsedMSStd     float64  `json:"elapsed_ms_std"`
	BestFitnessBest  float64  `json:"best_fitness_best"`
	BestFitnessLabel string   `json:"best_fitness_label"`
}

// BuildSuiteReport summarises the given runs. Order of the rows follows the
// order of the input records.
func BuildSuiteReport(records []model.RunRecord) (SuiteReport, error) {
	if len(records) == 0 {
		return SuiteReport{}, fmt.Errorf("no runs to report on")
	}

	report := SuiteReport{
		SchemaVersion:  model.CurrentSchemaVersion,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}

	generations := make([]float64, 0, len(records))
	elapsed := make([]float64, 0, len(records))
	for i, record := range records {
		if record.RunID == "" {
			return SuiteReport{}, fmt.Errorf("run %d: run id is required", i)
		}
		report.Runs = append(report.Runs, RunRow{
			RunID:       record.RunID,
			Label:       record.Label,
			Objective:   record.Objective,
			Seed:        record.Seed,
			Generations: record.Generations,
			ElapsedMS:   record.ElapsedMS,
			BestValue:   record.BestValue,
			BestFitness: record.BestFitness,
			StopReason:  record.StopReason,
		})
		if record.StopReason == model.StopReasonConverged {
			report.Converged++
		}
		generations = append(generations, float64(record.Generations))
		elapsed = append(elapsed, float64(record.ElapsedMS))

		if i == 0 || record.BestFitness < report.BestFitnessBest {
			report.BestFitnessBest = record.BestFitness
			report.BestFitnessLabel = record.Label
		}
	}

	report.GenerationsMean, report.GenerationsStd = meanStd(generations)
	report.ElapsedMSMean, report.ElapsedMSStd = meanStd(elapsed)
	report.GenerationsMed = median(generations)
	return report, nil
}

// WriteSuiteReport builds the report and writes it to baseDir/suite_report.json.
func WriteSuiteReport(baseDir string, records []model.RunRecord) (SuiteReport, string, error) {
	report, err := BuildSuiteReport(records)
	if err != nil {
		return SuiteReport{}, "", err
	}
	path := filepath.Join(baseDir, reportFile)
	if err := writeJSON(path, report); err != nil {
		return SuiteReport{}, "", err
	}
	return report, path, nil
}

func meanStd(values []float64) (float64, float64) {
	mean := stat.Mean(values, nil)
	if len(values) < 2 {
		return mean, 0
	}
	return mean, stat.StdDev(values, nil)
}

func median(values []float64) float64 {
	sorted := sortedCopy(values)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
