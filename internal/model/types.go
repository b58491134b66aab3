package model

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// Stop reasons stored on RunRecord.StopReason.
const (
	StopReasonConverged = "converged"
	StopReasonBudget    = "budget_exhausted"
)

type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord is the summary of one completed search run: the configuration it
// ran under and where the global best ended up.
type RunRecord struct {
	VersionedRecord

	RunID        string `json:"run_id"`
	CreatedAtUTC string `json:"created_at_utc"`

	Objective     string `json:"objective"`
	Selection     string `json:"selection"`
	Rearrangement string `json:"rearrangement,omitempty"`
	Label         string `json:"label"`

	Seed             int64   `json:"seed"`
	PopulationSize   int     `json:"population_size"`
	MaxGenerations   int     `json:"max_generations"`
	FitnessTolerance float64 `json:"fitness_tolerance"`

	Generations int     `json:"generations"`
	ElapsedMS   int64   `json:"elapsed_ms"`
	BestValue   float64 `json:"best_value"`
	BestFitness float64 `json:"best_fitness"`
	StopReason  string  `json:"stop_reason"`
}

// SeriesRecord carries the per-generation data recorded during a run: best
// fitness and mean raw objective value, one entry per generation, plus the
// observed maxima used for chart scaling.
type SeriesRecord struct {
	VersionedRecord

	RunID      string    `json:"run_id"`
	Best       []float64 `json:"best"`
	Average    []float64 `json:"average"`
	MaxBest    float64   `json:"max_best"`
	MaxAverage float64   `json:"max_average"`
}
