// Package evoroot is the embedding surface: a Client that wires storage,
// the experiment runner, and artifact output behind one small API.
package evoroot

import (
	"context"
	"fmt"
	"io"
	"time"

	"evoroot/internal/evo"
	"evoroot/internal/experiment"
	"evoroot/internal/model"
	"evoroot/internal/objective"
	"evoroot/internal/stats"
	"evoroot/internal/storage"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultChartsDir    = "charts"
	defaultDBPath       = "evoroot.db"
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ChartsDir    string
	Out          io.Writer
}

type Client struct {
	store storage.Store

	artifactsDir string
	chartsDir    string
	out          io.Writer
}

type RunRequest struct {
	RunID         string
	Objective     string
	Selection     string
	Rearrangement string

	Seed             int64
	Population       int
	Generations      int
	FitnessTolerance float64

	RecordSeries bool
	RenderCharts bool
}

type RunSummary struct {
	RunID       string
	Label       string
	Objective   string
	Seed        int64
	Generations int
	ElapsedMS   int64
	BestValue   float64
	BestFitness float64
	StopReason  string
}

type SuiteRequest struct {
	SuiteID   string
	Objective string

	Seed             int64
	Population       int
	Generations      int
	FitnessTolerance float64

	RenderCharts bool
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Label        string
	Objective    string
	Seed         int64
	Generations  int
	ElapsedMS    int64
	BestFitness  float64
	StopReason   string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	chartsDir := opts.ChartsDir
	if chartsDir == "" {
		chartsDir = defaultChartsDir
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		artifactsDir: artifactsDir,
		chartsDir:    chartsDir,
		out:          out,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	return c.store.Reset(ctx)
}

// Run executes one search with the requested strategies and returns its
// summary. An empty run id gets a timestamp-derived one.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	fn, err := objective.Resolve(req.Objective)
	if err != nil {
		return RunSummary{}, err
	}
	selector, err := selectionFromName(req.Selection)
	if err != nil {
		return RunSummary{}, err
	}
	rearranger, err := rearrangementFromName(req.Rearrangement)
	if err != nil {
		return RunSummary{}, err
	}
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("run-%d", time.Now().UTC().UnixNano())
	}

	if err := c.store.Init(ctx); err != nil {
		return RunSummary{}, err
	}

	runner, err := experiment.NewRunner(experiment.Config{
		Store:            c.store,
		Objective:        fn,
		ArtifactsDir:     c.artifactsDir,
		ChartsDir:        c.chartsDir,
		Out:              c.out,
		Seed:             req.Seed,
		PopulationSize:   req.Population,
		MaxGenerations:   req.Generations,
		FitnessTolerance: req.FitnessTolerance,
		RecordSeries:     req.RecordSeries || req.RenderCharts,
		RenderCharts:     req.RenderCharts,
	})
	if err != nil {
		return RunSummary{}, err
	}

	combo := experiment.Combo{Selector: selector, Rearranger: rearranger}
	record, err := runner.RunOne(ctx, combo, runID, req.Seed)
	if err != nil {
		return RunSummary{}, err
	}
	return summaryFromRecord(record), nil
}

// Suite runs the standard five-strategy comparison and returns the per-run
// summaries in suite order.
func (c *Client) Suite(ctx context.Context, req SuiteRequest) ([]RunSummary, error) {
	fn, err := objective.Resolve(req.Objective)
	if err != nil {
		return nil, err
	}
	suiteID := req.SuiteID
	if suiteID == "" {
		suiteID = fmt.Sprintf("suite-%d", time.Now().UTC().UnixNano())
	}

	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}

	runner, err := experiment.NewRunner(experiment.Config{
		Store:            c.store,
		Objective:        fn,
		ArtifactsDir:     c.artifactsDir,
		ChartsDir:        c.chartsDir,
		Out:              c.out,
		Seed:             req.Seed,
		PopulationSize:   req.Population,
		MaxGenerations:   req.Generations,
		FitnessTolerance: req.FitnessTolerance,
		RecordSeries:     true,
		RenderCharts:     req.RenderCharts,
	})
	if err != nil {
		return nil, err
	}

	records, err := runner.RunSuite(ctx, suiteID, experiment.StandardSuite())
	if err != nil {
		return nil, err
	}

	summaries := make([]RunSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, summaryFromRecord(record))
	}
	return summaries, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	records, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[:req.Limit]
	}
	items := make([]RunItem, 0, len(records))
	for _, record := range records {
		items = append(items, RunItem{
			RunID:        record.RunID,
			CreatedAtUTC: record.CreatedAtUTC,
			Label:        record.Label,
			Objective:    record.Objective,
			Seed:         record.Seed,
			Generations:  record.Generations,
			ElapsedMS:    record.ElapsedMS,
			BestFitness:  record.BestFitness,
			StopReason:   record.StopReason,
		})
	}
	return items, nil
}

func (c *Client) Show(ctx context.Context, runID string) (model.RunRecord, *model.SeriesRecord, error) {
	if runID == "" {
		return model.RunRecord{}, nil, fmt.Errorf("run id is required")
	}
	if err := c.store.Init(ctx); err != nil {
		return model.RunRecord{}, nil, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, nil, err
	}
	if !ok {
		return model.RunRecord{}, nil, fmt.Errorf("run not found: %s", runID)
	}
	series, ok, err := c.store.GetSeries(ctx, runID)
	if err != nil {
		return model.RunRecord{}, nil, err
	}
	if !ok {
		return record, nil, nil
	}
	return record, &series, nil
}

// Report aggregates every stored run into one suite report without writing
// any file.
func (c *Client) Report(ctx context.Context) (stats.SuiteReport, error) {
	if err := c.store.Init(ctx); err != nil {
		return stats.SuiteReport{}, err
	}
	records, err := c.store.ListRuns(ctx)
	if err != nil {
		return stats.SuiteReport{}, err
	}
	return stats.BuildSuiteReport(records)
}

func summaryFromRecord(record model.RunRecord) RunSummary {
	return RunSummary{
		RunID:       record.RunID,
		Label:       record.Label,
		Objective:   record.Objective,
		Seed:        record.Seed,
		Generations: record.Generations,
		ElapsedMS:   record.ElapsedMS,
		BestValue:   record.BestValue,
		BestFitness: record.BestFitness,
		StopReason:  record.StopReason,
	}
}

func selectionFromName(name string) (evo.Selector, error) {
	switch name {
	case "", "elitism":
		return evo.Elitism{}, nil
	case "tournament":
		return evo.Tournament{}, nil
	default:
		return nil, fmt.Errorf("unknown selection: %s (want elitism|tournament)", name)
	}
}

func rearrangementFromName(name string) (evo.Rearranger, error) {
	switch name {
	case "", "none":
		return evo.NoRearrangement{}, nil
	case "random_predation", "predation":
		return evo.RandomPredation{}, nil
	case "genocide":
		return &evo.Genocide{}, nil
	default:
		return nil, fmt.Errorf("unknown rearrangement: %s (want none|random_predation|genocide)", name)
	}
}
