package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"evoroot/internal/chart"
	"evoroot/internal/storage"
	rootapi "evoroot/pkg/evoroot"
)

const (
	artifactsDir = "artifacts"
	chartsDir    = "charts"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "suite":
		return runSuite(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "report":
		return runReport(ctx, args[1:])
	case "plot":
		return runPlot(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	objectiveName := fs.String("objective", "", "objective function: cubic_478|cubic_27|quadratic_56|exp_gap")
	selectionName := fs.String("selection", "elitism", "selection strategy: elitism|tournament")
	rearrangementName := fs.String("rearrangement", "none", "rearrangement strategy: none|random_predation|genocide")
	population := fs.Int("pop", 0, "population size (0 uses the default)")
	generations := fs.Int("gens", 0, "generation budget (0 uses the default)")
	tolerance := fs.Float64("tolerance", 0, "fitness tolerance (0 uses the default)")
	seed := fs.Int64("seed", 1, "rng seed")
	recordSeries := fs.Bool("series", false, "record the per-generation series")
	renderCharts := fs.Bool("charts", false, "render best/average charts (implies --series)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = rootapi.RunRequest{
			RunID:            *runID,
			Objective:        *objectiveName,
			Selection:        *selectionName,
			Rearrangement:    *rearrangementName,
			Seed:             *seed,
			Population:       *population,
			Generations:      *generations,
			FitnessTolerance: *tolerance,
			RecordSeries:     *recordSeries,
			RenderCharts:     *renderCharts,
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"run-id":        *runID,
			"objective":     *objectiveName,
			"selection":     *selectionName,
			"rearrangement": *rearrangementName,
			"seed":          *seed,
			"pop":           *population,
			"gens":          *generations,
			"tolerance":     *tolerance,
			"series":        *recordSeries,
			"charts":        *renderCharts,
		})
	}
	if req.Rearrangement == "none" {
		req.Rearrangement = ""
	}

	client, err := rootapi.New(rootapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ChartsDir:    chartsDir,
		Out:          os.Stdout,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s label=%s objective=%s seed=%d gens=%d reason=%s\n",
		summary.RunID, summary.Label, summary.Objective, summary.Seed, summary.Generations, summary.StopReason)
	return nil
}

func runSuite(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suite", flag.ContinueOnError)
	suiteID := fs.String("suite-id", "", "explicit suite id (optional)")
	objectiveName := fs.String("objective", "", "objective function: cubic_478|cubic_27|quadratic_56|exp_gap")
	population := fs.Int("pop", 0, "population size (0 uses the default)")
	generations := fs.Int("gens", 0, "generation budget (0 uses the default)")
	tolerance := fs.Float64("tolerance", 0, "fitness tolerance (0 uses the default)")
	seed := fs.Int64("seed", 1, "base rng seed, offset per run")
	renderCharts := fs.Bool("charts", false, "render best/average charts per run")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := rootapi.New(rootapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ChartsDir:    chartsDir,
		Out:          os.Stdout,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summaries, err := client.Suite(ctx, rootapi.SuiteRequest{
		SuiteID:          *suiteID,
		Objective:        *objectiveName,
		Seed:             *seed,
		Population:       *population,
		Generations:      *generations,
		FitnessTolerance: *tolerance,
		RenderCharts:     *renderCharts,
	})
	if err != nil {
		return err
	}
	fmt.Printf("suite completed runs=%d\n", len(summaries))
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Runs(ctx, rootapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, item := range items {
		fmt.Printf("run_id=%s created=%s label=%s objective=%s seed=%d gens=%d elapsed_ms=%d fitness=%v reason=%s\n",
			item.RunID, item.CreatedAtUTC, item.Label, item.Objective,
			item.Seed, item.Generations, item.ElapsedMS, item.BestFitness, item.StopReason)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	jsonOut := fs.Bool("json", false, "emit the run record as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("show requires --run-id")
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, series, err := client.Show(ctx, *runID)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Printf("run_id=%s created=%s\n", record.RunID, record.CreatedAtUTC)
	fmt.Printf("objective=%s label=%s seed=%d pop=%d\n", record.Objective, record.Label, record.Seed, record.PopulationSize)
	fmt.Printf("generations=%d elapsed_ms=%d reason=%s\n", record.Generations, record.ElapsedMS, record.StopReason)
	fmt.Printf("best_value=%v best_fitness=%v\n", record.BestValue, record.BestFitness)
	if series != nil {
		fmt.Printf("series points=%d max_best=%v max_average=%v\n", len(series.Best), series.MaxBest, series.MaxAverage)
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	report, err := client.Report(ctx)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("runs=%d converged=%d\n", len(report.Runs), report.Converged)
	fmt.Printf("generations mean=%.2f std=%.2f median=%.2f\n", report.GenerationsMean, report.GenerationsStd, report.GenerationsMed)
	fmt.Printf("elapsed_ms mean=%.2f std=%.2f\n", report.ElapsedMSMean, report.ElapsedMSStd)
	fmt.Printf("best fitness=%v by %s\n", report.BestFitnessBest, report.BestFitnessLabel)
	return nil
}

func runPlot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	outDir := fs.String("out", chartsDir, "output directory for the PNG charts")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evoroot.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("plot requires --run-id")
	}

	client, err := rootapi.New(rootapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, series, err := client.Show(ctx, *runID)
	if err != nil {
		return err
	}
	if series == nil {
		return fmt.Errorf("run %s has no recorded series (rerun with --series)", *runID)
	}

	bestPath, avgPath, err := chart.RenderRun(*outDir, record.Label, *series)
	if err != nil {
		return err
	}
	fmt.Printf("saved charts: %s %s\n", bestPath, avgPath)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: evorootctl <init|reset|run|suite|runs|show|report|plot> [flags]", msg)
}
