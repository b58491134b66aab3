package experiment

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"evoroot/internal/evo"
	"evoroot/internal/model"
	"evoroot/internal/objective"
	"evoroot/internal/storage"
)

func testObjective(t *testing.T) objective.Function {
	t.Helper()
	fn, err := objective.Resolve(objective.Cubic478)
	if err != nil {
		t.Fatalf("resolve objective: %v", err)
	}
	return fn
}

func newTestRunner(t *testing.T, cfg Config) (*Runner, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	cfg.Store = store
	if cfg.Objective == nil {
		cfg.Objective = testObjective(t)
	}
	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner, store
}

func TestNewRunnerValidation(t *testing.T) {
	if _, err := NewRunner(Config{Objective: testObjective(t)}); err == nil {
		t.Fatal("expected error for missing store")
	}
	if _, err := NewRunner(Config{Store: storage.NewMemoryStore()}); err == nil {
		t.Fatal("expected error for missing objective")
	}
	if _, err := NewRunner(Config{
		Store:        storage.NewMemoryStore(),
		Objective:    testObjective(t),
		RenderCharts: true,
	}); err == nil {
		t.Fatal("expected error for charts without series recording")
	}
}

func TestStandardSuiteCombos(t *testing.T) {
	combos := StandardSuite()
	if len(combos) != 5 {
		t.Fatalf("expected 5 combos, got %d", len(combos))
	}

	labels := make([]string, len(combos))
	for i, combo := range combos {
		labels[i] = evo.Label(combo.Selector, combo.Rearranger)
	}
	want := []string{
		"elitism",
		"tournament",
		"elitism_random_predation",
		"elitism_genocide",
		"tournament_genocide",
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("combo %d: got %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestRunOnePersistsAndPrints(t *testing.T) {
	var out bytes.Buffer
	artifacts := t.TempDir()
	runner, store := newTestRunner(t, Config{
		ArtifactsDir:     artifacts,
		Out:              &out,
		Seed:             3,
		MaxGenerations:   50,
		FitnessTolerance: 1e-300,
		RecordSeries:     true,
	})

	combo := Combo{Selector: evo.Elitism{}, Rearranger: evo.NoRearrangement{}}
	record, err := runner.RunOne(context.Background(), combo, "r1", 3)
	if err != nil {
		t.Fatalf("run one: %v", err)
	}

	if record.RunID != "r1" || record.Label != "elitism" {
		t.Fatalf("unexpected record identity: %+v", record)
	}
	if record.StopReason != model.StopReasonBudget {
		t.Fatalf("tiny tolerance should exhaust the budget, got %s", record.StopReason)
	}

	stored, ok, err := store.GetRun(context.Background(), "r1")
	if err != nil || !ok {
		t.Fatalf("stored run missing: ok=%v err=%v", ok, err)
	}
	if stored.Generations != record.Generations {
		t.Fatal("stored record differs from the returned one")
	}
	if _, ok, err := store.GetSeries(context.Background(), "r1"); err != nil || !ok {
		t.Fatalf("stored series missing: ok=%v err=%v", ok, err)
	}

	if _, err := os.Stat(filepath.Join(artifacts, "runs", "r1", "run.json")); err != nil {
		t.Fatalf("run artifact missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(artifacts, "runs", "r1", "series.csv")); err != nil {
		t.Fatalf("series artifact missing: %v", err)
	}

	summaryLine := regexp.MustCompile(`^\(\d+ ms\) - Best by elitism \(none\): .+ \| Fitness: .+\n`)
	if !summaryLine.MatchString(out.String()) {
		t.Fatalf("unexpected summary output: %q", out.String())
	}
}

func TestRunOneValidation(t *testing.T) {
	runner, _ := newTestRunner(t, Config{MaxGenerations: 10, FitnessTolerance: 1e-300})

	combo := Combo{Selector: evo.Elitism{}}
	if _, err := runner.RunOne(context.Background(), combo, "", 1); err == nil {
		t.Fatal("expected error for missing run id")
	}
	if _, err := runner.RunOne(context.Background(), Combo{}, "r1", 1); err == nil {
		t.Fatal("expected error for missing selector")
	}
}

func TestRunSuiteRunsEveryComboWithOffsetSeeds(t *testing.T) {
	var out bytes.Buffer
	artifacts := t.TempDir()
	runner, store := newTestRunner(t, Config{
		ArtifactsDir:     artifacts,
		Out:              &out,
		Seed:             10,
		MaxGenerations:   40,
		FitnessTolerance: 1e-300,
		RecordSeries:     true,
	})

	records, err := runner.RunSuite(context.Background(), "s1", nil)
	if err != nil {
		t.Fatalf("run suite: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(records))
	}

	for i, record := range records {
		wantSeed := int64(10 + i)
		if record.Seed != wantSeed {
			t.Fatalf("run %d: expected seed %d, got %d", i, wantSeed, record.Seed)
		}
	}
	if records[0].RunID != "s1-run-001" || records[4].RunID != "s1-run-005" {
		t.Fatalf("unexpected run ids: %s .. %s", records[0].RunID, records[4].RunID)
	}

	stored, err := store.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(stored) != 5 {
		t.Fatalf("expected 5 stored runs, got %d", len(stored))
	}

	if _, err := os.Stat(filepath.Join(artifacts, "suite_report.json")); err != nil {
		t.Fatalf("suite report missing: %v", err)
	}
}

func TestRunSuiteRequiresSuiteID(t *testing.T) {
	runner, _ := newTestRunner(t, Config{MaxGenerations: 10, FitnessTolerance: 1e-300})
	if _, err := runner.RunSuite(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for missing suite id")
	}
}
