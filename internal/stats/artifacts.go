package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"evoroot/internal/model"
)

const (
	runsDir      = "runs"
	runIndexFile = "run_index.json"
)

// WriteRunArtifacts writes one run's summary JSON and series CSV under
// baseDir/runs/<runID>/ and records the run id in the run index.
func WriteRunArtifacts(baseDir string, record model.RunRecord, series *model.SeriesRecord) (string, error) {
	if record.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}
	dir := filepath.Join(baseDir, runsDir, record.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "run.json"), record); err != nil {
		return "", err
	}
	if series != nil {
		if err := writeSeriesCSV(filepath.Join(dir, "series.csv"), *series); err != nil {
			return "", err
		}
	}
	if err := appendRunIndex(baseDir, record.RunID); err != nil {
		return "", err
	}
	return dir, nil
}

func ReadRunRecord(baseDir, runID string) (model.RunRecord, bool, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, runsDir, runID, "run.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return model.RunRecord{}, false, nil
		}
		return model.RunRecord{}, false, err
	}
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, false, err
	}
	return record, true, nil
}

func ReadSeriesCSV(baseDir, runID string) (model.SeriesRecord, bool, error) {
	f, err := os.Open(filepath.Join(baseDir, runsDir, runID, "series.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return model.SeriesRecord{}, false, nil
		}
		return model.SeriesRecord{}, false, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return model.SeriesRecord{}, false, err
	}

	series := model.SeriesRecord{RunID: runID}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != 3 {
			return model.SeriesRecord{}, false, fmt.Errorf("series row %d: want 3 columns, got %d", i, len(row))
		}
		best, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return model.SeriesRecord{}, false, fmt.Errorf("series row %d best: %w", i, err)
		}
		average, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return model.SeriesRecord{}, false, fmt.Errorf("series row %d average: %w", i, err)
		}
		series.Best = append(series.Best, best)
		series.Average = append(series.Average, average)
		if best > series.MaxBest {
			series.MaxBest = best
		}
		if average > series.MaxAverage {
			series.MaxAverage = average
		}
	}
	return series, true, nil
}

// ListRunIDs returns the recorded run ids in insertion order.
func ListRunIDs(baseDir string) ([]string, error) {
	index, err := readRunIndex(baseDir)
	if err != nil {
		return nil, err
	}
	return index, nil
}

func writeSeriesCSV(path string, series model.SeriesRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "best", "average"}); err != nil {
		return err
	}
	for i := range series.Best {
		average := ""
		if i < len(series.Average) {
			average = strconv.FormatFloat(series.Average[i], 'g', -1, 64)
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(series.Best[i], 'g', -1, 64),
			average,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func appendRunIndex(baseDir, runID string) error {
	index, err := readRunIndex(baseDir)
	if err != nil {
		return err
	}
	for _, existing := range index {
		if existing == runID {
			return nil
		}
	}
	index = append(index, runID)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

func readRunIndex(baseDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, runIndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var index []string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return index, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// sortedCopy is used by report building; kept here next to the other small
// helpers.
func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
