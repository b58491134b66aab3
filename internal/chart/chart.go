// Package chart renders the per-generation series of a run as PNG line
// charts, one for the best fitness and one for the population average.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"evoroot/internal/model"
)

// RenderRun writes best_<label>.png and aveg_<label>.png under dir and
// returns the two paths. The vertical axis of each chart runs from zero to
// the maximum the series observed.
func RenderRun(dir, label string, series model.SeriesRecord) (string, string, error) {
	if label == "" {
		return "", "", fmt.Errorf("chart label is required")
	}
	if len(series.Best) == 0 {
		return "", "", fmt.Errorf("no series data to render")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	bestPath := filepath.Join(dir, "best_"+label+".png")
	title := "Best by " + titleFor(label)
	if err := renderSeries(bestPath, title, "Fitness", series.Best, series.MaxBest); err != nil {
		return "", "", err
	}

	avgPath := filepath.Join(dir, "aveg_"+label+".png")
	title = "Average by " + titleFor(label)
	if err := renderSeries(avgPath, title, "Average value", series.Average, series.MaxAverage); err != nil {
		return "", "", err
	}

	return bestPath, avgPath, nil
}

func renderSeries(path, title, yLabel string, values []float64, maxValue float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = yLabel
	if maxValue > 0 {
		p.Y.Min = 0
		p.Y.Max = maxValue
	}

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// titleFor turns a run label like "tournament_genocide" into "Tournament
// Genocide" for chart captions.
func titleFor(label string) string {
	words := strings.Split(label, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
