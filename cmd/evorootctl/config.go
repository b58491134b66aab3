package main

import (
	"encoding/json"
	"fmt"
	"os"

	rootapi "evoroot/pkg/evoroot"
)

func loadRunRequestFromConfig(path string) (rootapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rootapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return rootapi.RunRequest{}, err
	}

	var req rootapi.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["objective"]); ok {
		req.Objective = v
	}
	if v, ok := asString(raw["selection"]); ok {
		req.Selection = v
	}
	if v, ok := asString(raw["rearrangement"]); ok {
		req.Rearrangement = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloat64(raw["fitness_tolerance"]); ok {
		req.FitnessTolerance = v
	}
	if v, ok := asBool(raw["record_series"]); ok {
		req.RecordSeries = v
	}
	if v, ok := asBool(raw["render_charts"]); ok {
		req.RenderCharts = v
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (rootapi.RunRequest, error) {
	if configPath == "" {
		return rootapi.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return rootapi.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func overrideFromFlags(req *rootapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "run-id":
			req.RunID = v.(string)
		case "objective":
			req.Objective = v.(string)
		case "selection":
			req.Selection = v.(string)
		case "rearrangement":
			req.Rearrangement = v.(string)
		case "seed":
			req.Seed = v.(int64)
		case "pop":
			req.Population = v.(int)
		case "gens":
			req.Generations = v.(int)
		case "tolerance":
			req.FitnessTolerance = v.(float64)
		case "series":
			req.RecordSeries = v.(bool)
		case "charts":
			req.RenderCharts = v.(bool)
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
