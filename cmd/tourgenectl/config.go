package main

import (
	"encoding/json"
	"flag"
	"os"

	"tourgene/pkg/tourgene"
)

// loadSolveRequestFromConfig reads a JSON run config. Missing fields keep
// the same defaults the solve flags use; unknown keys are ignored.
func loadSolveRequestFromConfig(path string) (tourgene.SolveRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tourgene.SolveRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return tourgene.SolveRequest{}, err
	}

	req := tourgene.SolveRequest{
		Population:   40,
		Generations:  1000,
		MutationRate: 10000,
		Seed:         -1,
	}
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["cities"]); ok {
		req.CitiesPath = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asInt(raw["mutation_rate"]); ok {
		req.MutationRate = v
	}
	if v, ok := asString(raw["selection"]); ok {
		req.Selection = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	return req, nil
}

// overlaySetFlags lays explicitly set solve flags over a config-loaded
// request, so the command line always wins.
func overlaySetFlags(fs *flag.FlagSet, base, fromFlags tourgene.SolveRequest) tourgene.SolveRequest {
	merged := base
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "run-id":
			merged.RunID = fromFlags.RunID
		case "population":
			merged.Population = fromFlags.Population
		case "generations":
			merged.Generations = fromFlags.Generations
		case "mutation":
			merged.MutationRate = fromFlags.MutationRate
		case "selection":
			merged.Selection = fromFlags.Selection
		case "seed":
			merged.Seed = fromFlags.Seed
		}
	})
	return merged
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch value := v.(type) {
	case float64:
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	default:
		return 0, false
	}
}
