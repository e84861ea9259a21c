package stats

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"
)

// RunStats summarizes a best-distance history.
type RunStats struct {
	Generations    int     `json:"generations"`
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	FinalBest      float64 `json:"final_best"`
	BestGeneration int     `json:"best_generation"`
}

// Summarize reduces a history to its headline numbers. BestGeneration is
// the first generation that reached the overall minimum.
func Summarize(history []float64) (RunStats, error) {
	if len(history) == 0 {
		return RunStats{}, fmt.Errorf("history is empty")
	}

	data := mstats.Float64Data(history)
	mean, err := mstats.Mean(data)
	if err != nil {
		return RunStats{}, err
	}
	std, err := mstats.StandardDeviation(data)
	if err != nil {
		return RunStats{}, err
	}
	minValue, err := mstats.Min(data)
	if err != nil {
		return RunStats{}, err
	}
	maxValue, err := mstats.Max(data)
	if err != nil {
		return RunStats{}, err
	}

	bestGeneration := 0
	for i, value := range history {
		if value == minValue {
			bestGeneration = i
			break
		}
	}

	return RunStats{
		Generations:    len(history),
		Mean:           mean,
		Std:            std,
		Min:            minValue,
		Max:            maxValue,
		FinalBest:      history[len(history)-1],
		BestGeneration: bestGeneration,
	}, nil
}
