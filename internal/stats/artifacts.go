package stats

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"tourgene/internal/model"
)

const (
	runIndexFile   = "run_index.json"
	runConfigFile  = "run_config.json"
	historyFile    = "history.csv"
	bestTourFile   = "best_tour.json"
	runDirFileMode = 0o755
)

// RunArtifacts bundles everything written to disk for one run.
type RunArtifacts struct {
	Config   model.RunConfig
	History  []float64
	BestTour model.BestTourRecord
}

// WriteRunArtifacts persists the run outputs under baseDir/<run id> and
// registers the run in the index. It returns the run directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	dir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(dir, runDirFileMode); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, runConfigFile), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeHistoryCSV(filepath.Join(dir, historyFile), artifacts.History); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, bestTourFile), artifacts.BestTour); err != nil {
		return "", err
	}
	if err := addToRunIndex(baseDir, artifacts.Config.RunID); err != nil {
		return "", err
	}
	return dir, nil
}

// ReadRunConfig loads a run's persisted configuration.
func ReadRunConfig(baseDir, runID string) (model.RunConfig, bool, error) {
	var cfg model.RunConfig
	ok, err := readJSON(filepath.Join(baseDir, runID, runConfigFile), &cfg)
	return cfg, ok, err
}

// ReadBestTour loads a run's persisted best tour.
func ReadBestTour(baseDir, runID string) (model.BestTourRecord, bool, error) {
	var record model.BestTourRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, bestTourFile), &record)
	return record, ok, err
}

// ReadHistory loads a run's best-distance history.
func ReadHistory(baseDir, runID string) ([]float64, bool, error) {
	file, err := os.Open(filepath.Join(baseDir, runID, historyFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, false, err
	}
	history := make([]float64, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != 2 {
			return nil, false, fmt.Errorf("history row %d: expected 2 columns, got %d", i, len(row))
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, false, fmt.Errorf("history row %d: %w", i, err)
		}
		history = append(history, value)
	}
	return history, true, nil
}

// ListRuns returns the indexed run IDs, sorted.
func ListRuns(baseDir string) ([]string, error) {
	var index []string
	ok, err := readJSON(filepath.Join(baseDir, runIndexFile), &index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	sort.Strings(index)
	return index, nil
}

func addToRunIndex(baseDir, runID string) error {
	path := filepath.Join(baseDir, runIndexFile)
	var index []string
	if _, err := readJSON(path, &index); err != nil {
		return err
	}
	for _, existing := range index {
		if existing == runID {
			return nil
		}
	}
	index = append(index, runID)
	sort.Strings(index)
	return writeJSON(path, index)
}

func writeHistoryCSV(path string, history []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"generation", "best"}); err != nil {
		return err
	}
	for i, value := range history {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(value, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}
