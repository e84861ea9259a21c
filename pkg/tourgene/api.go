// Package tourgene is the public client surface: it wires the genetic
// engine to run storage and on-disk artifacts so callers get a one-call
// solve with retrievable results.
package tourgene

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"tourgene/internal/brute"
	"tourgene/internal/evo"
	"tourgene/internal/model"
	"tourgene/internal/stats"
	"tourgene/internal/storage"
)

const (
	defaultRunsDir = "runs"
	defaultDBPath  = "tourgene.db"
)

type Options struct {
	StoreKind string
	DBPath    string
	RunsDir   string
	Logger    *zap.Logger
}

type Client struct {
	store   storage.Store
	runsDir string
	logger  *zap.Logger
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.DBPath == "" {
		opts.DBPath = defaultDBPath
	}
	if opts.RunsDir == "" {
		opts.RunsDir = defaultRunsDir
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	return &Client{
		store:   store,
		runsDir: opts.RunsDir,
		logger:  opts.Logger,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type SolveRequest struct {
	RunID        string
	Cities       []model.City
	CitiesPath   string
	Population   int
	Generations  int
	MutationRate int
	Selection    string
	Seed         int64

	// IncludeTable renders the final population statistics table into the
	// summary.
	IncludeTable bool
}

type SolveSummary struct {
	RunID        string
	RunDir       string
	BestLabels   []string
	BestDistance float64
	History      []float64
	Stats        stats.RunStats
	Table        string
}

// Solve runs the genetic engine end to end, persists the run outputs to
// both the store and the artifacts directory, and returns the summary.
func (c *Client) Solve(ctx context.Context, req SolveRequest) (SolveSummary, error) {
	if req.Generations <= 0 {
		return SolveSummary{}, fmt.Errorf("generations must be > 0")
	}
	if req.RunID == "" {
		req.RunID = fmt.Sprintf("run-%d", time.Now().UTC().UnixNano())
	}

	selector, err := evo.NewSelector(req.Selection)
	if err != nil {
		return SolveSummary{}, err
	}

	population, err := evo.New(evo.Config{
		Cities:       req.Cities,
		Size:         req.Population,
		MutationRate: req.MutationRate,
		Seed:         req.Seed,
		Selector:     selector,
		Logger:       c.logger,
	})
	if err != nil {
		return SolveSummary{}, err
	}

	c.logger.Info("run started",
		zap.String("run_id", req.RunID),
		zap.Int("cities", len(req.Cities)),
		zap.Int("population", req.Population),
		zap.Int("generations", req.Generations),
		zap.String("selection", selector.Name()),
		zap.Int64("seed", req.Seed),
	)

	if err := population.Evolve(ctx, req.Generations); err != nil {
		return SolveSummary{}, err
	}

	population.RecomputeFitness()
	best := population.Members()[0]
	history := population.History()

	runStats, err := stats.Summarize(history)
	if err != nil {
		return SolveSummary{}, err
	}

	runConfig := model.RunConfig{
		VersionedRecord: storage.Stamp(),
		RunID:           req.RunID,
		CitiesPath:      req.CitiesPath,
		CityCount:       len(req.Cities),
		PopulationSize:  req.Population,
		Generations:     req.Generations,
		MutationRate:    req.MutationRate,
		Selection:       selector.Name(),
		Seed:            req.Seed,
	}
	bestRecord := model.BestTourRecord{
		VersionedRecord: storage.Stamp(),
		RunID:           req.RunID,
		Labels:          best.Labels(),
		Distance:        best.Distance,
	}

	runDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config:   runConfig,
		History:  history,
		BestTour: bestRecord,
	})
	if err != nil {
		return SolveSummary{}, err
	}
	if err := c.store.SaveRunConfig(ctx, runConfig); err != nil {
		return SolveSummary{}, err
	}
	if err := c.store.SaveBestTour(ctx, bestRecord); err != nil {
		return SolveSummary{}, err
	}
	if err := c.store.SaveHistory(ctx, req.RunID, history); err != nil {
		return SolveSummary{}, err
	}

	c.logger.Info("run finished",
		zap.String("run_id", req.RunID),
		zap.Float64("best_distance", best.Distance),
		zap.Int("best_generation", runStats.BestGeneration),
	)

	summary := SolveSummary{
		RunID:        req.RunID,
		RunDir:       runDir,
		BestLabels:   best.Labels(),
		BestDistance: best.Distance,
		History:      history,
		Stats:        runStats,
	}
	if req.IncludeTable {
		summary.Table = stats.PopulationTable(population.Members())
	}
	return summary, nil
}

// BruteForce exhaustively solves a small instance.
func (c *Client) BruteForce(ctx context.Context, cities []model.City) (*model.Tour, error) {
	return brute.Solve(ctx, cities)
}

// History returns a run's best-distance history, consulting the store
// first and falling back to the artifacts directory (memory-backed stores
// do not survive across processes; the artifacts do).
func (c *Client) History(ctx context.Context, runID string) ([]float64, bool, error) {
	history, ok, err := c.store.GetHistory(ctx, runID)
	if err != nil || ok {
		return history, ok, err
	}
	return stats.ReadHistory(c.runsDir, runID)
}

// BestTour returns a run's persisted best tour, store first, artifacts
// fallback.
func (c *Client) BestTour(ctx context.Context, runID string) (model.BestTourRecord, bool, error) {
	record, ok, err := c.store.GetBestTour(ctx, runID)
	if err != nil || ok {
		return record, ok, err
	}
	return stats.ReadBestTour(c.runsDir, runID)
}

// RunConfig returns a run's persisted configuration, store first,
// artifacts fallback.
func (c *Client) RunConfig(ctx context.Context, runID string) (model.RunConfig, bool, error) {
	cfg, ok, err := c.store.GetRunConfig(ctx, runID)
	if err != nil || ok {
		return cfg, ok, err
	}
	return stats.ReadRunConfig(c.runsDir, runID)
}

// Runs lists all known run IDs across the store and the artifacts
// directory, sorted and deduplicated.
func (c *Client) Runs(ctx context.Context) ([]string, error) {
	fromStore, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	fromArtifacts, err := stats.ListRuns(c.runsDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(fromStore)+len(fromArtifacts))
	for _, runID := range fromStore {
		seen[runID] = struct{}{}
	}
	for _, runID := range fromArtifacts {
		seen[runID] = struct{}{}
	}
	runs := make([]string, 0, len(seen))
	for runID := range seen {
		runs = append(runs, runID)
	}
	sort.Strings(runs)
	return runs, nil
}

// Export bundles a run's persisted outputs into a single structure for
// the CLI's export command.
type ExportBundle struct {
	Config   model.RunConfig      `json:"config"`
	BestTour model.BestTourRecord `json:"best_tour"`
	History  []float64            `json:"history"`
	Curve    []stats.CurvePoint   `json:"curve"`
	Stats    stats.RunStats       `json:"stats"`
}

func (c *Client) Export(ctx context.Context, runID string, curveResolution int) (ExportBundle, error) {
	cfg, ok, err := c.RunConfig(ctx, runID)
	if err != nil {
		return ExportBundle{}, err
	}
	if !ok {
		return ExportBundle{}, fmt.Errorf("run not found: %s", runID)
	}
	best, _, err := c.BestTour(ctx, runID)
	if err != nil {
		return ExportBundle{}, err
	}
	history, _, err := c.History(ctx, runID)
	if err != nil {
		return ExportBundle{}, err
	}

	bundle := ExportBundle{
		Config:   cfg,
		BestTour: best,
		History:  history,
		Curve:    stats.LearningCurve(history, curveResolution),
	}
	if len(history) > 0 {
		runStats, err := stats.Summarize(history)
		if err != nil {
			return ExportBundle{}, err
		}
		bundle.Stats = runStats
	}
	return bundle, nil
}
