package storage

import (
	"context"

	"tourgene/internal/model"
)

// Store persists per-run outputs: the run configuration, the best tour
// found, and the best-distance history. Populations themselves are never
// persisted; a run either completes or is abandoned.
type Store interface {
	Init(ctx context.Context) error
	SaveRunConfig(ctx context.Context, cfg model.RunConfig) error
	GetRunConfig(ctx context.Context, runID string) (model.RunConfig, bool, error)
	SaveBestTour(ctx context.Context, record model.BestTourRecord) error
	GetBestTour(ctx context.Context, runID string) (model.BestTourRecord, bool, error)
	SaveHistory(ctx context.Context, runID string, history []float64) error
	GetHistory(ctx context.Context, runID string) ([]float64, bool, error)
	ListRuns(ctx context.Context) ([]string, error)
}
