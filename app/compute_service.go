package app

import (
	"context"
	"log"

	"groupstat/adapters/stats/binning"
	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"
	"groupstat/internal/errors"
	"groupstat/models"
	"groupstat/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ComputeService runs the grouped statistics engine and records each result
type ComputeService struct {
	engine      *engine.GroupedStatsEngine
	repo        ports.ComputationRepository
	concurrency int
}

// RawComputation is a computation over binned raw observations
type RawComputation struct {
	Computation *models.Computation
	Raw         *binning.RawSummary
}

// NewComputeService creates a compute service. concurrency bounds how many
// datasets of a batch are computed at once.
func NewComputeService(statsEngine *engine.GroupedStatsEngine, repo ports.ComputationRepository, concurrency int) *ComputeService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ComputeService{
		engine:      statsEngine,
		repo:        repo,
		concurrency: concurrency,
	}
}

// Compute runs the engine on rows and saves the result.
// Engine rejections are returned as INVALID_INPUT errors wrapping the InvalidInputError.
func (s *ComputeService) Compute(ctx context.Context, source string, rows []grouped.IntervalRow) (*models.Computation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.engine.Compute(rows)
	if err != nil {
		if grouped.IsInvalidInput(err) {
			return nil, errors.InvalidInput(err)
		}
		return nil, errors.Wrap(err, "computation failed")
	}
	if !result.Finite() {
		return nil, errors.InvalidInput(grouped.NewInvalidInputError(grouped.ReasonNonFiniteResult))
	}

	computation := models.NewComputation(source, result)
	if err := s.repo.Save(ctx, computation); err != nil {
		return nil, errors.Wrap(err, "failed to record computation")
	}

	log.Printf("[ComputeService] %s: computed %s from %d classes (n=%g)", source, computation.ID, len(result.Dataset), result.TotalFrequency)
	return computation, nil
}

// ComputeBatch computes several datasets concurrently. Results keep the order
// of datasets; the first failure cancels the remaining work and is returned.
func (s *ComputeService) ComputeBatch(ctx context.Context, source string, datasets [][]grouped.IntervalRow) ([]*models.Computation, error) {
	results := make([]*models.Computation, len(datasets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, rows := range datasets {
		i, rows := i, rows
		g.Go(func() error {
			computation, err := s.Compute(gctx, source, rows)
			if err != nil {
				return errors.Wrapf(err, "dataset %d", i+1)
			}
			results[i] = computation
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ComputeRaw groups raw observations into classes, computes their grouped
// statistics and reports the ungrouped statistics alongside.
func (s *ComputeService) ComputeRaw(ctx context.Context, source string, values []float64, classes int) (*RawComputation, error) {
	rows, err := binning.Bin(values, classes)
	if err != nil {
		return nil, err
	}
	summary, err := binning.Summarize(values)
	if err != nil {
		return nil, err
	}

	computation, err := s.Compute(ctx, source, rows)
	if err != nil {
		return nil, err
	}
	return &RawComputation{Computation: computation, Raw: summary}, nil
}

// Get returns a recorded computation
func (s *ComputeService) Get(ctx context.Context, id uuid.UUID) (*models.Computation, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRecent returns the most recent computations, newest first
func (s *ComputeService) ListRecent(ctx context.Context, limit int) ([]*models.Computation, error) {
	return s.repo.ListRecent(ctx, limit)
}
