package memory

import (
	"context"
	"sort"
	"sync"

	"groupstat/internal/errors"
	"groupstat/models"
	"groupstat/ports"

	"github.com/google/uuid"
)

// ComputationRepository keeps computation history in process memory.
// It is used when no database is configured and in tests.
type ComputationRepository struct {
	mu           sync.RWMutex
	computations map[uuid.UUID]*models.Computation
}

// NewComputationRepository creates an empty in-memory repository
func NewComputationRepository() ports.ComputationRepository {
	return &ComputationRepository{
		computations: make(map[uuid.UUID]*models.Computation),
	}
}

// Save stores a copy of the computation
func (r *ComputationRepository) Save(ctx context.Context, c *models.Computation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.computations[c.ID] = clone(c)
	return nil
}

// GetByID returns a copy of the stored computation
func (r *ComputationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Computation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.computations[id]
	if !ok {
		return nil, errors.NotFound("computation")
	}
	return clone(c), nil
}

// ListRecent returns the newest computations first
func (r *ComputationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Computation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*models.Computation, 0, len(r.computations))
	for _, c := range r.computations {
		out = append(out, clone(c))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func clone(c *models.Computation) *models.Computation {
	cp := *c
	cp.Dataset = append(models.DatasetJSON(nil), c.Dataset...)
	return &cp
}
