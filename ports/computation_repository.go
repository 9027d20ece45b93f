package ports

import (
	"context"

	"groupstat/models"

	"github.com/google/uuid"
)

// ComputationRepository persists computation history.
// GetByID returns a NOT_FOUND AppError for unknown ids.
type ComputationRepository interface {
	Save(ctx context.Context, computation *models.Computation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Computation, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Computation, error)
}
