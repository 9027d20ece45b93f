package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"groupstat/internal/errors"
	"groupstat/models"
	"groupstat/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const computationColumns = `id, source, dataset, total_frequency, mean, median, mode, variance, std_dev, created_at`

// ComputationRepositoryImpl implements ComputationRepository for PostgreSQL
type ComputationRepositoryImpl struct {
	db *sqlx.DB
}

// NewComputationRepository creates a new PostgreSQL computation repository
func NewComputationRepository(db *sqlx.DB) ports.ComputationRepository {
	return &ComputationRepositoryImpl{db: db}
}

// Save inserts a computation
func (r *ComputationRepositoryImpl) Save(ctx context.Context, c *models.Computation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO computations (`+computationColumns+`)
		VALUES (:id, :source, :dataset, :total_frequency, :mean, :median, :mode, :variance, :std_dev, :created_at)
	`, c)
	if err != nil {
		return errors.DatabaseError("failed to save computation", err)
	}
	return nil
}

// GetByID retrieves a computation by id
func (r *ComputationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Computation, error) {
	var c models.Computation
	err := r.db.GetContext(ctx, &c, `
		SELECT `+computationColumns+`
		FROM computations
		WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("computation")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load computation", err)
	}
	return &c, nil
}

// ListRecent returns the newest computations first
func (r *ComputationRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.Computation, error) {
	query := `
		SELECT ` + computationColumns + `
		FROM computations
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	computations := []*models.Computation{}
	if err := r.db.SelectContext(ctx, &computations, query, args...); err != nil {
		return nil, errors.DatabaseError("failed to list computations", err)
	}
	return computations, nil
}
