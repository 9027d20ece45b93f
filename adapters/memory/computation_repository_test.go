package memory

import (
	"context"
	"testing"
	"time"

	"groupstat/domain/grouped"
	"groupstat/internal/errors"
	"groupstat/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComputation(source string, at time.Time) *models.Computation {
	c := models.NewComputation(source, &grouped.StatsResult{
		Dataset:        grouped.Dataset{{Lower: 0, Upper: 10, Frequency: 4, Midpoint: 5, Width: 10}},
		TotalFrequency: 4,
		Mean:           5,
	})
	c.CreatedAt = at
	return c
}

func TestComputationRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewComputationRepository()

	c := newComputation("api", time.Now())
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "api", got.Source)

	got.Dataset[0].Frequency = 100
	again, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, again.Dataset[0].Frequency, "stored rows must not be shared with callers")
}

func TestComputationRepository_NotFound(t *testing.T) {
	_, err := NewComputationRepository().GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestComputationRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewComputationRepository()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newComputation("cli", base.Add(time.Duration(i)*time.Minute))))
	}

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}

	limited, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, base.Add(4*time.Minute), limited[0].CreatedAt)
}

func TestComputationRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewComputationRepository()
	assert.ErrorIs(t, repo.Save(ctx, newComputation("cli", time.Now())), context.Canceled)
	_, err := repo.ListRecent(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
