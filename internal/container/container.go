package container

import (
	"context"
	"fmt"
	"log"

	adapterapi "groupstat/adapters/api"
	"groupstat/adapters/memory"
	"groupstat/adapters/postgres"
	"groupstat/adapters/stats/engine"
	"groupstat/app"
	"groupstat/internal/api"
	"groupstat/internal/config"
	"groupstat/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	ComputationRepo ports.ComputationRepository

	// Computation components
	Engine         *engine.GroupedStatsEngine
	Normalizer     *adapterapi.Normalizer
	ComputeService *app.ComputeService
	ComputeHandler *api.ComputeHandler
}

// New creates a new dependency injection container.
// History is kept in memory until InitWithDatabase is called.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:          cfg,
		ComputationRepo: memory.NewComputationRepository(),
		Engine:          engine.NewGroupedStatsEngine(),
		Normalizer:      adapterapi.NewNormalizer(adapterapi.DefaultNormalizerConfig()),
	}
	c.initServices()

	return c, nil
}

// InitWithDatabase switches computation history to PostgreSQL
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	// Test database connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.ComputationRepo = postgres.NewComputationRepository(db)
	c.initServices()

	log.Printf("Container initialized successfully with database connection")
	return nil
}

// initServices wires the services on top of the current repository
func (c *Container) initServices() {
	c.ComputeService = app.NewComputeService(c.Engine, c.ComputationRepo, c.Config.Compute.BatchConcurrency)
	c.ComputeHandler = api.NewComputeHandler(
		c.ComputeService,
		c.Normalizer,
		c.Config.Compute.HistoryLimit,
		c.Config.Compute.BinCount,
	)
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
