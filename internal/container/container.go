package container

import (
	"context"
	"fmt"

	"gocorr/adapters/db/postgres/migrations"
	"gocorr/adapters/excel"
	"gocorr/adapters/memory"
	"gocorr/adapters/postgres"
	"gocorr/app"
	"gocorr/internal"
	"gocorr/internal/api"
	"gocorr/internal/config"
	"gocorr/internal/errors"
	"gocorr/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	ReportRepo ports.ReportRepository

	// Analysis components
	Service *app.AnalysisService
	Events  *api.EventHub
}

// New creates a container with in-memory report storage. Call
// InitWithDatabase to switch to Postgres, then Build.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	return &Container{
		Config:     cfg,
		Logger:     logger,
		ReportRepo: memory.NewReportRepository(),
		Events:     api.NewEventHub(logger),
	}, nil
}

// OpenDatabase connects to Postgres and applies pending migrations
func OpenDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	if _, err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		db.Close()
		return nil, errors.DatabaseError("database migration failed", err)
	}
	return db, nil
}

// InitWithDatabase stores reports in Postgres
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db
	c.ReportRepo = postgres.NewReportRepository(db)
	c.Logger.Info("Reports are stored in PostgreSQL")
	return nil
}

// Build creates the analysis service and loads DATA_FILE when configured
func (c *Container) Build() error {
	c.Service = app.NewAnalysisService(c.Config.Analysis, c.ReportRepo, c.Logger)

	if c.Config.Data.File == "" {
		return nil
	}
	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = c.Config.Data.Sheet
	table, err := excel.NewDataReader(c.Config.Data.File, readerConfig).ReadTable()
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", c.Config.Data.File)
	}
	if err := c.Service.LoadDataset(table); err != nil {
		return errors.Wrapf(err, "failed to load %s", c.Config.Data.File)
	}
	return nil
}

// Server creates the HTTP API over the built service
func (c *Container) Server() *api.Server {
	return api.NewServer(c.Service, c.Events, c.Logger)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	defer c.Logger.Sync()

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
