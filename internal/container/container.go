// Package container provides dependency injection for the pricelist
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/config"
	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/postgrest"
	"presyohan/pricelist/internal/session"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation: all fields are private and
// reachable only through getters, so nothing can rewire a dependency after
// initialization.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	provider catalog.Provider
}

// NewContainer creates and wires all application dependencies from the
// given configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	var provider catalog.Provider
	switch cfg.Catalog.Backend {
	case "postgrest":
		provider = postgrest.NewClient(cfg.PostgREST.URL, cfg.PostgREST.APIKey, logger)
		logger.Info("Using PostgREST catalog backend")
	case "file":
		provider = catalog.NewFileStore(cfg.Catalog.File, logger)
		logger.Info("Using file catalog backend",
			logging.Field{Key: logging.FieldInputFile, Value: cfg.Catalog.File})
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	return &Container{
		logger:   logger,
		config:   cfg,
		provider: provider,
	}, nil
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger {
	return c.logger
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Provider returns the catalog provider selected by the configuration.
func (c *Container) Provider() catalog.Provider {
	return c.provider
}

// NewSession creates an import session for the given store, falling back to
// the configured default store id when none is passed.
func (c *Container) NewSession(storeID string) *session.Session {
	if storeID == "" {
		storeID = c.config.Store.ID
	}
	return session.New(storeID, c.provider, c.logger)
}
