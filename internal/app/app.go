// Package app wires configuration into the store, loader, manager and
// rendering engine shared by the server and the CLI.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go-reusable-content/internal/config"
	"go-reusable-content/internal/contentmanager"
	"go-reusable-content/internal/loader"
	"go-reusable-content/internal/setuppath"
	"go-reusable-content/internal/storage"
	"go-reusable-content/internal/templating"
)

// App holds the application-wide dependencies.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    storage.DataStore
	Resolver setuppath.Resolver
	Manager  *contentmanager.Manager
	Engine   *templating.Engine

	closer io.Closer
}

// NewLogger builds the text logger used by both binaries.
func NewLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// versionedResolver pins every lookup to the configured hive, whatever version
// the caller asks for. It lets a farm keep its files in a hive other than 15.
type versionedResolver struct {
	inner   setuppath.Resolver
	version int
}

func (v versionedResolver) Resolve(relativePath string, _ int) (string, error) {
	return v.inner.Resolve(relativePath, v.version)
}

// NewResolver returns the resolver for cfg's hive root and major version.
func NewResolver(cfg *config.Config) setuppath.Resolver {
	hive := setuppath.NewHiveResolver(cfg.HiveRoot)
	if cfg.MajorVersion == setuppath.SharePointMajorVersion {
		return hive
	}
	return versionedResolver{inner: hive, version: cfg.MajorVersion}
}

// OpenStore opens the store selected by cfg.Store under cfg.DataDir.
func OpenStore(cfg *config.Config) (storage.DataStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := storage.OpenSQLiteStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StoreJSON:
		s, err := storage.NewJSONStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// New builds an App from cfg. Logs go to logger, or to stderr when nil.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		var err error
		if logger, err = NewLogger(cfg, os.Stderr); err != nil {
			return nil, err
		}
	}

	store, closer, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize content store: %w", err)
	}
	logger.Debug("Opened content store", "driver", cfg.Store, "path", store.GetBasePath())

	resolver := NewResolver(cfg)
	opts := []loader.Option{loader.WithLogger(logger)}
	if cfg.SanitizeHTML {
		opts = append(opts, loader.WithSanitizer())
	}
	htmlLoader := loader.New(resolver, opts...)

	manager := contentmanager.NewManager(store, htmlLoader, logger)
	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Resolver: resolver,
		Manager:  manager,
		Engine:   templating.NewEngine(manager),
		closer:   closer,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
