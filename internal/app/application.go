package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/gtfs"
	"farezone.transit.org/internal/logging"
	"farezone.transit.org/internal/network"
	"farezone.transit.org/internal/report"
	"farezone.transit.org/internal/routing"
	"farezone.transit.org/internal/stations"
	"farezone.transit.org/internal/store"
	"farezone.transit.org/internal/zones"
)

// Application holds the dependencies shared by the CLI, the HTTP handlers
// and middleware. The dataset and graph are built once and never modified.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Dataset   *stations.Dataset
	Graph     *network.Graph
	LineNames report.LineNames
	Store     *store.Store

	mu    sync.RWMutex
	zoned map[string]*Zoning
}

// Zoning is the outcome of classifying every station from one origin.
type Zoning struct {
	Result *routing.Result
	Zones  zones.Map
}

// New loads the station records named by cfg and builds the network.
func New(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	start := time.Now()

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}

	names, err := loadLineNames(cfg, logger)
	if err != nil {
		return nil, err
	}

	application := NewWithDataset(cfg, logger, ds)
	application.LineNames = names

	if cfg.DBPath != "" {
		st, err := store.Open(ctx, store.Config{DBPath: cfg.DBPath, Env: cfg.Env, Logger: logger})
		if err != nil {
			return nil, err
		}
		application.Store = st
	}

	logging.LogOperation(logger, "network_built",
		slog.Int("lines", len(ds.Lines)),
		slog.Int("stations", ds.StationCount()),
		slog.Int("vertices", application.Graph.Len()),
		slog.Duration("duration", time.Since(start)))

	for _, e := range application.Graph.NegativeEdges() {
		logger.Warn("negative edge weight",
			slog.String("from", e.From),
			slog.String("to", e.To),
			slog.Int("weight", e.Weight))
	}

	return application, nil
}

// NewWithDataset builds an Application around an already loaded dataset.
func NewWithDataset(cfg appconf.Config, logger *slog.Logger, ds *stations.Dataset) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Dataset: ds,
		Graph:   network.BuildGraph(ds),
		zoned:   make(map[string]*Zoning),
	}
}

// Zones runs the shortest-path search from origin and classifies the
// reachable stations. Results are cached per origin.
func (app *Application) Zones(origin string) (*Zoning, error) {
	app.mu.RLock()
	z, ok := app.zoned[origin]
	app.mu.RUnlock()
	if ok {
		return z, nil
	}

	result, err := routing.ShortestPath(app.Graph, origin)
	if err != nil {
		return nil, err
	}
	z = &Zoning{Result: result, Zones: zones.Classify(result.Finite())}

	app.mu.Lock()
	app.zoned[origin] = z
	app.mu.Unlock()
	return z, nil
}

// Intersections returns the interchange table of the dataset.
func (app *Application) Intersections() map[string][2]string {
	return network.Intersections(app.Dataset)
}

func (app *Application) Close() error {
	if app.Store != nil {
		return app.Store.Close()
	}
	return nil
}

func loadDataset(ctx context.Context, cfg appconf.Config) (*stations.Dataset, error) {
	if cfg.GTFS.Source != "" {
		ds, err := gtfs.Dataset(ctx, gtfs.Config{
			Source:     cfg.GTFS.Source,
			UnitsPerKm: cfg.GTFS.UnitsPerKm,
			RouteIDs:   cfg.GTFS.Routes,
		})
		if err != nil {
			return nil, fmt.Errorf("error loading GTFS feed: %w", err)
		}
		return ds, nil
	}
	ds, err := stations.LoadFile(cfg.Stations)
	if err != nil {
		return nil, fmt.Errorf("error loading stations: %w", err)
	}
	return ds, nil
}

// loadLineNames falls back to line letters when the name file is absent.
func loadLineNames(cfg appconf.Config, logger *slog.Logger) (report.LineNames, error) {
	if cfg.LineNames == "" {
		return nil, nil
	}
	names, err := report.LoadLineNames(cfg.LineNames, cfg.Language)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("line name file not found, using line letters", slog.String("path", cfg.LineNames))
		return nil, nil
	}
	return names, err
}
