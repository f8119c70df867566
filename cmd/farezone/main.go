package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farezone.transit.org/internal/app"
	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/logging"
	"farezone.transit.org/internal/report"
	"farezone.transit.org/internal/restapi"
	"farezone.transit.org/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code. The zone
// report goes to stdout, logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup func(string) (string, bool)) int {
	cfg, err := appconf.Parse(args, ".env", lookup)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := logging.NewStructuredLogger(stderr, level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logging.LogError(logger, "failed to load station network", err)
		return 1
	}
	defer logging.SafeCloseWithLogging(application, logger, "application")

	logging.LogOperation(logger, "intersections_found",
		slog.Int("count", len(application.Intersections())))

	if cfg.Serve {
		if err := serve(ctx, application); err != nil {
			logging.LogError(logger, "server stopped", err)
			return 1
		}
		return 0
	}

	if err := zoneReport(ctx, application, stdout); err != nil {
		logging.LogError(logger, "failed to build zone report", err, slog.String("origin", cfg.Origin))
		return 1
	}
	return 0
}

// zoneReport classifies every station from the configured origin, persists
// the outcome where configured and prints the per-line report.
func zoneReport(ctx context.Context, application *app.Application, stdout io.Writer) error {
	cfg := application.Config
	logger := application.Logger

	zoning, err := application.Zones(cfg.Origin)
	if err != nil {
		return err
	}

	unreachable := application.Graph.Len() - len(zoning.Zones)
	if unreachable > 0 {
		logger.Warn("stations unreachable from origin",
			slog.String("origin", cfg.Origin),
			slog.Int("count", unreachable))
	}

	if application.Store != nil {
		if err := application.Store.SaveDataset(ctx, application.Dataset); err != nil {
			return err
		}
		if err := application.Store.SaveGraph(ctx, application.Graph); err != nil {
			return err
		}
		runID, err := application.Store.SaveRun(ctx, zoning.Result, zoning.Zones)
		if err != nil {
			return err
		}
		logging.LogOperation(logger, "run_saved",
			slog.String("run_id", runID),
			slog.String("db", cfg.DBPath))
	}

	if cfg.ExportDir != "" {
		if err := store.ExportFiles(cfg.ExportDir, application.Dataset, application.Graph, logger); err != nil {
			return err
		}
		logging.LogOperation(logger, "exported", slog.String("dir", cfg.ExportDir))
	}

	return report.ZonedLines(stdout, zoning.Zones, application.Dataset, application.LineNames)
}

func serve(ctx context.Context, application *app.Application) error {
	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(application.Logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		application.Logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", application.Config.Env.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
