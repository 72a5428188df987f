package main

//
//  @title           graindesk API
//  @version         1.0
//  @description     Read-only access to the reconciled grain buyer directory.
//  @termsOfService  https://github.com/guttosm/graindesk
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/graindesk
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        buyers
//  @tag.description Endpoints for querying grain buyers
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/graindesk/config"
	_ "github.com/guttosm/graindesk/docs" // swagger docs
	"github.com/guttosm/graindesk/internal/app"
	"github.com/guttosm/graindesk/internal/dataset"
	"github.com/guttosm/graindesk/internal/logger"
)

// Process exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitMalformed = 2
	exitDuplicate = 3
	exitConfig    = 4
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// exitCode maps an error returned by run to the process exit status.
//
// Returns:
//   - 0 on success.
//   - 2 for a malformed dataset or a record missing a required field.
//   - 3 for a duplicate identifier.
//   - 4 for invalid configuration, flags or reference tables.
//   - 1 for anything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, dataset.ErrDuplicateIdentifier):
		return exitDuplicate
	case errors.Is(err, dataset.ErrMalformedDataset), errors.Is(err, dataset.ErrMissingField):
		return exitMalformed
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, app.ErrReference):
		return exitConfig
	default:
		return exitFailure
	}
}

// run parses args and executes the selected mode, printing summaries to stdout.
//
// Modes (selected via --mode flag):
//   - generate:           Builds a fresh dataset from the reference taxonomy.
//   - reconcile-phones:   Applies the known phone numbers table.
//   - reconcile-contacts: Applies renames and contact fixes, replaces placeholder phones.
//   - reconcile-full:     Corrections, exclusions, additions, state fix-ups, verified stamp.
//   - reconcile-basis:    Reprices buyers covered by a market profile.
//   - report:             Prints dataset health without writing.
//   - sync:               Mirrors the dataset into PostgreSQL.
//   - api:                Starts the REST API over the mirrored data.
//
// Flags:
//   - --mode:      Execution mode. Default: "report".
//   - --dataset:   Dataset JSON path. Defaults to DATASET_PATH.
//   - --reference: YAML reference override. Defaults to REFERENCE_PATH.
//   - --seed:      Random seed (0 = time-seeded). Defaults to RANDOM_SEED.
//   - --port:      Port for API mode. Defaults to SERVER_PORT.
//   - --force:     Re-mirror in sync mode even if the dataset was already synced.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	// Load configuration from environment or .env file
	if err := config.LoadConfig(); err != nil {
		return err
	}
	cfg := config.AppConfig

	fs := flag.NewFlagSet("graindesk", flag.ContinueOnError)
	mode := fs.String("mode", app.ModeReport, "Mode: generate, reconcile-phones, reconcile-contacts, reconcile-full, reconcile-basis, report, sync or api")
	fs.StringVar(&cfg.Dataset.Path, "dataset", cfg.Dataset.Path, "Dataset JSON file")
	fs.StringVar(&cfg.Dataset.ReferencePath, "reference", cfg.Dataset.ReferencePath, "YAML file overriding the embedded reference tables")
	fs.Uint64Var(&cfg.Dataset.Seed, "seed", cfg.Dataset.Seed, "Random seed (0 = time-seeded)")
	fs.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Port for API mode")
	force := fs.Bool("force", false, "Re-mirror the dataset even if the same contents were already synced")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if cfg.Dataset.Path == "" {
		return fmt.Errorf("%w: empty --dataset", config.ErrInvalidConfig)
	}
	config.AppConfig = cfg

	if *mode != "api" {
		return app.NewRunner(cfg, stdout).Run(ctx, *mode, *force)
	}

	// API mode: start the HTTP server
	logger.L().Info().Msg("starting API server")
	router, cleanup, err := app.InitializeApp()
	if err != nil {
		return err
	}
	server := startServer(router, cfg.Server.Port)
	gracefulShutdown(ctx, server, cleanup)
	return nil
}

// main is the entry point of the graindesk application.
func main() {
	// Initialize JSON logger
	logger.Init()

	err := run(context.Background(), os.Args[1:], os.Stdout)
	if err != nil {
		logger.L().Error().Err(err).Int("exit_code", exitCode(err)).Msg("graindesk failed")
	}
	os.Exit(exitCode(err))
}
