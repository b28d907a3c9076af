package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photon-bins/internal/logging"

	binsHttp "photon-bins/internal/bins/adapters/http/fiber"
	binsRepoPg "photon-bins/internal/bins/adapters/postgres"
	"photon-bins/internal/bins/adapters/render/gonum"
	binsUsecase "photon-bins/internal/bins/core/usecase"

	timetagsHttp "photon-bins/internal/timetags/adapters/http/fiber"
	timetagsRepoPg "photon-bins/internal/timetags/adapters/postgres"
	timetagsUsecase "photon-bins/internal/timetags/core/usecase"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "photon-bins/docs"
)

// @title photon-bins API
// @version 1.0
// @description Stores recorded timetag runs and serves binned photon-count plots of them.
// @BasePath /
func main() {
	logger, err := logging.New(envOr("LOG_LEVEL", "info"), os.Stderr)
	if err != nil {
		logger, _ = logging.New("info", os.Stderr)
		logger.Warn().Err(err).Msg("falling back to info level")
	}

	// Config
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal().Msg("POSTGRES_DSN is not set")
	}
	addr := envOr("LISTEN_ADDR", ":8080")

	// DB connection
	connCtx, cancelConn := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := binsRepoPg.Connect(connCtx, dsn, binsRepoPg.Pool{
		MaxOpen:     20,
		MaxIdle:     10,
		MaxLifetime: 30 * time.Minute,
	})
	cancelConn()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	err = timetagsRepoPg.EnsureSchema(schemaCtx, db)
	cancelSchema()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// Repositories
	runRepository := timetagsRepoPg.NewRunRepository(db)
	runOpener := binsRepoPg.NewRunOpener(binsRepoPg.NewRunRepository(binsRepoPg.Rows(db)))

	// Usecases
	storeRunUC := timetagsUsecase.NewStoreRunUseCase(runRepository)
	buildPlotUC := binsUsecase.NewBuildPlotUseCase(binsUsecase.WithLogger(logger))

	svg, err := gonum.New("svg")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up renderer")
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{BodyLimit: 64 * 1024 * 1024})

	// ingest endpoints
	runHandler := timetagsHttp.NewRunHandler(storeRunUC)
	app.Post("/runs", runHandler.CreateRun)

	// plot endpoints
	plotHandler := binsHttp.NewRunPlotHandler(runOpener, buildPlotUC, svg, binsHttp.RunDefaults{
		BinWidth: 0.010,
		Rows:     10,
		RowWidth: 10,
		Scale:    "max",
	})
	app.Get("/runs/:run/rows", plotHandler.GetRows)
	app.Get("/runs/:run/plot", plotHandler.GetPlot)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().Str("addr", addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
