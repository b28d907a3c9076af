package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photon-bins/internal/config"
	"photon-bins/internal/logging"

	binsHttp "photon-bins/internal/bins/adapters/http/fiber"
	"photon-bins/internal/bins/adapters/output"
	binsRepoPg "photon-bins/internal/bins/adapters/postgres"
	"photon-bins/internal/bins/adapters/render/gonum"
	"photon-bins/internal/bins/adapters/sources"
	"photon-bins/internal/bins/adapters/timetag"
	"photon-bins/internal/bins/core/ports"
	binsUsecase "photon-bins/internal/bins/core/usecase"

	timetagsRepoPg "photon-bins/internal/timetags/adapters/postgres"
	"photon-bins/internal/timetags/adapters/timetagfile"
	timetagsUsecase "photon-bins/internal/timetags/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var cliPool = binsRepoPg.Pool{MaxOpen: 4, MaxIdle: 2, MaxLifetime: 30 * time.Minute}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	var code int
	if len(args) > 0 && args[0] == "import" {
		code = runImport(ctx, args[1:])
	} else {
		code = runPlot(ctx, args)
	}

	stop()
	os.Exit(code)
}

func runPlot(ctx context.Context, args []string) int {
	// Config
	cfg, err := config.Parse(args, os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	inputs := timetag.ExpandInputs(cfg.Inputs)
	cfg.Inputs = inputs

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	tmpl, err := cfg.Template()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	// Sources: files always, stored runs when a DSN is given
	var runs ports.SourceOpenerPort
	if cfg.DSN != "" {
		db, err := binsRepoPg.Connect(ctx, cfg.DSN, cliPool)
		if err != nil {
			logger.Error().Err(err).Msg("database unavailable")
			return 1
		}
		defer db.Close()

		runs = binsRepoPg.NewRunOpener(binsRepoPg.NewRunRepository(binsRepoPg.Rows(db)))
	}
	opener := sources.NewRouter(timetag.NewOpener(), runs)

	// Usecases
	buildUC := binsUsecase.NewBuildPlotUseCase(
		binsUsecase.WithLogger(logger),
		binsUsecase.WithWorkers(cfg.Workers),
	)

	if !cfg.Viewer() {
		naming := output.Naming{Output: cfg.Output, Auto: cfg.AutoOutput, Multi: len(inputs) > 1}
		batchUC := binsUsecase.NewPlotBatchUseCase(opener, buildUC, output.NewFileSink(naming, logger), logger)

		if _, err := batchUC.Execute(ctx, binsUsecase.PlotBatchInput{Inputs: inputs, Template: tmpl}); err != nil {
			return 1
		}
		return 0
	}

	store := binsHttp.NewPlotStore()
	batchUC := binsUsecase.NewPlotBatchUseCase(opener, buildUC, store, logger)
	_, batchErr := batchUC.Execute(ctx, binsUsecase.PlotBatchInput{Inputs: inputs, Template: tmpl})
	if store.Len() == 0 || ctx.Err() != nil {
		return 1
	}

	if err := serveViewer(ctx, cfg.Listen, store, logger); err != nil {
		logger.Error().Err(err).Msg("viewer failed")
		return 1
	}
	if batchErr != nil {
		return 1
	}
	return 0
}

// serveViewer blocks until ctx is cancelled.
func serveViewer(ctx context.Context, addr string, store *binsHttp.PlotStore, logger zerolog.Logger) error {
	svg, err := gonum.New("svg")
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	binsHttp.NewViewerHandler(store, svg).Register(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	logger.Info().Str("addr", "http://"+addr).Int("plots", store.Len()).Msg("viewer started, Ctrl-C to quit")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

func runImport(ctx context.Context, args []string) int {
	cfg, err := config.ParseImport(args, os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	files := timetag.ExpandInputs(cfg.Files)

	db, err := binsRepoPg.Connect(ctx, cfg.DSN, cliPool)
	if err != nil {
		logger.Error().Err(err).Msg("database unavailable")
		return 1
	}
	defer db.Close()

	if err := timetagsRepoPg.EnsureSchema(ctx, db); err != nil {
		logger.Error().Err(err).Msg("schema setup failed")
		return 1
	}

	storeUC := timetagsUsecase.NewStoreRunUseCase(timetagsRepoPg.NewRunRepository(db))
	importUC := timetagsUsecase.NewImportRunsUseCase(timetagfile.NewReader(), storeUC, logger)

	in := timetagsUsecase.ImportRunsInput{Paths: files, RunID: cfg.RunID, Jiffy: cfg.Jiffy}
	if _, err := importUC.Execute(ctx, in); err != nil {
		return 1
	}
	return 0
}
