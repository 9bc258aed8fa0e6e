package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/dtrajkov/attendance-tracker/internal/async"
	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/extract"
	"github.com/dtrajkov/attendance-tracker/internal/ingest"
	"github.com/dtrajkov/attendance-tracker/internal/match"
	"github.com/dtrajkov/attendance-tracker/internal/ocr"
	"github.com/dtrajkov/attendance-tracker/internal/pipeline"
	"github.com/dtrajkov/attendance-tracker/internal/report"
	"github.com/dtrajkov/attendance-tracker/internal/repository"
	"github.com/dtrajkov/attendance-tracker/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}
	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		logger.Error("db health failed", "error", err)
		os.Exit(1)
	}
	logger.Info("db health ok")

	jobsRepo := repository.NewJobRepository(db, logger)
	rosterRepo := repository.NewRosterRepository(db, logger)

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
	}, logger)
	lineExtractor := extract.NewOCRAdapter(extractor, logger)
	matcher := match.NewMatcher(rosterRepo, logger)
	renderer := report.NewPDFRenderer(cfg.Server.ContentDir, cfg.Report.FontPath, logger)

	proc := pipeline.NewProcessor(lineExtractor, matcher, renderer, jobsRepo, logger)
	queue := async.NewQueue(proc, logger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithProcessTimeout(cfg.Pipeline.ProcessTimeout),
	)

	svc := server.NewService(jobsRepo, queue, cfg.Server.ContentDir, logger)
	handler := server.NewHandler(svc, jobsRepo, cfg.Server.BaseURL, logger)
	router := server.NewRouter(handler, cfg.Server.ContentDir, cfg.Server.APIToken)

	if cfg.Ingest.WatchDir != "" {
		startDropFolder(ctx, cfg, svc, logger)
	}

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

func startDropFolder(ctx context.Context, cfg *common.Config, svc *server.Service, logger *slog.Logger) {
	paths, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Root:     cfg.Ingest.WatchDir,
		Debounce: cfg.Ingest.Debounce,
	}, logger)
	if err != nil {
		logger.Error("drop-folder watcher failed to start", "dir", cfg.Ingest.WatchDir, "error", err)
		return
	}
	logger.Info("watching drop folder", "dir", cfg.Ingest.WatchDir)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-paths:
				if !ok {
					return
				}
				if rec, err := svc.SubmitFile(ctx, path); err != nil {
					logger.Warn("drop-folder submission rejected", "path", path, "error", err)
				} else {
					logger.Info("drop-folder sheet submitted", "path", path, "job_id", rec.ID)
				}
			case err, ok := <-errs:
				if ok && err != nil {
					logger.Error("drop-folder watcher error", "error", err)
				}
			}
		}
	}()
}
