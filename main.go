package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giygas/medrisk-api/config"
	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/handlers"
	"github.com/giygas/medrisk-api/health"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/pipeline"
	"github.com/giygas/medrisk-api/referenceloader"
	"github.com/giygas/medrisk-api/scheduler"
	"github.com/giygas/medrisk-api/server"
	"github.com/giygas/medrisk-api/validation"
)

func init() {
	// Get the working directory and read the env variables
	if err := godotenv.Load(); err != nil {
		// If failed, try loading from executable directory
		ex, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get executable path: %v\n", err)
			os.Exit(1)
		}
		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to change directory: %v\n", err)
			os.Exit(1)
		}
		_ = godotenv.Load()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions(logging.Options{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logging.Close()

	opts, err := pipeline.ParseOptions(cfg.ScoringScheme, cfg.ConditionMode)
	if err != nil {
		logging.Error("Invalid analysis options", "error", err)
		os.Exit(1)
	}
	opts.MedicineThreshold = cfg.MedicineThreshold
	opts.SearchThreshold = cfg.SearchThreshold
	opts.SymptomThreshold = cfg.SymptomThreshold

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	loader := referenceloader.NewLoader(cfg.ReferenceDir)
	sched := scheduler.NewScheduler(dataContainer, loader, validation.NewDataValidator(), cfg.ReloadAt)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to load reference data", "dir", cfg.ReferenceDir, "error", err)
		os.Exit(1)
	}

	analyzer := pipeline.New(dataContainer, opts)
	healthChecker := health.NewHealthChecker(dataContainer, cfg.ReloadTimes()...)
	httpHandler := handlers.NewHTTPHandler(analyzer, dataContainer, healthChecker)
	srv := server.NewServer(cfg, httpHandler)

	logging.Info("Analysis pipeline ready",
		"scheme", opts.Scheme.Name,
		"condition_mode", opts.ConditionMode,
		"env", cfg.Env.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
