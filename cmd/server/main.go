package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/lexiflash/internal/api"
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/config"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/reminder"
	"github.com/vytor/lexiflash/internal/repository/sqlite"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LexiFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("reminder_interval_minutes=%d", cfg.ReminderIntervalMinutes)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("daily_goal=%d", cfg.DailyGoal)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	loc := cfg.Location()
	clk := clock.Real{Location: loc}

	vocabRepo := sqlite.NewVocabularyRepository(database.DB, clk.Now)
	profileRepo := sqlite.NewProfileRepository(database.DB)
	historyRepo := sqlite.NewReviewHistoryRepository(database.DB)
	importRepo := sqlite.NewImportRepository(database.DB)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	jobQueue := jobs.NewWorkerQueue(importPool, importRepo, vocabRepo, clk)

	progressService := services.NewProgressService(profileRepo, clk, loc)
	srv := &api.Server{
		DB:                database,
		ProfileService:    services.NewProfileService(profileRepo, cfg.DailyGoal),
		VocabularyService: services.NewVocabularyService(vocabRepo, importRepo, jobQueue, clk),
		StudyService: services.NewStudyService(vocabRepo, historyRepo, progressService,
			services.NewSessionStore(), srs.NewModeSelector(nil), clk),
		ProgressService: progressService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	var reminders *reminder.Scheduler
	if cfg.ReminderIntervalMinutes > 0 {
		reminders = reminder.New(profileRepo, vocabRepo, reminder.LogNotifier{}, clk, loc,
			time.Duration(cfg.ReminderIntervalMinutes)*time.Minute)
		if err := reminders.Start(); err != nil {
			log.Error("failed to start reminders: %v", err)
			os.Exit(1)
		}
	} else {
		log.Info("reminders disabled")
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if reminders != nil {
		reminders.Stop()
	}

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("===========================================")
	log.Info("LexiFlash Server Stopped")
	log.Info("===========================================")
}
