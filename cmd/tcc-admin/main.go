package main

import (
	"log"

	"github.com/noah-isme/tcc-admin-api/internal/bootstrap"
	"github.com/noah-isme/tcc-admin-api/internal/repository"
	"github.com/noah-isme/tcc-admin-api/pkg/config"
	"github.com/noah-isme/tcc-admin-api/pkg/logger"
	"github.com/noah-isme/tcc-admin-api/pkg/metrics"
	"github.com/noah-isme/tcc-admin-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store := repository.Open(cfg.DataDir, logr, metrics.NewService())

	if err := bootstrap.Ensure(store, logr); err != nil {
		logr.Sugar().Fatalw("bootstrap failed", "error", err)
	}

	students, err := store.Students.LoadAll()
	if err != nil {
		logr.Sugar().Fatalw("store self-check failed", "entity", "student", "error", err)
	}
	tutors, err := store.Tutors.LoadAll()
	if err != nil {
		logr.Sugar().Fatalw("store self-check failed", "entity", "tutor", "error", err)
	}
	classes, err := store.Classes.LoadAll()
	if err != nil {
		logr.Sugar().Fatalw("store self-check failed", "entity", "class", "error", err)
	}
	payments, err := store.Payments.LoadAll()
	if err != nil {
		logr.Sugar().Fatalw("store self-check failed", "entity", "payment", "error", err)
	}
	requests, err := store.Requests.LoadAll()
	if err != nil {
		logr.Sugar().Fatalw("store self-check failed", "entity", "request", "error", err)
	}

	if cfg.Receipts.Enabled {
		receipts, err := storage.NewLocalStorage(cfg.Receipts.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("receipt storage init failed", "error", err)
		}
		deleted, err := receipts.CleanupOlderThan(cfg.Receipts.ResultTTL)
		if err != nil {
			logr.Sugar().Warnw("receipt cleanup failed", "error", err)
		} else if len(deleted) > 0 {
			logr.Sugar().Infow("expired receipts removed", "count", len(deleted))
		}
	}

	logr.Sugar().Infow("store ready",
		"data_dir", cfg.DataDir,
		"students", len(students),
		"tutors", len(tutors),
		"classes", len(classes),
		"payments", len(payments),
		"requests", len(requests),
	)
}
