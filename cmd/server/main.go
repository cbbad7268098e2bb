package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"rentcompare/server/config"
	"rentcompare/server/internal/api"
	"rentcompare/server/internal/catalog"
	"rentcompare/server/internal/database"
	"rentcompare/server/internal/processor"
	"rentcompare/server/internal/queue"
	"rentcompare/server/internal/scheduler"
	"rentcompare/server/internal/snapshot"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Catalog.DBPath), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Catalog.DBPath)

	db, err := database.NewDatabase(cfg.Catalog.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// The snapshot source is either the input table in SQLite or the
	// catalog CSV on disk.
	var source snapshot.Source = catalog.NewFileSource(cfg.Catalog.CSVPath)
	if cfg.Catalog.FromDatabase {
		source = db
	}

	store := snapshot.NewStore(source, logger)
	if _, err := store.Reload(); err != nil {
		// Serve the empty seed snapshot rather than refusing to start
		logger.WithError(err).Error("Initial catalog load failed, serving empty table")
	}

	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), ingestQueue, cfg, logger)
	batchProcessor.SetOnProcessed(func(count int) {
		if !cfg.Catalog.FromDatabase {
			return
		}
		if _, err := store.Reload(); err != nil {
			logger.WithError(err).Error("Failed to reload snapshot after ingest")
		}
	})
	batchProcessor.Start()
	defer ingestQueue.Close()

	if !cfg.Catalog.FromDatabase {
		watcher := scheduler.NewScheduler(store, logger, cfg.Catalog.CSVPath,
			time.Duration(cfg.Catalog.PollInterval)*time.Second)
		watcher.Start()
		defer watcher.Stop()
	}

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, api.NewHandler(store, batchProcessor, logger))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
