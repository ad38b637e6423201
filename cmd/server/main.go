package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	api "car-rental-backend/internal/api/http"
	"car-rental-backend/internal/config"
	"car-rental-backend/internal/jobs"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository/sqlstore"
	"car-rental-backend/internal/scheduler"
	"car-rental-backend/internal/security"
	"car-rental-backend/internal/seed"
	"car-rental-backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables override the YAML config
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.ServerAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver)

	db, err := sqlstore.Open(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlstore.InitSchema(db); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	logger.Info("Database connection established")

	store := sqlstore.NewStore(db)
	ctx := context.Background()

	// First-run fleet bootstrap: seed only into an empty cars table.
	if cfg.Seed.CarsFile != "" {
		cars, err := store.CarRepository.List(ctx)
		if err != nil {
			log.Fatalf("Failed to check fleet: %v", err)
		}
		if len(cars) == 0 {
			imported, err := seed.ImportCars(ctx, cfg.Seed.CarsFile, store.CarRepository)
			if err != nil {
				log.Fatalf("Failed to seed fleet: %v", err)
			}
			logger.Info("Seeded fleet from CSV", "file", cfg.Seed.CarsFile, "imported", imported)
		}
	}

	system, err := service.NewSystem(ctx, store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	if err != nil {
		logger.Error("Failed to hydrate system", "error", err)
		log.Fatalf("Failed to hydrate system: %v", err)
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	handler := api.NewHandler(system, tokens)

	jobRunner := jobs.NewJobRunner(system, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.ServerAddress())
	if err := http.ListenAndServe(cfg.ServerAddress(), handler.Routes()); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
