package main

import (
	"context"
	"flag"
	"log"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository/sqlstore"
	"car-rental-backend/internal/seed"

	"github.com/joho/godotenv"
)

// Standalone fleet importer for operating on an existing database outside
// the server's first-run bootstrap.
func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	seedFile := flag.String("file", "", "CSV file to import (defaults to seed.cars_file from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	path := *seedFile
	if path == "" {
		path = cfg.Seed.CarsFile
	}
	if path == "" {
		log.Fatal("No seed file given: pass -file or set seed.cars_file")
	}

	db, err := sqlstore.Open(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlstore.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	store := sqlstore.NewStore(db)
	imported, err := seed.ImportCars(context.Background(), path, store.CarRepository)
	if err != nil {
		log.Fatalf("Import failed after %d cars: %v", imported, err)
	}
	logger.Info("Fleet import complete", "file", path, "imported", imported)
}
