package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"car-rental-backend/internal/repository"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store bundles the SQL-backed repositories over one database handle.
type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.RentalRepository
	repository.SequenceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		CarRepository:      NewCarRepository(db),
		RentalRepository:   NewRentalRepository(db),
		SequenceRepository: NewSequenceRepository(db),
	}
}

// Open connects to the configured database. The sqlite driver serves the
// default single-file deployment; postgres is available for shared setups.
// Queries use $n placeholders, which both drivers accept.
func Open(driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch driver {
	case "sqlite":
		db, err = sql.Open("sqlite", dsn)
	case "postgres":
		db, err = sql.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist. rentals.car_id is
// deliberately not a foreign key: rentals are a historical record and must
// survive deletion of the car they reference.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'customer'))
	);

	CREATE TABLE IF NOT EXISTS cars (
		car_id TEXT PRIMARY KEY,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		mileage INTEGER NOT NULL,
		available_now BOOLEAN NOT NULL,
		min_rent_days INTEGER NOT NULL,
		max_rent_days INTEGER NOT NULL,
		daily_rate REAL NOT NULL,
		fuel_type TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rentals (
		rental_id TEXT PRIMARY KEY,
		customer_username TEXT NOT NULL,
		car_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_cost REAL NOT NULL,
		additional_fees REAL NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected', 'returned')),
		return_date TEXT
	);

	CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);`

	_, err := db.Exec(schema)
	return err
}

// isUniqueViolation detects primary-key collisions from either driver so the
// repositories can translate them into the domain error taxonomy.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
