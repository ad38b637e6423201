package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (car_id, make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate, fuel_type)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, c.CarID, c.Make, c.Model, c.Year, c.Mileage, c.AvailableNow, c.MinRentDays, c.MaxRentDays, c.DailyRate, c.FuelType)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("car %q: %w", c.CarID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, carID string) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT car_id, make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate, fuel_type FROM cars WHERE car_id = $1`
	err := r.db.QueryRowContext(ctx, query, carID).Scan(&c.CarID, &c.Make, &c.Model, &c.Year, &c.Mileage, &c.AvailableNow, &c.MinRentDays, &c.MaxRentDays, &c.DailyRate, &c.FuelType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("car %q: %w", carID, domain.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET make=$1, model=$2, year=$3, mileage=$4, available_now=$5, min_rent_days=$6, max_rent_days=$7, daily_rate=$8, fuel_type=$9 WHERE car_id=$10`
	_, err := r.db.ExecContext(ctx, query, c.Make, c.Model, c.Year, c.Mileage, c.AvailableNow, c.MinRentDays, c.MaxRentDays, c.DailyRate, c.FuelType, c.CarID)
	return err
}

func (r *carRepository) SetAvailability(ctx context.Context, carID string, available bool) error {
	query := `UPDATE cars SET available_now=$1 WHERE car_id=$2`
	_, err := r.db.ExecContext(ctx, query, available, carID)
	return err
}

func (r *carRepository) Delete(ctx context.Context, carID string) error {
	query := `DELETE FROM cars WHERE car_id=$1`
	_, err := r.db.ExecContext(ctx, query, carID)
	return err
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT car_id, make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate, fuel_type FROM cars ORDER BY car_id`
	return r.queryCars(ctx, query)
}

func (r *carRepository) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT car_id, make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate, fuel_type FROM cars WHERE available_now = $1 ORDER BY car_id`
	return r.queryCars(ctx, query, true)
}

func (r *carRepository) queryCars(ctx context.Context, query string, args ...interface{}) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.CarID, &c.Make, &c.Model, &c.Year, &c.Mileage, &c.AvailableNow, &c.MinRentDays, &c.MaxRentDays, &c.DailyRate, &c.FuelType); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
