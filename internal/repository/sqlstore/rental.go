package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (rental_id, customer_username, car_id, start_date, end_date, total_cost, additional_fees, status, return_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, rt.RentalID, rt.CustomerUsername, rt.CarID, rt.StartDate, rt.EndDate, rt.TotalCost, rt.AdditionalFees, rt.Status, rt.ReturnDate)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rental %q: %w", rt.RentalID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var returnDate sql.NullString
	query := `SELECT rental_id, customer_username, car_id, start_date, end_date, total_cost, additional_fees, status, return_date FROM rentals WHERE rental_id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&rt.RentalID, &rt.CustomerUsername, &rt.CarID, &rt.StartDate, &rt.EndDate, &rt.TotalCost, &rt.AdditionalFees, &rt.Status, &returnDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
		}
		return nil, err
	}
	if returnDate.Valid {
		rt.ReturnDate = &returnDate.String
	}
	return rt, nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, rentalID string, status domain.RentalStatus, returnDate *string) error {
	query := `UPDATE rentals SET status=$1, return_date=$2 WHERE rental_id=$3`
	_, err := r.db.ExecContext(ctx, query, status, returnDate, rentalID)
	return err
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT rental_id, customer_username, car_id, start_date, end_date, total_cost, additional_fees, status, return_date FROM rentals ORDER BY rental_id`
	return r.queryRentals(ctx, query)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, username string) ([]domain.Rental, error) {
	query := `SELECT rental_id, customer_username, car_id, start_date, end_date, total_cost, additional_fees, status, return_date FROM rentals WHERE customer_username = $1 ORDER BY rental_id`
	return r.queryRentals(ctx, query, username)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT rental_id, customer_username, car_id, start_date, end_date, total_cost, additional_fees, status, return_date FROM rentals WHERE status = $1 ORDER BY rental_id`
	return r.queryRentals(ctx, query, status)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		var returnDate sql.NullString
		if err := rows.Scan(&rt.RentalID, &rt.CustomerUsername, &rt.CarID, &rt.StartDate, &rt.EndDate, &rt.TotalCost, &rt.AdditionalFees, &rt.Status, &returnDate); err != nil {
			return nil, err
		}
		if returnDate.Valid {
			rt.ReturnDate = &returnDate.String
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
