package repository

import (
	"context"

	"car-rental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, carID string) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	SetAvailability(ctx context.Context, carID string, available bool) error
	Delete(ctx context.Context, carID string) error
	List(ctx context.Context) ([]domain.Car, error)
	ListAvailable(ctx context.Context) ([]domain.Car, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	UpdateStatus(ctx context.Context, rentalID string, status domain.RentalStatus, returnDate *string) error
	List(ctx context.Context) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, username string) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
}

// SequenceRepository mints values from named persisted counters. Next must
// be atomic under concurrent callers; values are never reused.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	EnsureAtLeast(ctx context.Context, name string, floor int64) error
}
