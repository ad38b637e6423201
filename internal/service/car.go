package service

import (
	"context"
	"fmt"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
)

// AddCar registers a new car in the fleet with availability as supplied.
func (s *System) AddCar(ctx context.Context, car *domain.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := car.Validate(); err != nil {
		return err
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return err
	}
	logger.Info("Added car", "car_id", car.CarID, "make", car.Make, "model", car.Model)
	return nil
}

// UpdateCar sets a new odometer reading and daily rate. The mileage update
// is monotone-guarded: a reading at or below the current one is ignored.
// The rate update is unconditional.
func (s *System) UpdateCar(ctx context.Context, carID string, newMileage int32, newDailyRate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newDailyRate < 0 {
		return fmt.Errorf("daily rate cannot be negative: %w", domain.ErrValidation)
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	car.UpdateMileage(newMileage)
	car.DailyRate = newDailyRate
	return s.carRepo.Update(ctx, car)
}

// RemoveCar deletes a car, unless a pending or approved rental still
// references it. Historical rentals for the car are kept.
func (s *System) RemoveCar(ctx context.Context, carID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return err
	}
	for _, rt := range s.rentals {
		if rt.CarID == carID && rt.Active() {
			return fmt.Errorf("car %q has active rental records: %w", carID, domain.ErrConflict)
		}
	}
	if err := s.carRepo.Delete(ctx, carID); err != nil {
		return err
	}
	logger.Info("Removed car", "car_id", carID)
	return nil
}

func (s *System) AllCars(ctx context.Context) ([]domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carRepo.List(ctx)
}

func (s *System) AvailableCars(ctx context.Context) ([]domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carRepo.ListAvailable(ctx)
}

func (s *System) FindCarByID(ctx context.Context, carID string) (*domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carRepo.GetByID(ctx, carID)
}
