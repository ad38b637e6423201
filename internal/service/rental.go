package service

import (
	"context"
	"fmt"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
)

// Rental decision actions accepted by ManageRentalRequest.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// BookCar creates a pending rental for the customer and takes the car off
// the available list. The rental row is committed before the availability
// flip; the lock is held across both writes so no caller sees the gap.
func (s *System) BookCar(ctx context.Context, customer, carID string, days int32, additionalFees float64) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.AvailableNow {
		return nil, fmt.Errorf("car %q is currently unavailable: %w", carID, domain.ErrConflict)
	}
	if days < car.MinRentDays || days > car.MaxRentDays {
		return nil, fmt.Errorf("rental days must be between %d and %d: %w", car.MinRentDays, car.MaxRentDays, domain.ErrValidation)
	}
	if additionalFees < 0 {
		return nil, fmt.Errorf("additional fees cannot be negative: %w", domain.ErrValidation)
	}

	n, err := s.seqRepo.Next(ctx, rentalSequence)
	if err != nil {
		return nil, fmt.Errorf("minting rental id: %w", err)
	}
	rentalID := fmt.Sprintf("R-%03d", n)

	now := time.Now()
	startDate := now.Format(dateLayout)
	endDate := now.AddDate(0, 0, int(days)).Format(dateLayout)
	totalCost := float64(days)*car.DailyRate + additionalFees

	rental := domain.NewRental(rentalID, customer, carID, startDate, endDate, totalCost, additionalFees)
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.carRepo.SetAvailability(ctx, carID, false); err != nil {
		return nil, err
	}
	s.rentals[rentalID] = rental

	logger.Info("Booked car", "rental_id", rentalID, "car_id", carID, "customer", customer, "total_cost", totalCost)
	copied := *rental
	return &copied, nil
}

// ReturnCar completes an approved rental: the status becomes returned, the
// return date is stamped with today, and the car is available again.
func (s *System) ReturnCar(ctx context.Context, rentalID string) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, ok := s.rentals[rentalID]
	if !ok {
		return nil, fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
	}
	if rental.Status != domain.RentalStatusApproved {
		return nil, fmt.Errorf("rental %q is %s, not approved: %w", rentalID, rental.Status, domain.ErrInvalidState)
	}
	if _, err := s.carRepo.GetByID(ctx, rental.CarID); err != nil {
		return nil, fmt.Errorf("car associated with rental %q: %w", rentalID, domain.ErrNotFound)
	}

	returnDate := today()
	if err := s.rentalRepo.UpdateStatus(ctx, rentalID, domain.RentalStatusReturned, &returnDate); err != nil {
		return nil, err
	}
	if err := s.carRepo.SetAvailability(ctx, rental.CarID, true); err != nil {
		return nil, err
	}
	rental.Return(returnDate)

	logger.Info("Returned car", "rental_id", rentalID, "car_id", rental.CarID)
	copied := *rental
	return &copied, nil
}

// ManageRentalRequest resolves a pending rental. Approving leaves the car
// unavailable (it has been held since booking); rejecting frees it.
func (s *System) ManageRentalRequest(ctx context.Context, rentalID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, ok := s.rentals[rentalID]
	if !ok {
		return fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
	}
	if rental.Status != domain.RentalStatusPending {
		return fmt.Errorf("rental %q has already been processed: %w", rentalID, domain.ErrInvalidState)
	}

	switch action {
	case ActionApprove:
		if err := s.rentalRepo.UpdateStatus(ctx, rentalID, domain.RentalStatusApproved, nil); err != nil {
			return err
		}
		rental.Approve()
	case ActionReject:
		if err := s.rentalRepo.UpdateStatus(ctx, rentalID, domain.RentalStatusRejected, nil); err != nil {
			return err
		}
		if err := s.carRepo.SetAvailability(ctx, rental.CarID, true); err != nil {
			return err
		}
		rental.Reject()
	default:
		return fmt.Errorf("unknown action %q: %w", action, domain.ErrValidation)
	}

	logger.Info("Resolved rental request", "rental_id", rentalID, "action", action)
	return nil
}

// CustomerRentals returns the customer's rental history, oldest first.
func (s *System) CustomerRentals(username string) []domain.Rental {
	return s.listRentals(func(rt *domain.Rental) bool { return rt.CustomerUsername == username })
}

func (s *System) AllRentals() []domain.Rental {
	return s.listRentals(func(*domain.Rental) bool { return true })
}

func (s *System) RentalsByStatus(status domain.RentalStatus) []domain.Rental {
	return s.listRentals(func(rt *domain.Rental) bool { return rt.Status == status })
}

func (s *System) FindRentalByID(rentalID string) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rental, ok := s.rentals[rentalID]
	if !ok {
		return nil, fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
	}
	copied := *rental
	return &copied, nil
}

func (s *System) listRentals(keep func(*domain.Rental) bool) []domain.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rentals []domain.Rental
	for _, rt := range s.rentals {
		if keep(rt) {
			rentals = append(rentals, *rt)
		}
	}
	sortRentals(rentals)
	return rentals
}
