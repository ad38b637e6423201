// Package memory provides map-backed repositories with the same error
// contract as sqlstore. They back tests and throwaway deployments where no
// durable database is wanted.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

type data struct {
	mu        sync.Mutex
	users     map[string]domain.User
	cars      map[string]domain.Car
	rentals   map[string]domain.Rental
	sequences map[string]int64
}

// Store bundles the in-memory repositories over one shared data set.
type Store struct {
	repository.UserRepository
	repository.CarRepository
	repository.RentalRepository
	repository.SequenceRepository
}

func NewStore() *Store {
	d := &data{
		users:     make(map[string]domain.User),
		cars:      make(map[string]domain.Car),
		rentals:   make(map[string]domain.Rental),
		sequences: make(map[string]int64),
	}
	return &Store{
		UserRepository:     &userRepo{d},
		CarRepository:      &carRepo{d},
		RentalRepository:   &rentalRepo{d},
		SequenceRepository: &sequenceRepo{d},
	}
}

type userRepo struct{ d *data }

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[u.Username]; ok {
		return fmt.Errorf("username %q: %w", u.Username, domain.ErrDuplicateUsername)
	}
	r.d.users[u.Username] = *u
	return nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *userRepo) List(_ context.Context) ([]domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	users := make([]domain.User, 0, len(r.d.users))
	for _, u := range r.d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type carRepo struct{ d *data }

func (r *carRepo) Create(_ context.Context, c *domain.Car) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.cars[c.CarID]; ok {
		return fmt.Errorf("car %q: %w", c.CarID, domain.ErrConflict)
	}
	r.d.cars[c.CarID] = *c
	return nil
}

func (r *carRepo) GetByID(_ context.Context, carID string) (*domain.Car, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.cars[carID]
	if !ok {
		return nil, fmt.Errorf("car %q: %w", carID, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *carRepo) Update(_ context.Context, c *domain.Car) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.cars[c.CarID] = *c
	return nil
}

func (r *carRepo) SetAvailability(_ context.Context, carID string, available bool) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.cars[carID]
	if !ok {
		return nil
	}
	c.AvailableNow = available
	r.d.cars[carID] = c
	return nil
}

func (r *carRepo) Delete(_ context.Context, carID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	delete(r.d.cars, carID)
	return nil
}

func (r *carRepo) List(_ context.Context) ([]domain.Car, error) {
	return r.list(func(domain.Car) bool { return true })
}

func (r *carRepo) ListAvailable(_ context.Context) ([]domain.Car, error) {
	return r.list(func(c domain.Car) bool { return c.AvailableNow })
}

func (r *carRepo) list(keep func(domain.Car) bool) ([]domain.Car, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var cars []domain.Car
	for _, c := range r.d.cars {
		if keep(c) {
			cars = append(cars, c)
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].CarID < cars[j].CarID })
	return cars, nil
}

type rentalRepo struct{ d *data }

func (r *rentalRepo) Create(_ context.Context, rt *domain.Rental) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.rentals[rt.RentalID]; ok {
		return fmt.Errorf("rental %q: %w", rt.RentalID, domain.ErrConflict)
	}
	r.d.rentals[rt.RentalID] = *rt
	return nil
}

func (r *rentalRepo) GetByID(_ context.Context, rentalID string) (*domain.Rental, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	rt, ok := r.d.rentals[rentalID]
	if !ok {
		return nil, fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
	}
	return &rt, nil
}

func (r *rentalRepo) UpdateStatus(_ context.Context, rentalID string, status domain.RentalStatus, returnDate *string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	rt, ok := r.d.rentals[rentalID]
	if !ok {
		return fmt.Errorf("rental %q: %w", rentalID, domain.ErrNotFound)
	}
	rt.Status = status
	rt.ReturnDate = returnDate
	r.d.rentals[rentalID] = rt
	return nil
}

func (r *rentalRepo) List(_ context.Context) ([]domain.Rental, error) {
	return r.list(func(domain.Rental) bool { return true })
}

func (r *rentalRepo) ListByCustomer(_ context.Context, username string) ([]domain.Rental, error) {
	return r.list(func(rt domain.Rental) bool { return rt.CustomerUsername == username })
}

func (r *rentalRepo) ListByStatus(_ context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.list(func(rt domain.Rental) bool { return rt.Status == status })
}

func (r *rentalRepo) list(keep func(domain.Rental) bool) ([]domain.Rental, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var rentals []domain.Rental
	for _, rt := range r.d.rentals {
		if keep(rt) {
			rentals = append(rentals, rt)
		}
	}
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].RentalID < rentals[j].RentalID })
	return rentals, nil
}

type sequenceRepo struct{ d *data }

func (r *sequenceRepo) Next(_ context.Context, name string) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.sequences[name]++
	return r.d.sequences[name], nil
}

func (r *sequenceRepo) EnsureAtLeast(_ context.Context, name string, floor int64) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if r.d.sequences[name] < floor {
		r.d.sequences[name] = floor
	}
	return nil
}
